package domain

import "fmt"

// Split identifies one of the three dataset partitions.
type Split string

const (
	SplitTrain Split = "train"
	SplitDev   Split = "dev"
	SplitTest  Split = "test"
)

// AllSplits lists the partitions in canonical order.
var AllSplits = []Split{SplitTrain, SplitDev, SplitTest}

func (s Split) IsValid() bool {
	switch s {
	case SplitTrain, SplitDev, SplitTest:
		return true
	}
	return false
}

func (s Split) String() string { return string(s) }

// ParseSplit converts a string into a Split.
func ParseSplit(s string) (Split, error) {
	sp := Split(s)
	if !sp.IsValid() {
		return "", fmt.Errorf("unknown split %q", s)
	}
	return sp, nil
}
