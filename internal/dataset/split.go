// Package dataset turns a lexical database into the train/dev/test
// reverse-dictionary dataset: split, build, check, write.
package dataset

import (
	"fmt"

	"github.com/heartmarshall/revdict/internal/domain"
)

// Shuffler permutes count elements in place through swap.
// *pyrand.Rand is the production implementation.
type Shuffler interface {
	Shuffle(count int, swap func(i, j int))
}

// Partition holds the synsets of each split.
type Partition struct {
	Train []domain.Synset
	Dev   []domain.Synset
	Test  []domain.Synset
}

// Get returns the synsets of split s.
func (p Partition) Get(s domain.Split) []domain.Synset {
	switch s {
	case domain.SplitTrain:
		return p.Train
	case domain.SplitDev:
		return p.Dev
	case domain.SplitTest:
		return p.Test
	}
	return nil
}

// Len returns the total number of synsets in the partition.
func (p Partition) Len() int {
	return len(p.Train) + len(p.Dev) + len(p.Test)
}

// Split shuffles a copy of synsets and cuts it at int(trainCut*N) and
// int(devCut*N). The cuts are cumulative fractions. synsets is not modified.
func Split(synsets []domain.Synset, shuffler Shuffler, trainCut, devCut float64) (Partition, error) {
	if trainCut <= 0 || trainCut > 1 || devCut < trainCut || devCut > 1 {
		return Partition{}, fmt.Errorf("split: invalid cuts %v/%v: %w", trainCut, devCut, domain.ErrConfiguration)
	}

	shuffled := make([]domain.Synset, len(synsets))
	copy(shuffled, synsets)
	shuffler.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	n := float64(len(shuffled))
	trainEnd := int(n * trainCut)
	devEnd := int(n * devCut)

	return Partition{
		Train: shuffled[:trainEnd:trainEnd],
		Dev:   shuffled[trainEnd:devEnd:devEnd],
		Test:  shuffled[devEnd:],
	}, nil
}
