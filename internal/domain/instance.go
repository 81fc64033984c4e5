package domain

import (
	"fmt"
	"slices"
)

// Instance is one (target word, tokenized description) example.
// SynsetID and SenseKey record where the instance came from; they are
// optional and do not take part in equality.
type Instance struct {
	Word        string
	Description []string

	SynsetID string
	SenseKey string
}

// Equal reports whether both instances have the same word and token sequence.
func (i Instance) Equal(other Instance) bool {
	return i.Word == other.Word && slices.Equal(i.Description, other.Description)
}

func (i Instance) String() string {
	return fmt.Sprintf("%s: %q", i.Word, i.Description)
}
