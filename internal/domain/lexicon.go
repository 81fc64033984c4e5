package domain

import "strings"

// MultiWordSeparator joins the parts of a multi-word lemma name ("ice_cream").
const MultiWordSeparator = "_"

// Synset is a set of lemmas that share one sense and one definition.
// It is owned by the lexical database and never modified after loading.
type Synset struct {
	ID         string
	POS        string
	Definition string
	Lemmas     []Lemma
}

// Lemma is a single word form of a synset.
type Lemma struct {
	Name     string
	SenseKey string
}

// IsMultiWord reports whether the lemma name is a compound phrase
// joined by sep.
func (l Lemma) IsMultiWord(sep string) bool {
	return strings.Contains(l.Name, sep)
}
