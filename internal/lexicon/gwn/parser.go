// Package gwn parses Open English WordNet GWN-LMF JSON files into synsets.
// Pure function: file path in, domain structs out.
package gwn

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/heartmarshall/revdict/internal/domain"
)

// ParseResult holds parsed synsets in file order.
type ParseResult struct {
	Synsets []domain.Synset
	Stats   Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalSynsets int
	TotalEntries int
	TotalSenses  int
	OrphanSenses int
	EmptySynsets int
	NoDefinition int
}

// GWN-LMF JSON internal types for deserialization.

type gwnDocument struct {
	Graph []gwnLexicon `json:"@graph"`
}

type gwnLexicon struct {
	Entries []gwnEntry  `json:"entry"`
	Synsets []gwnSynset `json:"synset"`
}

type gwnEntry struct {
	ID    string     `json:"@id"`
	Lemma gwnLemma   `json:"lemma"`
	Sense []gwnSense `json:"sense"`
}

type gwnLemma struct {
	WrittenForm string `json:"writtenForm"`
}

type gwnSense struct {
	ID           string `json:"@id"`
	Synset       string `json:"synset"`
	Identifier   string `json:"identifier"`
	DCIdentifier string `json:"dc:identifier"`
}

type gwnSynset struct {
	ID           string          `json:"@id"`
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []gwnDefinition `json:"definition"`
	Members      []string        `json:"members"`
}

type gwnDefinition struct {
	Gloss string `json:"gloss"`
}

// member is a sense of an entry placed in a synset.
type member struct {
	entryID string
	lemma   domain.Lemma
}

// Parse reads a GWN-LMF JSON file and returns every synset with its lemmas.
func Parse(filePath string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var doc gwnDocument
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return ParseResult{}, fmt.Errorf("decode JSON %s: %w", filePath, err)
	}

	var result ParseResult
	for _, lex := range doc.Graph {
		result.Stats.TotalEntries += len(lex.Entries)
		result.Stats.TotalSynsets += len(lex.Synsets)

		// Step 1: synsetID → members in entry order.
		known := make(map[string]bool, len(lex.Synsets))
		for _, s := range lex.Synsets {
			known[s.ID] = true
		}
		members := make(map[string][]member)
		for _, entry := range lex.Entries {
			name := lemmaName(entry.Lemma.WrittenForm)
			for _, sense := range entry.Sense {
				result.Stats.TotalSenses++
				if !known[sense.Synset] {
					result.Stats.OrphanSenses++
					continue
				}
				members[sense.Synset] = append(members[sense.Synset], member{
					entryID: entry.ID,
					lemma:   domain.Lemma{Name: name, SenseKey: senseKey(sense)},
				})
			}
		}

		// Step 2: synsets in file order, lemmas in members order when given.
		for _, s := range lex.Synsets {
			lemmas := orderLemmas(members[s.ID], s.Members)
			if len(lemmas) == 0 {
				result.Stats.EmptySynsets++
			}
			def := ""
			if len(s.Definitions) > 0 {
				def = strings.TrimSpace(s.Definitions[0].Gloss)
			} else {
				result.Stats.NoDefinition++
			}
			result.Synsets = append(result.Synsets, domain.Synset{
				ID:         s.ID,
				POS:        s.PartOfSpeech,
				Definition: def,
				Lemmas:     lemmas,
			})
		}
	}

	return result, nil
}

// lemmaName maps a written form to the underscore-joined lemma name.
func lemmaName(writtenForm string) string {
	return strings.Join(strings.Fields(writtenForm), domain.MultiWordSeparator)
}

func senseKey(s gwnSense) string {
	switch {
	case s.Identifier != "":
		return s.Identifier
	case s.DCIdentifier != "":
		return s.DCIdentifier
	}
	return s.ID
}

// orderLemmas sorts ms by the entry IDs listed in order. Members not listed
// keep their entry order after the listed ones.
func orderLemmas(ms []member, order []string) []domain.Lemma {
	if len(ms) == 0 {
		return nil
	}
	lemmas := make([]domain.Lemma, 0, len(ms))
	used := make([]bool, len(ms))
	for _, entryID := range order {
		for i, m := range ms {
			if !used[i] && m.entryID == entryID {
				used[i] = true
				lemmas = append(lemmas, m.lemma)
				break
			}
		}
	}
	for i, m := range ms {
		if !used[i] {
			lemmas = append(lemmas, m.lemma)
		}
	}
	return lemmas
}
