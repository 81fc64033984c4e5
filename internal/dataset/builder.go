package dataset

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heartmarshall/revdict/internal/domain"
	"github.com/heartmarshall/revdict/internal/pyrand"
	"github.com/heartmarshall/revdict/internal/tokenize"
)

// ctxCheckEvery is how many synsets are built between context checks.
const ctxCheckEvery = 4096

// BuildStats holds builder statistics for logging.
type BuildStats struct {
	Synsets          int
	MultiWordOnly    int
	MultiWordLemmas  int
	SenseKeyExcluded int
	WordExcluded     int
	Instances        int
}

// Add accumulates other into s.
func (s *BuildStats) Add(other BuildStats) {
	s.Synsets += other.Synsets
	s.MultiWordOnly += other.MultiWordOnly
	s.MultiWordLemmas += other.MultiWordLemmas
	s.SenseKeyExcluded += other.SenseKeyExcluded
	s.WordExcluded += other.WordExcluded
	s.Instances += other.Instances
}

// Builder expands synsets into instances.
// A Builder is not safe for concurrent use.
type Builder struct {
	tokenizer tokenize.Tokenizer
	separator string
	senseKeys domain.ExclusionList
	words     domain.ExclusionList
	lower     cases.Caser

	// rng is the build-stage generator. Filtering is deterministic and
	// never draws from it.
	rng *pyrand.Rand
}

// NewBuilder creates a Builder. An empty separator means
// domain.MultiWordSeparator.
func NewBuilder(tok tokenize.Tokenizer, separator string, senseKeys, words domain.ExclusionList, rng *pyrand.Rand) *Builder {
	if separator == "" {
		separator = domain.MultiWordSeparator
	}
	return &Builder{
		tokenizer: tok,
		separator: separator,
		senseKeys: senseKeys,
		words:     words,
		lower:     cases.Lower(language.Und),
		rng:       rng,
	}
}

// Build returns one instance per surviving lemma, in synset order then
// lemma order. Instances of one synset share a single description slice.
func (b *Builder) Build(ctx context.Context, synsets []domain.Synset) ([]domain.Instance, BuildStats, error) {
	var (
		stats     BuildStats
		instances []domain.Instance
	)

	for i, synset := range synsets {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, stats, err
			}
		}
		stats.Synsets++

		single := make([]domain.Lemma, 0, len(synset.Lemmas))
		for _, lemma := range synset.Lemmas {
			if lemma.IsMultiWord(b.separator) {
				stats.MultiWordLemmas++
				continue
			}
			single = append(single, lemma)
		}
		if len(single) == 0 {
			stats.MultiWordOnly++
			continue
		}

		description, err := b.Describe(synset.Definition)
		if err != nil {
			return nil, stats, fmt.Errorf("synset %s: %w", synset.ID, err)
		}

		for _, lemma := range single {
			if b.senseKeys.Contains(lemma.SenseKey) {
				stats.SenseKeyExcluded++
				continue
			}
			if b.words.Contains(lemma.Name) {
				stats.WordExcluded++
				continue
			}
			instances = append(instances, domain.Instance{
				Word:        lemma.Name,
				Description: description,
				SynsetID:    synset.ID,
				SenseKey:    lemma.SenseKey,
			})
		}
	}

	stats.Instances = len(instances)
	return instances, stats, nil
}

// Describe tokenizes a definition and lowercases every token.
func (b *Builder) Describe(definition string) ([]string, error) {
	tokens, err := b.tokenizer.Tokenize(definition)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	for i, tok := range tokens {
		tokens[i] = b.lower.String(tok)
	}
	return tokens, nil
}
