package dataset

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heartmarshall/revdict/internal/config"
	"github.com/heartmarshall/revdict/internal/domain"
)

// maxViolationsPerSplit caps the invariant violations reported per split.
const maxViolationsPerSplit = 10

const noWord = "<none>"

// Rules are the filters every built instance must satisfy.
type Rules struct {
	Separator string
	SenseKeys domain.ExclusionList
	Words     domain.ExclusionList
}

// Dataset is the built result of one run.
type Dataset struct {
	// Partition is nil when the dataset was read back from files.
	Partition  *Partition
	CorpusSize int
	Instances  map[domain.Split][]domain.Instance
}

// Check verifies the dataset invariants and, when expectations is non-nil,
// the reference shape of every split. Every failure is collected into one
// *domain.IntegrityError.
func Check(ds *Dataset, rules Rules, expectations map[string]config.Expectation) error {
	var violations []domain.Violation

	if ds.Partition != nil {
		violations = append(violations, checkPartition(*ds.Partition, ds.CorpusSize)...)
	}

	definitions := make(map[string]string)
	if ds.Partition != nil {
		for _, split := range domain.AllSplits {
			for _, s := range ds.Partition.Get(split) {
				definitions[s.ID] = s.Definition
			}
		}
	}

	lower := cases.Lower(language.Und)
	for _, split := range domain.AllSplits {
		violations = append(violations, checkInstances(split, ds.Instances[split], rules, definitions, lower)...)
	}

	for _, split := range domain.AllSplits {
		if exp, ok := expectations[split.String()]; ok {
			violations = append(violations, checkExpectation(split, ds.Instances[split], exp)...)
		}
	}

	if len(violations) > 0 {
		return &domain.IntegrityError{Violations: violations}
	}
	return nil
}

func checkPartition(p Partition, corpusSize int) []domain.Violation {
	var violations []domain.Violation
	if p.Len() != corpusSize {
		violations = append(violations, domain.Violation{
			Field: "partition.size",
			Want:  strconv.Itoa(corpusSize),
			Got:   strconv.Itoa(p.Len()),
		})
	}

	seen := make(map[string]domain.Split, p.Len())
	for _, split := range domain.AllSplits {
		for _, s := range p.Get(split) {
			if prev, dup := seen[s.ID]; dup {
				violations = append(violations, domain.Violation{
					Split: split,
					Field: "partition.synset",
					Want:  "disjoint",
					Got:   fmt.Sprintf("%s also in %s", s.ID, prev),
				})
				continue
			}
			seen[s.ID] = split
		}
	}
	return violations
}

func checkInstances(split domain.Split, instances []domain.Instance, rules Rules, definitions map[string]string, lower cases.Caser) []domain.Violation {
	var (
		violations []domain.Violation
		dropped    int
	)
	add := func(field, want, got string) {
		if len(violations) >= maxViolationsPerSplit {
			dropped++
			return
		}
		violations = append(violations, domain.Violation{Split: split, Field: field, Want: want, Got: got})
	}

	for i, inst := range instances {
		field := func(name string) string { return fmt.Sprintf("instance[%d].%s", i, name) }

		if rules.Separator != "" && strings.Contains(inst.Word, rules.Separator) {
			add(field("word"), "single word", inst.Word)
		}
		if inst.SenseKey != "" && rules.SenseKeys.Contains(inst.SenseKey) {
			add(field("sense_key"), "not excluded", inst.SenseKey)
		}
		if rules.Words.Contains(inst.Word) {
			add(field("word"), "not excluded", inst.Word)
		}
		for _, tok := range inst.Description {
			if tok != lower.String(tok) {
				add(field("description"), "lowercase", tok)
				break
			}
		}
		if def, ok := definitions[inst.SynsetID]; ok && strings.TrimSpace(def) != "" && len(inst.Description) == 0 {
			add(field("description"), "non-empty", "empty")
		}
		if i > 0 {
			prev := instances[i-1]
			if inst.SynsetID != "" && inst.SynsetID == prev.SynsetID && !slices.Equal(inst.Description, prev.Description) {
				add(field("description"), "same as synset "+inst.SynsetID, strings.Join(inst.Description, " "))
			}
		}
	}

	if dropped > 0 {
		violations = append(violations, domain.Violation{
			Split: split,
			Field: "instances",
			Want:  "no further violations",
			Got:   strconv.Itoa(dropped) + " more",
		})
	}
	return violations
}

func checkExpectation(split domain.Split, instances []domain.Instance, exp config.Expectation) []domain.Violation {
	var violations []domain.Violation

	if exp.Count > 0 && len(instances) != exp.Count {
		violations = append(violations, domain.Violation{
			Split: split,
			Field: "count",
			Want:  strconv.Itoa(exp.Count),
			Got:   strconv.Itoa(len(instances)),
		})
	}

	first, last := noWord, noWord
	if len(instances) > 0 {
		first = instances[0].Word
		last = instances[len(instances)-1].Word
	}
	if exp.FirstWord != "" && first != exp.FirstWord {
		violations = append(violations, domain.Violation{Split: split, Field: "first_word", Want: exp.FirstWord, Got: first})
	}
	if exp.LastWord != "" && last != exp.LastWord {
		violations = append(violations, domain.Violation{Split: split, Field: "last_word", Want: exp.LastWord, Got: last})
	}
	return violations
}
