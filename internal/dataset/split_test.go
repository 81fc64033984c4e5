package dataset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/heartmarshall/revdict/internal/domain"
	"github.com/heartmarshall/revdict/internal/pyrand"
)

// identity leaves the order unchanged.
type identity struct{}

func (identity) Shuffle(int, func(i, j int)) {}

func makeSynsets(n int) []domain.Synset {
	out := make([]domain.Synset, n)
	for i := range out {
		out[i] = domain.Synset{ID: fmt.Sprintf("s%d", i)}
	}
	return out
}

func ids(synsets []domain.Synset) []string {
	out := make([]string, 0, len(synsets))
	for _, s := range synsets {
		out = append(out, s.ID)
	}
	return out
}

func TestSplit_CutIndices(t *testing.T) {
	tests := []struct {
		n                        int
		wantTrain, wantDev, wantTest int
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 1},
		{5, 4, 0, 1},
		{10, 8, 1, 1},
		{15, 12, 1, 2},
		{117659, 94127, 11766, 11766},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			p, err := Split(makeSynsets(tt.n), identity{}, 0.8, 0.9)
			if err != nil {
				t.Fatalf("Split: %v", err)
			}
			if len(p.Train) != tt.wantTrain || len(p.Dev) != tt.wantDev || len(p.Test) != tt.wantTest {
				t.Errorf("sizes = %d/%d/%d, want %d/%d/%d",
					len(p.Train), len(p.Dev), len(p.Test), tt.wantTrain, tt.wantDev, tt.wantTest)
			}
			if p.Len() != tt.n {
				t.Errorf("Len() = %d, want %d", p.Len(), tt.n)
			}
		})
	}
}

func TestSplit_ContiguousIdentity(t *testing.T) {
	p, err := Split(makeSynsets(10), identity{}, 0.8, 0.9)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if diff := cmp.Diff([]string{"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7"}, ids(p.Train)); diff != "" {
		t.Errorf("train (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"s8"}, ids(p.Dev)); diff != "" {
		t.Errorf("dev (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"s9"}, ids(p.Test)); diff != "" {
		t.Errorf("test (-want +got):\n%s", diff)
	}
}

func TestSplit_ReferenceShuffle(t *testing.T) {
	// random.seed(742382); random.shuffle(list(range(10)))
	p, err := Split(makeSynsets(10), pyrand.New(742382), 0.8, 0.9)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	want := []string{"s8", "s5", "s1", "s4", "s2", "s3", "s9", "s0"}
	if diff := cmp.Diff(want, ids(p.Train)); diff != "" {
		t.Errorf("train (-want +got):\n%s", diff)
	}
	if got := ids(p.Dev); len(got) != 1 || got[0] != "s7" {
		t.Errorf("dev = %v, want [s7]", got)
	}
	if got := ids(p.Test); len(got) != 1 || got[0] != "s6" {
		t.Errorf("test = %v, want [s6]", got)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	synsets := makeSynsets(500)
	a, err := Split(synsets, pyrand.New(742382), 0.8, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Split(synsets, pyrand.New(742382), 0.8, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different partitions:\n%s", diff)
	}

	c, err := Split(synsets, pyrand.New(1), 0.8, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(ids(a.Train), ids(c.Train)) {
		t.Error("different seeds produced the same training order")
	}
}

func TestSplit_DisjointCover(t *testing.T) {
	synsets := makeSynsets(1000)
	p, err := Split(synsets, pyrand.New(99), 0.8, 0.9)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]int)
	for _, split := range domain.AllSplits {
		for _, s := range p.Get(split) {
			seen[s.ID]++
		}
	}
	if len(seen) != len(synsets) {
		t.Fatalf("covered %d synsets, want %d", len(seen), len(synsets))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("synset %s appears %d times", id, n)
		}
	}
}

func TestSplit_InputNotMutated(t *testing.T) {
	synsets := makeSynsets(20)
	before := ids(synsets)

	if _, err := Split(synsets, pyrand.New(742382), 0.8, 0.9); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, ids(synsets)); diff != "" {
		t.Errorf("input was reordered (-before +after):\n%s", diff)
	}
}

func TestSplit_AppendDoesNotLeak(t *testing.T) {
	p, err := Split(makeSynsets(10), identity{}, 0.8, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	_ = append(p.Train, domain.Synset{ID: "extra"})
	if p.Dev[0].ID != "s8" {
		t.Errorf("appending to train overwrote dev: %s", p.Dev[0].ID)
	}
}

func TestSplit_EqualCutsGiveEmptyDev(t *testing.T) {
	p, err := Split(makeSynsets(10), identity{}, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Train) != 5 || len(p.Dev) != 0 || len(p.Test) != 5 {
		t.Errorf("sizes = %d/%d/%d, want 5/0/5", len(p.Train), len(p.Dev), len(p.Test))
	}
}

func TestSplit_InvalidCuts(t *testing.T) {
	tests := []struct{ train, dev float64 }{
		{0, 0.9},
		{0.9, 0.8},
		{0.8, 1.1},
		{-0.1, 0.5},
	}
	for _, tt := range tests {
		_, err := Split(makeSynsets(3), identity{}, tt.train, tt.dev)
		if !errors.Is(err, domain.ErrConfiguration) {
			t.Errorf("Split(%v, %v) error = %v, want ErrConfiguration", tt.train, tt.dev, err)
		}
	}
}
