package gwn

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/heartmarshall/revdict/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// writeFile is a test helper that creates a file with given content.
func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// --- Parse: file handling ---

func TestParse_FileNotFound(t *testing.T) {
	_, err := Parse("/nonexistent/file.json")
	if err == nil {
		t.Error("Parse should return error for missing file")
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := writeFile(path, "not json at all"); err != nil {
		t.Fatal(err)
	}

	_, err := Parse(path)
	if err == nil {
		t.Error("Parse should return error for invalid JSON")
	}
}

func TestParse_EmptyGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := writeFile(path, `{"@context":"...","@graph":[]}`); err != nil {
		t.Fatal(err)
	}

	result, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse should not error on empty graph: %v", err)
	}
	if len(result.Synsets) != 0 {
		t.Errorf("expected 0 synsets, got %d", len(result.Synsets))
	}
}

// --- Parse: sample lexicon ---

func TestParse_Sample(t *testing.T) {
	result, err := Parse(testdataPath(t, "sample.json"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []domain.Synset{
		{
			ID:         "oewn-01148283-a",
			POS:        "a",
			Definition: "enjoying or showing or marked by joy or pleasure",
			Lemmas: []domain.Lemma{
				{Name: "glad", SenseKey: "glad%3:00:00::"},
				{Name: "happy", SenseKey: "happy%3:00:00::"},
			},
		},
		{
			ID:         "oewn-07630232-n",
			POS:        "n",
			Definition: "frozen dessert containing cream and sugar and flavoring",
			Lemmas: []domain.Lemma{
				{Name: "ice_cream", SenseKey: "oewn-ice_cream__1.13.00.."},
				{Name: "sorbet", SenseKey: "sorbet%1:13:00::"},
			},
		},
		{
			ID:  "oewn-00000001-v",
			POS: "v",
		},
	}
	if diff := cmp.Diff(want, result.Synsets); diff != "" {
		t.Errorf("synsets mismatch (-want +got):\n%s", diff)
	}

	wantStats := Stats{
		TotalSynsets: 3,
		TotalEntries: 4,
		TotalSenses:  5,
		OrphanSenses: 1,
		EmptySynsets: 1,
		NoDefinition: 1,
	}
	if diff := cmp.Diff(wantStats, result.Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderLemmas(t *testing.T) {
	ms := []member{
		{entryID: "a", lemma: domain.Lemma{Name: "a"}},
		{entryID: "b", lemma: domain.Lemma{Name: "b"}},
		{entryID: "c", lemma: domain.Lemma{Name: "c"}},
	}

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{"no order keeps entry order", nil, []string{"a", "b", "c"}},
		{"full order", []string{"c", "a", "b"}, []string{"c", "a", "b"}},
		{"partial order appends rest", []string{"b"}, []string{"b", "a", "c"}},
		{"unknown ids ignored", []string{"x", "c"}, []string{"c", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, l := range orderLemmas(ms, tt.order) {
				got = append(got, l.Name)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLemmaName(t *testing.T) {
	tests := map[string]string{
		"ice cream":       "ice_cream",
		"  spaced   out ": "spaced_out",
		"single":          "single",
	}
	for in, want := range tests {
		if got := lemmaName(in); got != want {
			t.Errorf("lemmaName(%q) = %q, want %q", in, got, want)
		}
	}
}
