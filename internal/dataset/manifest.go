package dataset

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/revdict/internal/domain"
)

// Manifest records how a dataset was built and what was written.
type Manifest struct {
	RunID     string          `yaml:"run_id"`
	Version   string          `yaml:"version"`
	CreatedAt time.Time       `yaml:"created_at"`
	Lexicon   ManifestLexicon `yaml:"lexicon"`
	Split     ManifestSplit   `yaml:"split"`
	Build     ManifestBuild   `yaml:"build"`
	Filters   ManifestFilters `yaml:"filters"`
	Delimiter string          `yaml:"delimiter"`
	Files     []ManifestFile  `yaml:"files"`
}

type ManifestLexicon struct {
	Format  string `yaml:"format"`
	Path    string `yaml:"path"`
	Synsets int    `yaml:"synsets"`
}

type ManifestSplit struct {
	Seed     int64   `yaml:"seed"`
	TrainCut float64 `yaml:"train_cut"`
	DevCut   float64 `yaml:"dev_cut"`
}

type ManifestBuild struct {
	Seed      int64  `yaml:"seed"`
	Tokenizer string `yaml:"tokenizer"`
	Separator string `yaml:"separator"`
}

type ManifestFilters struct {
	SenseKeyPath string `yaml:"sense_key_path"`
	SenseKeys    int    `yaml:"sense_keys"`
	WordPath     string `yaml:"word_path"`
	Words        int    `yaml:"words"`
}

// ManifestFile describes one written split.
type ManifestFile struct {
	Split     string `yaml:"split"`
	Name      string `yaml:"name"`
	Synsets   int    `yaml:"synsets"`
	Instances int    `yaml:"instances"`
	FirstWord string `yaml:"first_word,omitempty"`
	LastWord  string `yaml:"last_word,omitempty"`
	SHA256    string `yaml:"sha256"`
}

// File returns the entry for split, or false if the manifest has none.
func (m *Manifest) File(split domain.Split) (ManifestFile, bool) {
	for _, f := range m.Files {
		if f.Split == split.String() {
			return f, true
		}
	}
	return ManifestFile{}, false
}

// WriteManifest writes m as YAML to path.
func WriteManifest(path string, m *Manifest) error {
	return writeAtomic(path, func(w io.Writer) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode manifest: %w", err)
		}
		return enc.Close()
	})
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w: %w", path, domain.ErrDataIntegrity, err)
	}
	return &m, nil
}

func newManifestFile(split domain.Split, name string, synsets int, instances []domain.Instance, sum string) ManifestFile {
	f := ManifestFile{
		Split:     split.String(),
		Name:      name,
		Synsets:   synsets,
		Instances: len(instances),
		SHA256:    sum,
	}
	if len(instances) > 0 {
		f.FirstWord = instances[0].Word
		f.LastWord = instances[len(instances)-1].Word
	}
	return f
}
