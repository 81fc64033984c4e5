package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

// Lexicon formats understood by the corpus loader.
const (
	FormatWNDB = "wndb"
	FormatGWN  = "gwn"
)

// Tokenizer names understood by the builder.
const (
	TokenizerProse      = "prose"
	TokenizerWhitespace = "whitespace"
)

var wndbFiles = []string{"adj", "adv", "noun", "verb"}

// Validate performs consistency checks on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Lexicon.validate(); err != nil {
		return fmt.Errorf("lexicon: %w", err)
	}
	if err := c.Split.validate(); err != nil {
		return fmt.Errorf("split: %w", err)
	}
	if err := c.Build.validate(); err != nil {
		return fmt.Errorf("build: %w", err)
	}
	if err := c.Output.validate(c.Build.Separator); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if c.Export.Enabled && c.Database.DSN == "" {
		return fmt.Errorf("export: enabled but database.dsn is empty")
	}
	return nil
}

func (l *LexiconConfig) validate() error {
	switch l.Format {
	case FormatWNDB, FormatGWN:
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", l.Format, FormatWNDB, FormatGWN)
	}
	if l.Path == "" {
		return fmt.Errorf("path must be set")
	}

	order, err := ParseFileOrder(l.FileOrderRaw)
	if err != nil {
		return fmt.Errorf("file_order: %w", err)
	}
	if l.Format == FormatWNDB && len(order) == 0 {
		return fmt.Errorf("file_order must name at least one data file")
	}
	l.FileOrder = order
	return nil
}

func (s *SplitConfig) validate() error {
	if s.TrainCut <= 0 || s.TrainCut > 1 {
		return fmt.Errorf("train_cut must be in (0, 1] (got %v)", s.TrainCut)
	}
	if s.DevCut < s.TrainCut || s.DevCut > 1 {
		return fmt.Errorf("dev_cut must be in [train_cut, 1] (got %v)", s.DevCut)
	}
	return nil
}

func (b *BuildConfig) validate() error {
	if b.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}
	switch b.Tokenizer {
	case TokenizerProse, TokenizerWhitespace:
	default:
		return fmt.Errorf("unknown tokenizer %q", b.Tokenizer)
	}
	return nil
}

func (o *OutputConfig) validate(separator string) error {
	if utf8.RuneCountInString(o.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character (got %q)", o.Delimiter)
	}
	switch o.Delimiter {
	case " ", "\\", "\n", "\r":
		return fmt.Errorf("delimiter %q collides with the token or escape syntax", o.Delimiter)
	}
	if o.Delimiter == separator {
		return fmt.Errorf("delimiter must differ from the multi-word separator")
	}

	names := []string{o.TrainFile, o.DevFile, o.TestFile, o.ManifestFile}
	for i, name := range names {
		if name == "" {
			return fmt.Errorf("file names must not be empty")
		}
		if filepath.Base(name) != name {
			return fmt.Errorf("file name %q must not contain a directory", name)
		}
		if slices.Contains(names[:i], name) {
			return fmt.Errorf("file name %q used twice", name)
		}
	}
	return nil
}

// ParseFileOrder parses a comma-separated list of WordNet data file suffixes
// (e.g. "adj,adv,noun,verb"). An empty string returns a nil slice.
func ParseFileOrder(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	order := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !slices.Contains(wndbFiles, p) {
			return nil, fmt.Errorf("unknown data file %q", p)
		}
		if slices.Contains(order, p) {
			return nil, fmt.Errorf("data file %q listed twice", p)
		}
		order = append(order, p)
	}

	return order, nil
}
