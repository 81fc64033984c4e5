package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

// chdirEmpty switches to an empty temp dir so no ./config.yaml is found.
func chdirEmpty(t *testing.T) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())
}

const validYAML = `
lexicon:
  format: "gwn"
  path: "/data/english-wordnet-2024.json"

filter:
  sense_key_path: "/data/deconf.txt"
  word_path: "/data/w2v.txt"

split:
  seed: 1234
  train_cut: 0.7
  dev_cut: 0.85

build:
  seed: 99
  tokenizer: "whitespace"

output:
  dir: "/tmp/out"
  train_file: "tr.csv"
  delimiter: "|"

check:
  skip: true
  train_count: 12

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10

export:
  enabled: true
  timeout: "90s"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Lexicon
	if cfg.Lexicon.Format != FormatGWN {
		t.Errorf("lexicon.format = %q, want %q", cfg.Lexicon.Format, FormatGWN)
	}
	if cfg.Lexicon.Path != "/data/english-wordnet-2024.json" {
		t.Errorf("lexicon.path = %q", cfg.Lexicon.Path)
	}

	// Filter
	if cfg.Filter.SenseKeyPath != "/data/deconf.txt" || cfg.Filter.WordPath != "/data/w2v.txt" {
		t.Errorf("filter = %+v", cfg.Filter)
	}

	// Split
	if cfg.Split.Seed != 1234 {
		t.Errorf("split.seed = %d, want 1234", cfg.Split.Seed)
	}
	if cfg.Split.TrainCut != 0.7 || cfg.Split.DevCut != 0.85 {
		t.Errorf("split cuts = %v/%v, want 0.7/0.85", cfg.Split.TrainCut, cfg.Split.DevCut)
	}

	// Build
	if cfg.Build.Seed != 99 {
		t.Errorf("build.seed = %d, want 99", cfg.Build.Seed)
	}
	if cfg.Build.Separator != "_" {
		t.Errorf("build.separator = %q, want default %q", cfg.Build.Separator, "_")
	}
	if cfg.Build.Tokenizer != TokenizerWhitespace {
		t.Errorf("build.tokenizer = %q", cfg.Build.Tokenizer)
	}

	// Output
	if cfg.Output.Dir != "/tmp/out" || cfg.Output.TrainFile != "tr.csv" || cfg.Output.DevFile != "dev.csv" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Output.Delimiter != "|" {
		t.Errorf("output.delimiter = %q", cfg.Output.Delimiter)
	}

	// Check
	if !cfg.Check.Skip {
		t.Error("check.skip should be true")
	}
	if cfg.Check.TrainCount != 12 {
		t.Errorf("check.train_count = %d, want 12", cfg.Check.TrainCount)
	}
	if cfg.Check.DevLastWord != "dissolve" {
		t.Errorf("check.dev_last_word = %q, want default", cfg.Check.DevLastWord)
	}

	// Database / export
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if !cfg.Export.Enabled || cfg.Export.Timeout != 90*time.Second {
		t.Errorf("export = %+v", cfg.Export)
	}

	// Log
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	chdirEmpty(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Lexicon.Format != FormatWNDB {
		t.Errorf("lexicon.format = %q, want %q", cfg.Lexicon.Format, FormatWNDB)
	}
	if !slices.Equal(cfg.Lexicon.FileOrder, []string{"adj", "adv", "noun", "verb"}) {
		t.Errorf("lexicon.file_order = %v", cfg.Lexicon.FileOrder)
	}
	if cfg.Split.Seed != 742382 || cfg.Build.Seed != 846271 {
		t.Errorf("seeds = %d/%d, want 742382/846271", cfg.Split.Seed, cfg.Build.Seed)
	}
	if cfg.Split.TrainCut != 0.8 || cfg.Split.DevCut != 0.9 {
		t.Errorf("cuts = %v/%v", cfg.Split.TrainCut, cfg.Split.DevCut)
	}
	if cfg.Filter.SenseKeyPath != "filterlist_deconf.txt" || cfg.Filter.WordPath != "filterlist_word2vec.txt" {
		t.Errorf("filter = %+v", cfg.Filter)
	}
	if cfg.Output.Delimiter != ";" {
		t.Errorf("output.delimiter = %q", cfg.Output.Delimiter)
	}
	if cfg.Check.Skip {
		t.Error("reference check should run by default")
	}

	exp := cfg.Check.Expectations()
	if exp["train"].Count != 85136 || exp["train"].FirstWord != "heroism" {
		t.Errorf("train expectation = %+v", exp["train"])
	}
	if exp["dev"].Count != 10521 || exp["dev"].LastWord != "dissolve" || exp["dev"].FirstWord != "" {
		t.Errorf("dev expectation = %+v", exp["dev"])
	}
	if exp["test"].Count != 10502 || exp["test"].FirstWord != "dependent" {
		t.Errorf("test expectation = %+v", exp["test"])
	}
	if cfg.Export.Enabled {
		t.Error("export should be disabled by default")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SPLIT_SEED", "7")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Split.Seed != 7 {
		t.Errorf("split.seed = %d, want 7 (ENV override)", cfg.Split.Seed)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_ArgumentBeatsConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Lexicon.Format != FormatGWN {
		t.Errorf("lexicon.format = %q, want file value", cfg.Lexicon.Format)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_InvalidValueFailsValidation(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SPLIT_TRAIN_CUT", "1.5")
	chdirEmpty(t)

	if _, err := Load(""); err == nil {
		t.Fatal("expected validation error for train_cut > 1")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown format", func(c *Config) { c.Lexicon.Format = "xml" }, true},
		{"empty lexicon path", func(c *Config) { c.Lexicon.Path = "" }, true},
		{"unknown data file", func(c *Config) { c.Lexicon.FileOrderRaw = "adj,pronoun" }, true},
		{"empty wndb order", func(c *Config) { c.Lexicon.FileOrderRaw = " " }, true},
		{"empty order ok for gwn", func(c *Config) { c.Lexicon.Format = FormatGWN; c.Lexicon.FileOrderRaw = "" }, false},
		{"train cut zero", func(c *Config) { c.Split.TrainCut = 0 }, true},
		{"dev cut below train cut", func(c *Config) { c.Split.DevCut = 0.5 }, true},
		{"dev cut above one", func(c *Config) { c.Split.DevCut = 1.1 }, true},
		{"all train", func(c *Config) { c.Split.TrainCut = 1; c.Split.DevCut = 1 }, false},
		{"empty separator", func(c *Config) { c.Build.Separator = "" }, true},
		{"unknown tokenizer", func(c *Config) { c.Build.Tokenizer = "spacy" }, true},
		{"two-char delimiter", func(c *Config) { c.Output.Delimiter = ";;" }, true},
		{"space delimiter", func(c *Config) { c.Output.Delimiter = " " }, true},
		{"backslash delimiter", func(c *Config) { c.Output.Delimiter = `\` }, true},
		{"delimiter equals separator", func(c *Config) { c.Output.Delimiter = "_" }, true},
		{"tab delimiter", func(c *Config) { c.Output.Delimiter = "\t" }, false},
		{"duplicate file", func(c *Config) { c.Output.DevFile = c.Output.TrainFile }, true},
		{"file with dir", func(c *Config) { c.Output.TestFile = "sub/test.csv" }, true},
		{"export without dsn", func(c *Config) { c.Export.Enabled = true }, true},
		{"export with dsn", func(c *Config) { c.Export.Enabled = true; c.Database.DSN = "postgres://x" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseFileOrder(t *testing.T) {
	got, err := ParseFileOrder(" noun , verb,,adj ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"noun", "verb", "adj"}) {
		t.Errorf("got %v", got)
	}

	if got, err := ParseFileOrder(""); err != nil || got != nil {
		t.Errorf("empty: got %v, %v", got, err)
	}
	if _, err := ParseFileOrder("noun,noun"); err == nil {
		t.Error("expected error for duplicate file")
	}
}

func TestOutputConfig_FileFor(t *testing.T) {
	o := OutputConfig{TrainFile: "a", DevFile: "b", TestFile: "c"}
	if o.FileFor("train") != "a" || o.FileFor("dev") != "b" || o.FileFor("test") != "c" || o.FileFor("x") != "" {
		t.Errorf("unexpected FileFor mapping for %+v", o)
	}
}

func validConfig() Config {
	return Config{
		Lexicon: LexiconConfig{Format: FormatWNDB, Path: "./dict", FileOrderRaw: "adj,adv,noun,verb"},
		Split:   SplitConfig{Seed: 742382, TrainCut: 0.8, DevCut: 0.9},
		Build:   BuildConfig{Seed: 846271, Separator: "_", Tokenizer: TokenizerProse},
		Output: OutputConfig{
			Dir:          ".",
			TrainFile:    "train.csv",
			DevFile:      "dev.csv",
			TestFile:     "test.csv",
			ManifestFile: "manifest.yaml",
			Delimiter:    ";",
		},
	}
}
