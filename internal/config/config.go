package config

import "time"

// Config is the root configuration of a dataset build.
type Config struct {
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Filter   FilterConfig   `yaml:"filter"`
	Split    SplitConfig    `yaml:"split"`
	Build    BuildConfig    `yaml:"build"`
	Output   OutputConfig   `yaml:"output"`
	Check    CheckConfig    `yaml:"check"`
	Database DatabaseConfig `yaml:"database"`
	Export   ExportConfig   `yaml:"export"`
	Log      LogConfig      `yaml:"log"`
}

// LexiconConfig selects the lexical database.
type LexiconConfig struct {
	Format       string `yaml:"format"     env:"LEXICON_FORMAT"     env-default:"wndb"`
	Path         string `yaml:"path"       env:"LEXICON_PATH"       env-default:"./wordnet/dict"`
	FileOrderRaw string `yaml:"file_order" env:"LEXICON_FILE_ORDER" env-default:"adj,adv,noun,verb"`

	// FileOrder is parsed from FileOrderRaw during validation.
	FileOrder []string `yaml:"-" env:"-"`
}

// FilterConfig holds the exclusion list paths.
type FilterConfig struct {
	SenseKeyPath string `yaml:"sense_key_path" env:"FILTER_SENSE_KEY_PATH" env-default:"filterlist_deconf.txt"`
	WordPath     string `yaml:"word_path"      env:"FILTER_WORD_PATH"      env-default:"filterlist_word2vec.txt"`
}

// SplitConfig holds the synset partitioning settings.
// TrainCut and DevCut are cumulative fractions of the shuffled synset list.
type SplitConfig struct {
	Seed     int64   `yaml:"seed"      env:"SPLIT_SEED"      env-default:"742382"`
	TrainCut float64 `yaml:"train_cut" env:"SPLIT_TRAIN_CUT" env-default:"0.8"`
	DevCut   float64 `yaml:"dev_cut"   env:"SPLIT_DEV_CUT"   env-default:"0.9"`
}

// BuildConfig holds the instance builder settings.
type BuildConfig struct {
	Seed      int64  `yaml:"seed"      env:"BUILD_SEED"      env-default:"846271"`
	Separator string `yaml:"separator" env:"BUILD_SEPARATOR" env-default:"_"`
	Tokenizer string `yaml:"tokenizer" env:"BUILD_TOKENIZER" env-default:"prose"`
}

// OutputConfig holds the file writer settings.
type OutputConfig struct {
	Dir          string `yaml:"dir"           env:"OUTPUT_DIR"           env-default:"."`
	TrainFile    string `yaml:"train_file"    env:"OUTPUT_TRAIN_FILE"    env-default:"train.csv"`
	DevFile      string `yaml:"dev_file"      env:"OUTPUT_DEV_FILE"      env-default:"dev.csv"`
	TestFile     string `yaml:"test_file"     env:"OUTPUT_TEST_FILE"     env-default:"test.csv"`
	ManifestFile string `yaml:"manifest_file" env:"OUTPUT_MANIFEST_FILE" env-default:"manifest.yaml"`
	Delimiter    string `yaml:"delimiter"     env:"OUTPUT_DELIMITER"     env-default:";"`
}

// CheckConfig holds the post-build reference expectations.
// A count <= 0 or an empty word disables that comparison. Zero values in YAML
// fall back to the defaults, so use -1 to disable a count, or Skip to disable
// every reference comparison. Invariant checks always run.
type CheckConfig struct {
	Skip           bool   `yaml:"skip"             env:"CHECK_SKIP"`
	TrainCount     int    `yaml:"train_count"      env:"CHECK_TRAIN_COUNT"      env-default:"85136"`
	TrainFirstWord string `yaml:"train_first_word" env:"CHECK_TRAIN_FIRST_WORD" env-default:"heroism"`
	TrainLastWord  string `yaml:"train_last_word"  env:"CHECK_TRAIN_LAST_WORD"`
	DevCount       int    `yaml:"dev_count"        env:"CHECK_DEV_COUNT"        env-default:"10521"`
	DevFirstWord   string `yaml:"dev_first_word"   env:"CHECK_DEV_FIRST_WORD"`
	DevLastWord    string `yaml:"dev_last_word"    env:"CHECK_DEV_LAST_WORD"    env-default:"dissolve"`
	TestCount      int    `yaml:"test_count"       env:"CHECK_TEST_COUNT"       env-default:"10502"`
	TestFirstWord  string `yaml:"test_first_word"  env:"CHECK_TEST_FIRST_WORD"  env-default:"dependent"`
	TestLastWord   string `yaml:"test_last_word"   env:"CHECK_TEST_LAST_WORD"`
}

// DatabaseConfig holds PostgreSQL connection settings for the export.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// ExportConfig controls the optional database export.
type ExportConfig struct {
	Enabled bool          `yaml:"enabled" env:"EXPORT_ENABLED" env-default:"false"`
	Timeout time.Duration `yaml:"timeout" env:"EXPORT_TIMEOUT" env-default:"10m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Expectation is the reference shape of one built split.
type Expectation struct {
	Count     int
	FirstWord string
	LastWord  string
}

// Expectations returns the configured expectations keyed by split name.
func (c CheckConfig) Expectations() map[string]Expectation {
	return map[string]Expectation{
		"train": {Count: c.TrainCount, FirstWord: c.TrainFirstWord, LastWord: c.TrainLastWord},
		"dev":   {Count: c.DevCount, FirstWord: c.DevFirstWord, LastWord: c.DevLastWord},
		"test":  {Count: c.TestCount, FirstWord: c.TestFirstWord, LastWord: c.TestLastWord},
	}
}

// FileFor returns the configured file name for a split name.
func (o OutputConfig) FileFor(split string) string {
	switch split {
	case "train":
		return o.TrainFile
	case "dev":
		return o.DevFile
	case "test":
		return o.TestFile
	}
	return ""
}
