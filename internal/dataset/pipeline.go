package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/revdict/internal/config"
	"github.com/heartmarshall/revdict/internal/domain"
	"github.com/heartmarshall/revdict/internal/lexicon"
	"github.com/heartmarshall/revdict/internal/pyrand"
	"github.com/heartmarshall/revdict/internal/tokenize"
	"github.com/heartmarshall/revdict/pkg/ctxutil"
)

// Stage names in execution order.
const (
	StageLoad     = "load"
	StageSplit    = "split"
	StageFilters  = "filters"
	StageBuild    = "build"
	StageCheck    = "check"
	StageWrite    = "write"
	StageManifest = "manifest"
	StageExport   = "export"
)

// AllStages defines the canonical execution order.
var AllStages = []string{StageLoad, StageSplit, StageFilters, StageBuild, StageCheck, StageWrite, StageManifest, StageExport}

// Exporter stores a finished run. Implemented by the postgres dataset repo.
type Exporter interface {
	ExportRun(ctx context.Context, run domain.DatasetRun, instances map[domain.Split][]domain.Instance) (int, error)
}

// Options alter a single pipeline run.
type Options struct {
	Version   string
	DryRun    bool
	SkipCheck bool
}

// StageResult holds the outcome of a single pipeline stage.
type StageResult struct {
	Items    int
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Result is what a successful run produced.
type Result struct {
	Run      domain.DatasetRun
	Dataset  *Dataset
	Stats    BuildStats
	Manifest *Manifest
}

// Pipeline orchestrates one dataset build.
type Pipeline struct {
	log       *slog.Logger
	cfg       *config.Config
	source    lexicon.Source
	tokenizer tokenize.Tokenizer
	exporter  Exporter
	opts      Options
	results   map[string]StageResult

	now   func() time.Time
	newID func() uuid.UUID
}

// NewPipeline creates a new Pipeline. exporter may be nil.
func NewPipeline(log *slog.Logger, cfg *config.Config, source lexicon.Source, tok tokenize.Tokenizer, exporter Exporter, opts Options) *Pipeline {
	return &Pipeline{
		log:       log,
		cfg:       cfg,
		source:    source,
		tokenizer: tok,
		exporter:  exporter,
		opts:      opts,
		results:   make(map[string]StageResult),
		now:       time.Now,
		newID:     uuid.New,
	}
}

// Results returns stage results after Run completes.
func (p *Pipeline) Results() map[string]StageResult {
	return p.results
}

// Run executes every stage in order and stops at the first error.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	cfg := p.cfg
	res := &Result{
		Run: domain.DatasetRun{
			ID:            p.newID(),
			Version:       p.opts.Version,
			LexiconFormat: cfg.Lexicon.Format,
			LexiconPath:   cfg.Lexicon.Path,
			SplitSeed:     cfg.Split.Seed,
			BuildSeed:     cfg.Build.Seed,
			TrainCut:      cfg.Split.TrainCut,
			DevCut:        cfg.Split.DevCut,
			CreatedAt:     p.now().UTC(),
		},
	}
	ctx = ctxutil.WithRunID(ctx, res.Run.ID)
	p.log.InfoContext(ctx, "pipeline started",
		slog.String("lexicon", cfg.Lexicon.Path),
		slog.Bool("dry_run", p.opts.DryRun),
	)

	// Step 1: Load the corpus.
	var synsets []domain.Synset
	if err := p.stage(ctx, StageLoad, func(ctx context.Context) (int, error) {
		var err error
		synsets, err = p.source.Synsets(ctx)
		return len(synsets), err
	}); err != nil {
		return nil, err
	}

	// Step 2: Partition by synset.
	var partition Partition
	if err := p.stage(ctx, StageSplit, func(ctx context.Context) (int, error) {
		var err error
		partition, err = Split(synsets, pyrand.New(cfg.Split.Seed), cfg.Split.TrainCut, cfg.Split.DevCut)
		if err != nil {
			return 0, err
		}
		p.log.InfoContext(ctx, "synsets partitioned",
			slog.Int("train", len(partition.Train)),
			slog.Int("dev", len(partition.Dev)),
			slog.Int("test", len(partition.Test)),
		)
		return partition.Len(), nil
	}); err != nil {
		return nil, err
	}

	// Step 3: Exclusion lists.
	var rules Rules
	if err := p.stage(ctx, StageFilters, func(ctx context.Context) (int, error) {
		senseKeys, err := LoadExclusionList(cfg.Filter.SenseKeyPath)
		if err != nil {
			return 0, err
		}
		words, err := LoadExclusionList(cfg.Filter.WordPath)
		if err != nil {
			return 0, err
		}
		rules = Rules{Separator: cfg.Build.Separator, SenseKeys: senseKeys, Words: words}
		return senseKeys.Len() + words.Len(), nil
	}); err != nil {
		return nil, err
	}

	// Step 4: Expand every split into instances.
	instances := make(map[domain.Split][]domain.Instance, len(domain.AllSplits))
	if err := p.stage(ctx, StageBuild, func(ctx context.Context) (int, error) {
		builder := NewBuilder(p.tokenizer, cfg.Build.Separator, rules.SenseKeys, rules.Words, pyrand.New(cfg.Build.Seed))
		total := 0
		for _, split := range domain.AllSplits {
			built, stats, err := builder.Build(ctx, partition.Get(split))
			if err != nil {
				return total, fmt.Errorf("build %s: %w", split, err)
			}
			instances[split] = built
			res.Stats.Add(stats)
			total += len(built)
			p.log.InfoContext(ctx, "split built",
				slog.String("split", split.String()),
				slog.Int("synsets", stats.Synsets),
				slog.Int("instances", stats.Instances),
				slog.Int("multi_word_only", stats.MultiWordOnly),
				slog.Int("sense_key_excluded", stats.SenseKeyExcluded),
				slog.Int("word_excluded", stats.WordExcluded),
			)
		}
		return total, nil
	}); err != nil {
		return nil, err
	}
	res.Dataset = &Dataset{Partition: &partition, CorpusSize: len(synsets), Instances: instances}

	// Step 5: Invariants and reference expectations.
	if err := p.stage(ctx, StageCheck, func(ctx context.Context) (int, error) {
		var expectations map[string]config.Expectation
		if !cfg.Check.Skip && !p.opts.SkipCheck {
			expectations = cfg.Check.Expectations()
		}
		return len(expectations), Check(res.Dataset, rules, expectations)
	}); err != nil {
		return nil, err
	}

	if p.opts.DryRun {
		p.skip(ctx, StageWrite, StageManifest, StageExport)
		p.log.InfoContext(ctx, "pipeline completed", slog.Bool("dry_run", true))
		return res, nil
	}

	// Step 6: Write one file per split.
	files := make([]ManifestFile, 0, len(domain.AllSplits))
	if err := p.stage(ctx, StageWrite, func(ctx context.Context) (int, error) {
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return 0, fmt.Errorf("%w: %w", domain.ErrIO, err)
		}
		w := NewWriter(cfg.Output.Delimiter)
		for _, split := range domain.AllSplits {
			name := cfg.Output.FileFor(split.String())
			sum, err := w.WriteFile(filepath.Join(cfg.Output.Dir, name), instances[split])
			if err != nil {
				return len(files), fmt.Errorf("write %s: %w", split, err)
			}
			files = append(files, newManifestFile(split, name, len(partition.Get(split)), instances[split], sum))
		}
		return len(files), nil
	}); err != nil {
		return nil, err
	}

	// Step 7: Manifest.
	if err := p.stage(ctx, StageManifest, func(ctx context.Context) (int, error) {
		res.Manifest = p.manifest(res.Run, len(synsets), rules, files)
		return 1, WriteManifest(filepath.Join(cfg.Output.Dir, cfg.Output.ManifestFile), res.Manifest)
	}); err != nil {
		return nil, err
	}

	// Step 8: Optional database export.
	if p.exporter == nil || !cfg.Export.Enabled {
		p.skip(ctx, StageExport)
	} else if err := p.stage(ctx, StageExport, func(ctx context.Context) (int, error) {
		exportCtx := ctx
		if cfg.Export.Timeout > 0 {
			var cancel context.CancelFunc
			exportCtx, cancel = context.WithTimeout(ctx, cfg.Export.Timeout)
			defer cancel()
		}
		return p.exporter.ExportRun(exportCtx, res.Run, instances)
	}); err != nil {
		return nil, err
	}

	p.log.InfoContext(ctx, "pipeline completed",
		slog.Int("instances", res.Stats.Instances),
	)
	return res, nil
}

// stage runs fn as the named stage, records its result and logs it.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) (int, error)) error {
	ctx = ctxutil.WithStage(ctx, name)
	start := time.Now()
	p.log.InfoContext(ctx, "starting stage")

	items, err := fn(ctx)
	result := StageResult{Items: items, Duration: time.Since(start), Err: err}
	p.results[name] = result

	if err != nil {
		p.log.ErrorContext(ctx, "stage failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", result.Duration),
		)
		return fmt.Errorf("%s: %w", name, err)
	}
	p.log.InfoContext(ctx, "stage completed",
		slog.Int("items", items),
		slog.Duration("duration", result.Duration),
	)
	return nil
}

func (p *Pipeline) skip(ctx context.Context, names ...string) {
	for _, name := range names {
		p.results[name] = StageResult{Skipped: true}
		p.log.InfoContext(ctxutil.WithStage(ctx, name), "stage skipped")
	}
}

func (p *Pipeline) manifest(run domain.DatasetRun, corpusSize int, rules Rules, files []ManifestFile) *Manifest {
	cfg := p.cfg
	return &Manifest{
		RunID:     run.ID.String(),
		Version:   run.Version,
		CreatedAt: run.CreatedAt,
		Lexicon: ManifestLexicon{
			Format:  run.LexiconFormat,
			Path:    run.LexiconPath,
			Synsets: corpusSize,
		},
		Split: ManifestSplit{Seed: run.SplitSeed, TrainCut: run.TrainCut, DevCut: run.DevCut},
		Build: ManifestBuild{Seed: run.BuildSeed, Tokenizer: cfg.Build.Tokenizer, Separator: cfg.Build.Separator},
		Filters: ManifestFilters{
			SenseKeyPath: cfg.Filter.SenseKeyPath,
			SenseKeys:    rules.SenseKeys.Len(),
			WordPath:     cfg.Filter.WordPath,
			Words:        rules.Words.Len(),
		},
		Delimiter: cfg.Output.Delimiter,
		Files:     files,
	}
}
