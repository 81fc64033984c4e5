package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/revdict/internal/adapter/postgres"
	pgdataset "github.com/heartmarshall/revdict/internal/adapter/postgres/dataset"
	"github.com/heartmarshall/revdict/internal/app"
	"github.com/heartmarshall/revdict/internal/config"
	"github.com/heartmarshall/revdict/internal/dataset"
	"github.com/heartmarshall/revdict/internal/domain"
	"github.com/heartmarshall/revdict/internal/lexicon"
	"github.com/heartmarshall/revdict/internal/tokenize"
)

// Compile-time interface assertion.
var _ dataset.Exporter = (*pgdataset.Repo)(nil)

type buildFlags struct {
	skipCheck bool
	dryRun    bool
}

func newBuildCmd(flags *rootFlags, build *buildFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build train/dev/test files from the lexical database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags, build)
		},
	}
	build.register(cmd)
	return cmd
}

// register binds the build flags to cmd. The root command registers them
// too, since it runs build by default.
func (b *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&b.skipCheck, "skip-check", false, "skip the reference count and word checks")
	cmd.Flags().BoolVar(&b.dryRun, "dry-run", false, "build and check without writing files or exporting")
}

func runBuild(cmd *cobra.Command, flags *rootFlags, build *buildFlags) error {
	ctx := cmd.Context()

	cfg, logger, err := loadConfig(flags)
	if err != nil {
		return err
	}
	logger.Info("starting", slog.String("version", app.BuildVersion()))

	source, err := lexicon.Open(cfg.Lexicon)
	if err != nil {
		return err
	}
	tok, err := tokenize.New(cfg.Build.Tokenizer)
	if err != nil {
		return err
	}

	var exporter dataset.Exporter
	if cfg.Export.Enabled && !build.dryRun {
		repo, closeFn, err := openExporter(ctx, cfg)
		if err != nil {
			logger.Error("connect to database", slog.String("error", err.Error()))
			return err
		}
		defer closeFn()
		exporter = repo
	}

	pipeline := dataset.NewPipeline(logger, cfg, source, tok, exporter, dataset.Options{
		Version:   app.Version,
		DryRun:    build.dryRun,
		SkipCheck: build.skipCheck,
	})
	res, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		return err
	}

	for _, split := range domain.AllSplits {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", split, len(res.Dataset.Instances[split]))
	}
	return nil
}

// openExporter migrates the export schema and returns a ready repository.
func openExporter(ctx context.Context, cfg *config.Config) (*pgdataset.Repo, func(), error) {
	if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return pgdataset.New(pool, postgres.NewTxManager(pool)), pool.Close, nil
}
