// Package lexicon opens the lexical database named by configuration and
// exposes its synsets in a fixed, reproducible order.
package lexicon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/revdict/internal/config"
	"github.com/heartmarshall/revdict/internal/domain"
	"github.com/heartmarshall/revdict/internal/lexicon/gwn"
	"github.com/heartmarshall/revdict/internal/lexicon/wndb"
)

// Source enumerates every synset of a lexical database. Two calls on the
// same Source return the same synsets in the same order.
type Source interface {
	Synsets(ctx context.Context) ([]domain.Synset, error)
}

// Open returns the Source for cfg.Format.
func Open(cfg config.LexiconConfig) (Source, error) {
	switch cfg.Format {
	case config.FormatWNDB:
		return &wndbSource{dir: cfg.Path, order: cfg.FileOrder}, nil
	case config.FormatGWN:
		return &gwnSource{path: cfg.Path}, nil
	}
	return nil, fmt.Errorf("lexicon: unknown format %q: %w", cfg.Format, domain.ErrConfiguration)
}

type wndbSource struct {
	dir   string
	order []string
}

func (s *wndbSource) Synsets(ctx context.Context) ([]domain.Synset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := wndb.Parse(s.dir, s.order)
	if err != nil {
		return nil, fmt.Errorf("lexicon wndb: %w", err)
	}
	slog.DebugContext(ctx, "wndb parsed",
		slog.String("dir", s.dir),
		slog.Int("files", result.Stats.Files),
		slog.Int("synsets", result.Stats.Synsets),
		slog.Int("lemmas", result.Stats.Lemmas),
		slog.Int("satellites", result.Stats.Satellites),
		slog.Int("license_lines", result.Stats.LicenseLines),
	)
	return result.Synsets, nil
}

type gwnSource struct {
	path string
}

func (s *gwnSource) Synsets(ctx context.Context) ([]domain.Synset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := gwn.Parse(s.path)
	if err != nil {
		return nil, fmt.Errorf("lexicon gwn: %w", err)
	}
	slog.DebugContext(ctx, "gwn parsed",
		slog.String("path", s.path),
		slog.Int("entries", result.Stats.TotalEntries),
		slog.Int("synsets", result.Stats.TotalSynsets),
		slog.Int("senses", result.Stats.TotalSenses),
		slog.Int("orphan_senses", result.Stats.OrphanSenses),
		slog.Int("empty_synsets", result.Stats.EmptySynsets),
	)
	return result.Synsets, nil
}
