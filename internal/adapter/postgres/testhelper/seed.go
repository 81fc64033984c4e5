package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/revdict/internal/domain"
)

// SeedRun inserts a dataset_runs row with default values and no instances.
func SeedRun(t *testing.T, pool *pgxpool.Pool) domain.DatasetRun {
	t.Helper()

	run := domain.DatasetRun{
		ID:            uuid.New(),
		Version:       "test-" + uuid.New().String()[:8],
		LexiconFormat: "wndb",
		LexiconPath:   "testdata/dict",
		SplitSeed:     742382,
		BuildSeed:     846271,
		TrainCut:      0.8,
		DevCut:        0.9,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO dataset_runs (id, version, lexicon_format, lexicon_path, split_seed, build_seed, train_cut, dev_cut, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.Version, run.LexiconFormat, run.LexiconPath, run.SplitSeed, run.BuildSeed, run.TrainCut, run.DevCut, run.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRun: %v", err)
	}

	return run
}
