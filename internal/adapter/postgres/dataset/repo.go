// Package dataset stores built datasets in PostgreSQL: one dataset_runs row
// per build and one dataset_instances row per instance.
package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/revdict/internal/adapter/postgres"
	"github.com/heartmarshall/revdict/internal/domain"
)

const (
	runsTable      = "dataset_runs"
	instancesTable = "dataset_instances"
)

var instanceColumns = []string{"run_id", "split", "position", "word", "description", "synset_id", "sense_key"}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides dataset persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
}

// New creates a new dataset repository.
func New(pool *pgxpool.Pool, tx *postgres.TxManager) *Repo {
	return &Repo{pool: pool, tx: tx}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// ExportRun stores run and every instance in one transaction and returns the
// number of instance rows written. Instances are streamed with COPY;
// position is the instance index within its split.
func (r *Repo) ExportRun(ctx context.Context, run domain.DatasetRun, instances map[domain.Split][]domain.Instance) (int, error) {
	var total int64
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.insertRun(ctx, run); err != nil {
			return err
		}

		q := postgres.QuerierFromCtx(ctx, r.pool)
		for _, split := range domain.AllSplits {
			n, err := q.CopyFrom(ctx,
				pgx.Identifier{instancesTable},
				instanceColumns,
				newInstanceSource(run.ID, split, instances[split]),
			)
			if err != nil {
				return postgres.MapError(err, "dataset run", run.ID)
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("export run: %w", err)
	}
	return int(total), nil
}

func (r *Repo) insertRun(ctx context.Context, run domain.DatasetRun) error {
	sql, args, err := psql.Insert(runsTable).
		Columns("id", "version", "lexicon_format", "lexicon_path", "split_seed", "build_seed", "train_cut", "dev_cut", "created_at").
		Values(run.ID, run.Version, run.LexiconFormat, run.LexiconPath, run.SplitSeed, run.BuildSeed, run.TrainCut, run.DevCut, run.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert run: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "dataset run", run.ID)
	}
	return nil
}

// DeleteRun removes a run and, by cascade, its instances.
func (r *Repo) DeleteRun(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Delete(runsTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete run: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "dataset run", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dataset run %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetRun returns a run by primary key.
// Returns domain.ErrNotFound if the run does not exist.
func (r *Repo) GetRun(ctx context.Context, id uuid.UUID) (domain.DatasetRun, error) {
	sql, args, err := psql.
		Select("id", "version", "lexicon_format", "lexicon_path", "split_seed", "build_seed", "train_cut", "dev_cut", "created_at").
		From(runsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.DatasetRun{}, fmt.Errorf("build get run: %w", err)
	}

	var (
		run       domain.DatasetRun
		createdAt time.Time
	)
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(
		&run.ID, &run.Version, &run.LexiconFormat, &run.LexiconPath,
		&run.SplitSeed, &run.BuildSeed, &run.TrainCut, &run.DevCut, &createdAt,
	)
	if err != nil {
		return domain.DatasetRun{}, postgres.MapError(err, "dataset run", id)
	}
	run.CreatedAt = createdAt.UTC()
	return run, nil
}

// CountBySplit returns the number of stored instances per split of a run.
// Splits without instances are present with a zero count.
func (r *Repo) CountBySplit(ctx context.Context, runID uuid.UUID) (map[domain.Split]int, error) {
	sql, args, err := psql.
		Select("split", "count(*)").
		From(instancesTable).
		Where(squirrel.Eq{"run_id": runID}).
		GroupBy("split").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count by split: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "dataset run", runID)
	}
	defer rows.Close()

	counts := make(map[domain.Split]int, len(domain.AllSplits))
	for _, split := range domain.AllSplits {
		counts[split] = 0
	}
	for rows.Next() {
		var (
			split string
			n     int64
		)
		if err := rows.Scan(&split, &n); err != nil {
			return nil, postgres.MapError(err, "dataset run", runID)
		}
		counts[domain.Split(split)] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "dataset run", runID)
	}
	return counts, nil
}

// ListBySplit returns instances of one split in position order.
// A limit <= 0 returns every remaining instance.
func (r *Repo) ListBySplit(ctx context.Context, runID uuid.UUID, split domain.Split, limit, offset int) ([]domain.Instance, error) {
	if !split.IsValid() {
		return nil, fmt.Errorf("list by split: unknown split %q: %w", split, domain.ErrConfiguration)
	}

	query := psql.
		Select("word", "description", "synset_id", "sense_key").
		From(instancesTable).
		Where(squirrel.Eq{"run_id": runID, "split": split.String()}).
		OrderBy("position")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}
	if offset > 0 {
		query = query.Offset(uint64(offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list by split: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "dataset run", runID)
	}
	defer rows.Close()

	var instances []domain.Instance
	for rows.Next() {
		var inst domain.Instance
		if err := rows.Scan(&inst.Word, &inst.Description, &inst.SynsetID, &inst.SenseKey); err != nil {
			return nil, postgres.MapError(err, "dataset run", runID)
		}
		instances = append(instances, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "dataset run", runID)
	}
	return instances, nil
}
