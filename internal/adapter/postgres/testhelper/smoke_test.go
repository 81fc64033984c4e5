//go:build integration

package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	run := SeedRun(t, pool)

	var version string
	err := pool.QueryRow(
		context.Background(),
		`SELECT version FROM dataset_runs WHERE id = $1`,
		run.ID,
	).Scan(&version)
	if err != nil {
		t.Fatalf("expected run in DB, got error: %v", err)
	}

	if version != run.Version {
		t.Fatalf("expected version %q, got %q", version, run.Version)
	}
}
