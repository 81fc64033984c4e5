package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/heartmarshall/revdict/internal/config"
	"github.com/heartmarshall/revdict/internal/domain"
)

// Verify re-reads a written dataset from cfg.Output.Dir and checks it
// against its manifest: file checksums, instance counts, a lossless
// parse/format round trip, the instance invariants and, unless skipped,
// the reference expectations.
func Verify(ctx context.Context, log *slog.Logger, cfg *config.Config, skipExpectations bool) (*Manifest, error) {
	m, err := ReadManifest(filepath.Join(cfg.Output.Dir, cfg.Output.ManifestFile))
	if err != nil {
		return nil, err
	}

	delim := m.Delimiter
	if delim == "" {
		delim = cfg.Output.Delimiter
	}
	w := NewWriter(delim)

	var violations []domain.Violation
	instances := make(map[domain.Split][]domain.Instance, len(domain.AllSplits))
	for _, split := range domain.AllSplits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry, ok := m.File(split)
		if !ok {
			violations = append(violations, domain.Violation{Split: split, Field: "manifest", Want: "file entry", Got: "missing"})
			continue
		}
		path := filepath.Join(cfg.Output.Dir, entry.Name)

		sum, err := FileSHA256(path)
		if err != nil {
			return nil, err
		}
		if sum != entry.SHA256 {
			violations = append(violations, domain.Violation{Split: split, Field: "sha256", Want: entry.SHA256, Got: sum})
		}

		read, err := w.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if len(read) != entry.Instances {
			violations = append(violations, domain.Violation{
				Split: split,
				Field: "count",
				Want:  strconv.Itoa(entry.Instances),
				Got:   strconv.Itoa(len(read)),
			})
		}

		h := sha256.New()
		if err := w.WriteInstances(h, read); err != nil {
			return nil, fmt.Errorf("reformat %s: %w", split, err)
		}
		if got := hex.EncodeToString(h.Sum(nil)); got != sum {
			violations = append(violations, domain.Violation{Split: split, Field: "round_trip", Want: sum, Got: got})
		}

		instances[split] = read
		log.Info("split verified",
			slog.String("split", split.String()),
			slog.String("file", entry.Name),
			slog.Int("instances", len(read)),
		)
	}
	if len(violations) > 0 {
		return m, &domain.IntegrityError{Violations: violations}
	}

	senseKeys, err := LoadExclusionList(cfg.Filter.SenseKeyPath)
	if err != nil {
		return m, err
	}
	words, err := LoadExclusionList(cfg.Filter.WordPath)
	if err != nil {
		return m, err
	}
	rules := Rules{Separator: m.Build.Separator, SenseKeys: senseKeys, Words: words}
	if rules.Separator == "" {
		rules.Separator = cfg.Build.Separator
	}

	var expectations map[string]config.Expectation
	if !skipExpectations && !cfg.Check.Skip {
		expectations = cfg.Check.Expectations()
	}
	if err := Check(&Dataset{Instances: instances}, rules, expectations); err != nil {
		return m, err
	}
	return m, nil
}
