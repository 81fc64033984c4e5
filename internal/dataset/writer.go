package dataset

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/revdict/internal/domain"
)

const (
	escapeChar    = `\`
	tokenSep      = " "
	maxLineLength = 1 << 20
)

// Writer serializes instances as "word<delim>description" lines.
// The description is the space-joined token list with every delimiter
// escaped by a backslash. The word is never escaped.
type Writer struct {
	delim   string
	escaped string
}

// NewWriter creates a Writer for a single-character delimiter.
func NewWriter(delimiter string) *Writer {
	return &Writer{delim: delimiter, escaped: escapeChar + delimiter}
}

// FormatLine returns the serialized instance without a line terminator.
// A word containing the delimiter is an *domain.IntegrityError.
func (w *Writer) FormatLine(inst domain.Instance) (string, error) {
	if strings.Contains(inst.Word, w.delim) {
		return "", domain.NewIntegrityError("", "word", "no "+w.delim, inst.Word)
	}
	desc := strings.ReplaceAll(strings.Join(inst.Description, tokenSep), w.delim, w.escaped)
	return inst.Word + w.delim + desc, nil
}

// WriteInstances writes one line per instance to dst.
func (w *Writer) WriteInstances(dst io.Writer, instances []domain.Instance) error {
	bw := bufio.NewWriter(dst)
	for i, inst := range instances {
		line, err := w.FormatLine(inst)
		if err != nil {
			return fmt.Errorf("instance %d: %w", i, err)
		}
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrIO, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", domain.ErrIO, err)
	}
	return nil
}

// WriteFile writes instances to path and returns the hex SHA-256 of the
// written bytes. The file appears under its final name only on success.
func (w *Writer) WriteFile(path string, instances []domain.Instance) (string, error) {
	h := sha256.New()
	err := writeAtomic(path, func(f io.Writer) error {
		return w.WriteInstances(io.MultiWriter(f, h), instances)
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ParseLine reverses FormatLine.
func (w *Writer) ParseLine(line string) (domain.Instance, error) {
	word, desc, found := strings.Cut(line, w.delim)
	if !found {
		return domain.Instance{}, fmt.Errorf("missing delimiter %q", w.delim)
	}
	inst := domain.Instance{Word: word}
	if desc != "" {
		inst.Description = strings.Split(strings.ReplaceAll(desc, w.escaped, w.delim), tokenSep)
	}
	return inst, nil
}

// ReadInstances parses every line of r.
func (w *Writer) ReadInstances(r io.Reader) ([]domain.Instance, error) {
	var instances []domain.Instance
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		inst, err := w.ParseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		instances = append(instances, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	return instances, nil
}

// ReadFile parses the instance file at path.
func (w *Writer) ReadFile(path string) ([]domain.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	defer f.Close()

	instances, err := w.ReadInstances(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return instances, nil
}

// writeAtomic writes to a temporary file next to path and renames it into
// place after fill succeeds. Errors not already classified are ErrIO.
func writeAtomic(path string, fill func(io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", domain.ErrIO, path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		if !errors.Is(err, domain.ErrIO) && !errors.Is(err, domain.ErrDataIntegrity) {
			err = fmt.Errorf("%w: %w", domain.ErrIO, err)
		}
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%w: sync %s: %w", domain.ErrIO, path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", domain.ErrIO, path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", domain.ErrIO, path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: rename %s: %w", domain.ErrIO, path, err)
	}
	return nil
}

// FileSHA256 returns the hex SHA-256 of the file at path.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrIO, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("%w: read %s: %w", domain.ErrIO, path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
