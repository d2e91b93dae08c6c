// Package flatfile persists the expense set as a flat text file, one encoded
// record per line. Every mutation rewrites the whole file; a crash mid-write
// can corrupt it. That tradeoff is part of the contract, not a bug.
package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"expenselog/internal/core"
)

// Store reads and rewrites a single backing file.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file line by line in file order. A missing file
// yields no records and no error. A line that fails to decode fails the
// whole load: malformed history is surfaced, never skipped silently.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.InfoContext(ctx, "No expense file found, starting fresh", "path", s.path)
			return nil, nil
		}
		return nil, fmt.Errorf("open expense file: %w", err)
	}
	defer f.Close()

	var expenses []core.Expense
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		e, err := core.DecodeLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		expenses = append(expenses, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read expense file: %w", err)
	}

	slog.DebugContext(ctx, "Loaded expenses from file", "path", s.path, "count", len(expenses))
	return expenses, nil
}

// Save overwrites the backing file with one encoded line per expense, in
// sequence order. The parent directory is created on first save.
func (s *Store) Save(ctx context.Context, expenses []core.Expense) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create expense file directory: %w", err)
		}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create expense file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, e := range expenses {
		if _, err := w.WriteString(core.EncodeLine(e) + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("write expense file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush expense file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close expense file: %w", err)
	}

	slog.DebugContext(ctx, "Saved expenses to file", "path", s.path, "count", len(expenses))
	return nil
}
