// Package sqlite persists the expense set in a SQLite database. It honors
// the same full-replace Save contract as the flat-file store and additionally
// owns the archive table fed by the worker.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"expenselog/internal/core"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns all expenses in the order Save wrote them.
func (s *Store) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, spent_on, amount, category, description
		 FROM expenses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var (
			e          core.Expense
			spentOn    string
			amountText string
		)
		if err := rows.Scan(&e.ID, &spentOn, &amountText, &e.Category, &e.Description); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		if e.Date, err = core.ParseDate(spentOn); err != nil {
			return nil, fmt.Errorf("expense %d: %w", e.ID, err)
		}
		if e.Amount, err = decimal.NewFromString(amountText); err != nil {
			return nil, fmt.Errorf("expense %d: %w", e.ID, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

// Save replaces the whole expenses table with the given sequence inside one
// transaction. Dates and amounts are stored as text so values round-trip
// exactly.
func (s *Store) Save(ctx context.Context, expenses []core.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO expenses (expense_id, spent_on, amount, category, description)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range expenses {
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.Date.String(), e.Amount.String(), e.Category, e.Description); err != nil {
			return fmt.Errorf("insert expense %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit expenses: %w", err)
	}

	slog.DebugContext(ctx, "Saved expenses to SQLite", "count", len(expenses))
	return nil
}

// Archive records an expense in the archive table. The worker calls this for
// every expense-recorded event; replaying a message is a no-op thanks to the
// primary key on the expense id.
func (s *Store) Archive(ctx context.Context, e core.Expense) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO archived_expenses (expense_id, spent_on, amount, category, description)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (expense_id) DO NOTHING`,
		e.ID, e.Date.String(), e.Amount.String(), e.Category, e.Description)
	if err != nil {
		return fmt.Errorf("archive expense %d: %w", e.ID, err)
	}

	slog.InfoContext(ctx, "Expense archived",
		"id", e.ID,
		"date", e.Date.String(),
		"amount", e.Amount.String(),
		"category", e.Category)
	return nil
}

// ArchivedCount returns the number of archived expenses.
func (s *Store) ArchivedCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM archived_expenses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count archived expenses: %w", err)
	}
	return count, nil
}
