// Package worker archives expense-recorded events into the SQLite archive.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"expenselog/internal/amqp"
	"expenselog/internal/store/sqlite"
)

// Archiver copies every expense-recorded event into the archive table.
type Archiver struct {
	store         *sqlite.Store
	amqpURL       string
	exchangeName  string
	queueName     string
	statsInterval time.Duration
}

func NewArchiver(store *sqlite.Store, amqpURL, exchangeName, queueName string, statsInterval time.Duration) *Archiver {
	return &Archiver{
		store:         store,
		amqpURL:       amqpURL,
		exchangeName:  exchangeName,
		queueName:     queueName,
		statsInterval: statsInterval,
	}
}

// HandleRecorded archives one event. Replayed deliveries are harmless: the
// archive insert is idempotent on the expense id.
func (a *Archiver) HandleRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error {
	e, err := msg.Expense()
	if err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	if err := a.store.Archive(ctx, e); err != nil {
		return fmt.Errorf("archive expense: %w", err)
	}
	return nil
}

// Run consumes events until the context is cancelled, logging the archive
// size at a fixed interval alongside.
func (a *Archiver) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqp.ConsumeLoop(ctx, a.amqpURL, a.exchangeName, a.queueName, func(msg *amqp.ExpenseRecordedMessage) error {
			return a.HandleRecorded(ctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(a.statsInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				count, err := a.store.ArchivedCount(ctx)
				if err != nil {
					slog.WarnContext(ctx, "Failed to read archive size", "error", err)
					continue
				}
				slog.InfoContext(ctx, "Archive status", "archived_expenses", count)
			}
		}
	})

	return g.Wait()
}
