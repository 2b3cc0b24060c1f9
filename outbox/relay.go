// Package outbox dispatches the transactional outbox written by the
// agreement services. Messages are enqueued in the same transaction as the
// state change they announce; the relay claims pending rows and delivers
// them to downstream consumers at least once.
package outbox

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

const (
	statusPending   = "pending"
	statusProcessed = "processed"
	statusDead      = "dead"

	maxAttempts = 5
)

// Publisher delivers one outbox message to its downstream destination.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type message struct {
	id       string
	topic    string
	payload  []byte
	attempts int
}

// Relay polls the outbox table and fans message delivery out across a
// bounded worker group. Rows are claimed with SKIP LOCKED so multiple relay
// instances never double-deliver within one claim window.
type Relay struct {
	pool      TxBeginner
	pub       Publisher
	batchSize int
	workers   int
	interval  time.Duration
}

func NewRelay(pool TxBeginner, pub Publisher, batchSize, workers int) *Relay {
	if batchSize <= 0 {
		batchSize = 50
	}
	if workers <= 0 {
		workers = 4
	}
	return &Relay{
		pool:      pool,
		pub:       pub,
		batchSize: batchSize,
		workers:   workers,
		interval:  500 * time.Millisecond,
	}
}

func (r *Relay) WithInterval(d time.Duration) *Relay {
	r.interval = d
	return r
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n, err := r.DispatchOnce(ctx); err != nil {
				log.Printf("outbox: dispatch error: %v", err)
			} else if n > 0 {
				log.Printf("outbox: dispatched %d messages", n)
			}
		}
	}
}

// DispatchOnce claims one batch of pending messages, publishes them
// concurrently, and records the outcome per message. It returns the number
// of messages successfully delivered.
func (r *Relay) DispatchOnce(ctx context.Context) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("outbox: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
        SELECT id, topic, payload, attempts
        FROM outbox
        WHERE status = $1
        ORDER BY created_at ASC
        LIMIT $2
        FOR UPDATE SKIP LOCKED
    `, statusPending, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("outbox: claim batch: %w", err)
	}

	var batch []message
	for rows.Next() {
		var m message
		if err := rows.Scan(&m.id, &m.topic, &m.payload, &m.attempts); err != nil {
			rows.Close()
			return 0, fmt.Errorf("outbox: scan message: %w", err)
		}
		batch = append(batch, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("outbox: read batch: %w", err)
	}
	if len(batch) == 0 {
		return 0, nil
	}

	delivered := make([]bool, len(batch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, m := range batch {
		g.Go(func() error {
			if err := r.pub.Publish(gctx, m.topic, m.payload); err != nil {
				log.Printf("outbox: publish %s (%s): %v", m.id, m.topic, err)
				return nil
			}
			delivered[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("outbox: publish batch: %w", err)
	}

	var processed int
	for i, m := range batch {
		if delivered[i] {
			if _, err := tx.Exec(ctx, `UPDATE outbox SET status = $1, attempts = attempts + 1 WHERE id = $2`, statusProcessed, m.id); err != nil {
				return 0, fmt.Errorf("outbox: mark processed: %w", err)
			}
			processed++
			continue
		}
		next := statusPending
		if m.attempts+1 >= maxAttempts {
			next = statusDead
		}
		if _, err := tx.Exec(ctx, `UPDATE outbox SET status = $1, attempts = attempts + 1 WHERE id = $2`, next, m.id); err != nil {
			return 0, fmt.Errorf("outbox: mark retry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("outbox: commit: %w", err)
	}
	return processed, nil
}
