package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

type capturingPublisher struct {
	mu     sync.Mutex
	topics []string
	fail   map[string]bool
}

func (p *capturingPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail[topic] {
		return errors.New("downstream unavailable")
	}
	p.topics = append(p.topics, topic)
	return nil
}

func TestDispatchOnceEmptyBatch(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, topic, payload, attempts`).
		WithArgs(statusPending, 50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "topic", "payload", "attempts"}))
	mock.ExpectRollback()

	relay := NewRelay(mock, &capturingPublisher{}, 0, 0)
	n, err := relay.DispatchOnce(context.Background())
	if err != nil {
		t.Fatalf("DispatchOnce returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 dispatched, got %d", n)
	}
}

func TestDispatchOnceMarksProcessed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "topic", "payload", "attempts"}).
		AddRow("m-1", "agreement.created", []byte(`{}`), 0)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, topic, payload, attempts`).
		WithArgs(statusPending, 10).
		WillReturnRows(rows)
	mock.ExpectExec(`UPDATE outbox SET status = \$1, attempts = attempts \+ 1 WHERE id = \$2`).
		WithArgs(statusProcessed, "m-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	pub := &capturingPublisher{}
	relay := NewRelay(mock, pub, 10, 2)
	n, err := relay.DispatchOnce(context.Background())
	if err != nil {
		t.Fatalf("DispatchOnce returned error: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 dispatched, got %d", n)
	}
	if len(pub.topics) != 1 || pub.topics[0] != "agreement.created" {
		t.Errorf("unexpected published topics %v", pub.topics)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDispatchOnceRetriesThenDeadLetters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "topic", "payload", "attempts"}).
		AddRow("m-1", "agreement.fully_signed", []byte(`{}`), 1).
		AddRow("m-2", "agreement.fully_signed", []byte(`{}`), maxAttempts-1)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, topic, payload, attempts`).
		WithArgs(statusPending, 10).
		WillReturnRows(rows)
	mock.ExpectExec(`UPDATE outbox SET status = \$1, attempts = attempts \+ 1 WHERE id = \$2`).
		WithArgs(statusPending, "m-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE outbox SET status = \$1, attempts = attempts \+ 1 WHERE id = \$2`).
		WithArgs(statusDead, "m-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	pub := &capturingPublisher{fail: map[string]bool{"agreement.fully_signed": true}}
	relay := NewRelay(mock, pub, 10, 1)
	n, err := relay.DispatchOnce(context.Background())
	if err != nil {
		t.Fatalf("DispatchOnce returned error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 dispatched, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
