package agreement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicateIdempotencyKey signals the idempotency insert hit an existing key.
	ErrDuplicateIdempotencyKey = errors.New("agreement: duplicate idempotency key")
	// ErrAgreementNotFound is returned when no agreement row exists for the identifier.
	ErrAgreementNotFound = errors.New("agreement: not found")
)

const uniqueViolationCode = "23505"

// Querier is the subset of pgxpool.Pool used for reads. pgx.Tx and pgxmock
// pools satisfy it as well.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

const agreementColumns = `id, agreement_number, agreement_type, agreement_data, status,
       agency_signed, agency_signed_name, agency_signed_at, agency_ip,
       client_signed, client_signed_name, client_signed_at, client_ip,
       created_at, updated_at`

func scanAgreement(row pgx.Row) (Agreement, error) {
	var a Agreement
	err := row.Scan(
		&a.ID, &a.Number, &a.Type, &a.Data, &a.Status,
		&a.AgencySigned, &a.AgencySignedName, &a.AgencySignedAt, &a.AgencyIP,
		&a.ClientSigned, &a.ClientSignedName, &a.ClientSignedAt, &a.ClientIP,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agreement{}, ErrAgreementNotFound
		}
		return Agreement{}, fmt.Errorf("agreement: scan: %w", err)
	}
	return a, nil
}

// InsertIdempotencyKey attempts to reserve the key inside the active transaction.
func (r *Repository) InsertIdempotencyKey(ctx context.Context, tx pgx.Tx, key string) error {
	if key == "" {
		return fmt.Errorf("agreement: empty idempotency key")
	}

	if _, err := tx.Exec(ctx, `INSERT INTO idempotency (key) VALUES ($1)`, key); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateIdempotencyKey
		}
		return fmt.Errorf("agreement: insert idempotency key: %w", err)
	}
	return nil
}

// Insert creates the agreement row awaiting the first signer.
func (r *Repository) Insert(ctx context.Context, tx pgx.Tx, number, agreementType string, data []byte) (Agreement, error) {
	const insertSQL = `
INSERT INTO agreements (agreement_number, agreement_type, agreement_data, status)
VALUES ($1, $2, $3, 'pending_agency')
RETURNING ` + agreementColumns

	rec, err := scanAgreement(tx.QueryRow(ctx, insertSQL, number, agreementType, data))
	if err != nil {
		return Agreement{}, fmt.Errorf("agreement: insert: %w", err)
	}
	return rec, nil
}

// GetForUpdate loads the agreement row under a row lock so concurrent
// signature submissions for the same agreement are serialized.
func (r *Repository) GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (Agreement, error) {
	return scanAgreement(tx.QueryRow(ctx, `SELECT `+agreementColumns+` FROM agreements WHERE id = $1 FOR UPDATE`, id))
}

// GetByID loads an agreement without coordination; previews and dashboards
// may legitimately observe a mid-flight, partially signed state.
func (r *Repository) GetByID(ctx context.Context, q Querier, id string) (Agreement, error) {
	return scanAgreement(q.QueryRow(ctx, `SELECT `+agreementColumns+` FROM agreements WHERE id = $1`, id))
}

// ListPending returns all agreements still awaiting at least one signature,
// oldest first, for dashboard staleness computation.
func (r *Repository) ListPending(ctx context.Context, q Querier) ([]Agreement, error) {
	rows, err := q.Query(ctx, `SELECT `+agreementColumns+` FROM agreements WHERE status <> 'fully_signed' ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("agreement: list pending: %w", err)
	}
	defer rows.Close()

	var out []Agreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("agreement: list pending rows: %w", err)
	}
	return out, nil
}

// ApplySignature persists one successful transition: the role's signing
// metadata, the advanced status, a timeline event, and the outbox messages,
// all inside the caller's transaction.
func (r *Repository) ApplySignature(ctx context.Context, tx pgx.Tx, a Agreement, role SignerRole, next Status, signerName, ip string, signedAt time.Time) error {
	var updateSQL string
	switch role {
	case SignerAgency:
		updateSQL = `
UPDATE agreements
SET status = $1,
    agency_signed = TRUE,
    agency_signed_name = $2,
    agency_signed_at = $3,
    agency_ip = $4,
    updated_at = NOW()
WHERE id = $5`
	case SignerClient:
		updateSQL = `
UPDATE agreements
SET status = $1,
    client_signed = TRUE,
    client_signed_name = $2,
    client_signed_at = $3,
    client_ip = $4,
    updated_at = NOW()
WHERE id = $5`
	default:
		return fmt.Errorf("agreement: unknown signer role %q", role)
	}

	if _, err := tx.Exec(ctx, updateSQL, next, signerName, signedAt, ip, a.ID); err != nil {
		return fmt.Errorf("agreement: apply signature: %w", err)
	}

	eventPayload := map[string]any{
		"agreement_id": a.ID,
		"role":         role,
		"signer_name":  signerName,
		"signed_at":    signedAt.UTC(),
		"ip":           ip,
		"previous":     a.Status,
		"next":         next,
	}
	if err := r.AppendTimeline(ctx, tx, a.ID, EventSignatureRecorded, &signerName, eventPayload); err != nil {
		return err
	}
	if err := r.EnqueueOutbox(ctx, tx, TopicSignatureRecorded, eventPayload); err != nil {
		return err
	}

	if next == StatusFullySigned {
		completion := map[string]any{
			"agreement_id":     a.ID,
			"agreement_number": a.Number,
			"completed_at":     signedAt.UTC(),
		}
		if err := r.AppendTimeline(ctx, tx, a.ID, EventAgreementFullySigned, &signerName, completion); err != nil {
			return err
		}
		if err := r.EnqueueOutbox(ctx, tx, TopicAgreementFullySigned, completion); err != nil {
			return err
		}
	}
	return nil
}

// AppendTimeline inserts an append-only audit event for the agreement.
func (r *Repository) AppendTimeline(ctx context.Context, tx pgx.Tx, agreementID, eventType string, actorName *string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("agreement: marshal timeline payload: %w", err)
	}
	const q = `INSERT INTO timeline_events (agreement_id, type, actor_name, payload) VALUES ($1, $2, $3, $4::jsonb)`
	if _, err := tx.Exec(ctx, q, agreementID, eventType, actorName, body); err != nil {
		return fmt.Errorf("agreement: insert timeline event: %w", err)
	}
	return nil
}

// EnqueueOutbox writes a pending outbox message in the same transaction as
// the state change it announces.
func (r *Repository) EnqueueOutbox(ctx context.Context, tx pgx.Tx, topic string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("agreement: marshal outbox payload: %w", err)
	}
	const q = `INSERT INTO outbox (topic, payload) VALUES ($1, $2::jsonb)`
	if _, err := tx.Exec(ctx, q, topic, body); err != nil {
		return fmt.Errorf("agreement: enqueue outbox: %w", err)
	}
	return nil
}
