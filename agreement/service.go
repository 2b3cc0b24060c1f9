package agreement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"agreementflow/template"
)

// TxBeginner abstracts pgxpool.Pool for testability.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DB is the pool surface the service needs: transactions for writes and
// direct queries for reads.
type DB interface {
	TxBeginner
	Querier
}

// SignatureRepository defines the data access required by the service.
type SignatureRepository interface {
	InsertIdempotencyKey(ctx context.Context, tx pgx.Tx, key string) error
	Insert(ctx context.Context, tx pgx.Tx, number, agreementType string, data []byte) (Agreement, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (Agreement, error)
	GetByID(ctx context.Context, q Querier, id string) (Agreement, error)
	ListPending(ctx context.Context, q Querier) ([]Agreement, error)
	ApplySignature(ctx context.Context, tx pgx.Tx, a Agreement, role SignerRole, next Status, signerName, ip string, signedAt time.Time) error
	AppendTimeline(ctx context.Context, tx pgx.Tx, agreementID, eventType string, actorName *string, payload map[string]any) error
	EnqueueOutbox(ctx context.Context, tx pgx.Tx, topic string, payload map[string]any) error
}

// Service owns the agreement aggregate: draft creation, the signature state
// machine, and read access for previews and dashboards.
type Service struct {
	db    DB
	repo  SignatureRepository
	idGen func() string
	now   func() time.Time
}

func NewService(db DB, repo SignatureRepository) *Service {
	if repo == nil {
		repo = NewRepository()
	}
	return &Service{
		db:    db,
		repo:  repo,
		idGen: func() string { return uuid.NewString() },
		now:   time.Now,
	}
}

func (s *Service) WithIDGenerator(gen func() string) *Service {
	s.idGen = gen
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateParams carries the inputs for drafting a new agreement from a
// qualifying placement event.
type CreateParams struct {
	Type string
	Data *template.Data
}

// Create validates the agreement type, assigns the immutable agreement
// number, and persists the row already awaiting the first signer, with the
// creation timeline event and outbox message in the same transaction.
// An unrecognized type is the one hard error: it propagates verbatim.
func (s *Service) Create(ctx context.Context, params CreateParams) (Agreement, error) {
	if _, err := template.Resolve(params.Type); err != nil {
		return Agreement{}, err
	}

	data := params.Data
	if data == nil {
		data = &template.Data{}
	}
	number := data.AgreementNumber
	if number == "" {
		number = s.generateNumber()
	}
	data.AgreementNumber = number

	body, err := json.Marshal(data)
	if err != nil {
		return Agreement{}, fmt.Errorf("agreement: marshal data: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Agreement{}, fmt.Errorf("agreement: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rec, err := s.repo.Insert(ctx, tx, number, params.Type, body)
	if err != nil {
		return Agreement{}, err
	}

	payload := map[string]any{
		"agreement_id":     rec.ID,
		"agreement_number": rec.Number,
		"agreement_type":   rec.Type,
	}
	if err := s.repo.AppendTimeline(ctx, tx, rec.ID, EventAgreementCreated, nil, payload); err != nil {
		return Agreement{}, err
	}
	if err := s.repo.EnqueueOutbox(ctx, tx, TopicAgreementCreated, payload); err != nil {
		return Agreement{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Agreement{}, fmt.Errorf("agreement: commit: %w", err)
	}
	return rec, nil
}

// generateNumber builds the human-readable agreement number assigned at
// draft creation, e.g. AGR-20260315-7F3A1C.
func (s *Service) generateNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(s.idGen(), "-", ""))
	if len(suffix) > 6 {
		suffix = suffix[:6]
	}
	return fmt.Sprintf("AGR-%s-%s", s.now().Format("20060102"), suffix)
}

// SignatureParams carries one signature submission. IdempotencyKey is
// optional; when present, a replayed request becomes a clean no-op.
type SignatureParams struct {
	AgreementID    string
	Role           SignerRole
	SignerName     string
	IP             string
	IdempotencyKey string
}

// SignatureResult reports the observed transition. Applied is false when the
// submission was rejected by the state machine guard; the agreement state is
// returned unchanged in that case.
type SignatureResult struct {
	Status         Status
	PreviousStatus Status
	Applied        bool
}

// RecordSignature applies at most one forward transition per signature. The
// agreement row is locked for the duration of the transaction so concurrent
// submissions for the same agreement serialize; a duplicate or out-of-order
// request returns the current state unchanged and preserves the original
// signer's metadata untouched.
func (s *Service) RecordSignature(ctx context.Context, params SignatureParams) (SignatureResult, error) {
	if params.AgreementID == "" {
		return SignatureResult{}, fmt.Errorf("agreement: missing agreement id")
	}
	if params.Role != SignerAgency && params.Role != SignerClient {
		return SignatureResult{}, fmt.Errorf("agreement: unknown signer role %q", params.Role)
	}
	if params.SignerName == "" {
		return SignatureResult{}, fmt.Errorf("agreement: missing signer name")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return SignatureResult{}, fmt.Errorf("agreement: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if params.IdempotencyKey != "" {
		if err := s.repo.InsertIdempotencyKey(ctx, tx, params.IdempotencyKey); err != nil {
			if errors.Is(err, ErrDuplicateIdempotencyKey) {
				current, err := s.repo.GetByID(ctx, tx, params.AgreementID)
				if err != nil {
					return SignatureResult{}, err
				}
				return SignatureResult{Status: current.Status, PreviousStatus: current.Status}, nil
			}
			return SignatureResult{}, err
		}
	}

	a, err := s.repo.GetForUpdate(ctx, tx, params.AgreementID)
	if err != nil {
		return SignatureResult{}, err
	}

	next, ok := nextStatus(a.Status, params.Role, a.AgencySigned, a.ClientSigned)
	if !ok {
		return SignatureResult{Status: a.Status, PreviousStatus: a.Status}, nil
	}

	if err := s.repo.ApplySignature(ctx, tx, a, params.Role, next, params.SignerName, params.IP, s.now()); err != nil {
		return SignatureResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return SignatureResult{}, fmt.Errorf("agreement: commit signature: %w", err)
	}
	return SignatureResult{Status: next, PreviousStatus: a.Status, Applied: true}, nil
}

// GetState returns the agreement without coordination.
func (s *Service) GetState(ctx context.Context, id string) (Agreement, error) {
	return s.repo.GetByID(ctx, s.db, id)
}

// ListPending returns every agreement still awaiting a signature for
// dashboard consumption.
func (s *Service) ListPending(ctx context.Context) ([]Agreement, error) {
	return s.repo.ListPending(ctx, s.db)
}

// ComposePreview re-composes the document model from the stored payload. A
// preview of a partially signed agreement is legitimate; signer metadata is
// injected later by the snapshot service.
func (s *Service) ComposePreview(ctx context.Context, id string) (template.Document, error) {
	a, err := s.GetState(ctx, id)
	if err != nil {
		return template.Document{}, err
	}

	var data template.Data
	if len(a.Data) > 0 {
		if err := json.Unmarshal(a.Data, &data); err != nil {
			return template.Document{}, fmt.Errorf("agreement: decode data: %w", err)
		}
	}
	data.AgreementNumber = a.Number

	return template.Compose(a.Type, &data)
}
