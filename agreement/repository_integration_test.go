package agreement

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"agreementflow/party"
	"agreementflow/template"
)

// TestSignatureLifecycle_Integration connects to a real PostgreSQL via
// DATABASE_URL and verifies the end-to-end create/sign/sign flow including
// the idempotency guard and state invariants.
func TestSignatureLifecycle_Integration(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is empty; set it to a live PostgreSQL to run integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect pool: %v", err)
	}
	defer pool.Close()

	for _, table := range []string{"agreements", "timeline_events", "outbox", "idempotency"} {
		if !tableExists(ctx, t, pool, table) {
			t.Skipf("table %s missing; apply migrations first", table)
		}
	}

	svc := NewService(pool, nil)

	rec, err := svc.Create(ctx, CreateParams{
		Type: string(template.TypeAgencyClinic),
		Data: &template.Data{
			Client: &party.Input{Name: "Riverside Clinic", Province: "ON"},
			Agency: &party.Input{Name: "Metro Health Staffing"},
		},
	})
	if err != nil {
		t.Fatalf("create agreement: %v", err)
	}
	if rec.Status != StatusPendingAgency {
		t.Fatalf("new agreement status = %s, want pending_agency", rec.Status)
	}

	// Agency signs.
	res, err := svc.RecordSignature(ctx, SignatureParams{
		AgreementID:    rec.ID,
		Role:           SignerAgency,
		SignerName:     "Rita Okafor",
		IP:             "10.1.2.3",
		IdempotencyKey: "it-" + rec.ID + "-agency",
	})
	if err != nil {
		t.Fatalf("agency signature: %v", err)
	}
	if !res.Applied || res.Status != StatusPendingClient {
		t.Fatalf("unexpected agency result %+v", res)
	}

	// Replay of the same request must not advance the machine.
	replay, err := svc.RecordSignature(ctx, SignatureParams{
		AgreementID:    rec.ID,
		Role:           SignerAgency,
		SignerName:     "Someone Else",
		IdempotencyKey: "it-" + rec.ID + "-agency",
	})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if replay.Applied {
		t.Fatalf("replay must be a no-op, got %+v", replay)
	}

	mid, err := svc.GetState(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if err := CheckInvariants(mid); err != nil {
		t.Fatalf("mid-flight invariant violation: %v", err)
	}
	if mid.AgencySignedName == nil || *mid.AgencySignedName != "Rita Okafor" {
		t.Fatalf("first signer metadata must be preserved, got %+v", mid.AgencySignedName)
	}

	// A preview of the partially signed agreement composes fine.
	doc, err := svc.ComposePreview(ctx, rec.ID)
	if err != nil {
		t.Fatalf("compose preview: %v", err)
	}
	if len(doc.Sections) == 0 || doc.AgreementNumber != rec.Number {
		t.Fatalf("unexpected preview %+v", doc.Title)
	}

	// Client completes.
	final, err := svc.RecordSignature(ctx, SignatureParams{
		AgreementID: rec.ID,
		Role:        SignerClient,
		SignerName:  "Dr. Chen",
		IP:          "10.9.8.7",
	})
	if err != nil {
		t.Fatalf("client signature: %v", err)
	}
	if !final.Applied || final.Status != StatusFullySigned {
		t.Fatalf("unexpected final result %+v", final)
	}

	done, err := svc.GetState(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get final state: %v", err)
	}
	if err := CheckInvariants(done); err != nil {
		t.Fatalf("final invariant violation: %v", err)
	}

	// Terminal state: nothing moves.
	again, err := svc.RecordSignature(ctx, SignatureParams{
		AgreementID: rec.ID,
		Role:        SignerClient,
		SignerName:  "Dr. Chen",
	})
	if err != nil {
		t.Fatalf("post-terminal submit: %v", err)
	}
	if again.Applied || again.Status != StatusFullySigned {
		t.Fatalf("terminal state must reject transitions, got %+v", again)
	}
}

func tableExists(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string) bool {
	t.Helper()
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, name).Scan(&exists); err != nil {
		t.Fatalf("check table %s: %v", name, err)
	}
	return exists
}
