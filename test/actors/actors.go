package actors

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"agreementflow/agreement"
)

// AgencySigner repeatedly submits the agency signature for one agreement,
// simulating double-clicks and webhook retries. After the first accepted
// submission every further attempt must be a no-op.
func AgencySigner(ctx context.Context, svc *agreement.Service, agreementID string, stop <-chan struct{}) error {
	return signerLoop(ctx, svc, agreementID, agreement.SignerAgency, "Stress Agency Signer", stop)
}

// ClientSigner races the client signature against the agency's, including
// out-of-order submissions while the agreement is still pending_agency.
func ClientSigner(ctx context.Context, svc *agreement.Service, agreementID string, stop <-chan struct{}) error {
	return signerLoop(ctx, svc, agreementID, agreement.SignerClient, "Stress Client Signer", stop)
}

func signerLoop(ctx context.Context, svc *agreement.Service, agreementID string, role agreement.SignerRole, name string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		params := agreement.SignatureParams{
			AgreementID: agreementID,
			Role:        role,
			SignerName:  name,
			IP:          fmt.Sprintf("10.0.%d.%d", rand.Intn(255), rand.Intn(255)),
		}
		// Half the submissions reuse one idempotency key per role to model
		// retried requests; the other half arrive bare.
		if rand.Intn(2) == 0 {
			params.IdempotencyKey = fmt.Sprintf("stress-%s-%s", agreementID, role)
		}

		// Transient failures (chaos-killed backends) are expected; the
		// oracles, not the actor, decide whether state was corrupted.
		if _, err := svc.RecordSignature(ctx, params); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		time.Sleep(time.Duration(10+rand.Intn(20)) * time.Millisecond)
	}
}

// Reader polls agreement state and the derived dashboard fields while the
// signers run; no read may ever observe a violated signature invariant.
func Reader(ctx context.Context, svc *agreement.Service, monitor *agreement.Monitor, agreementID string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		a, err := svc.GetState(ctx, agreementID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			time.Sleep(20 * time.Millisecond)
			continue
		}
		if err := agreement.CheckInvariants(a); err != nil {
			return fmt.Errorf("reader observed violation: %w", err)
		}
		if step := monitor.SignatureStep(a); step < 0 || step > 3 {
			return fmt.Errorf("reader: signature step out of range: %d", step)
		}
		time.Sleep(time.Duration(5+rand.Intn(15)) * time.Millisecond)
	}
}
