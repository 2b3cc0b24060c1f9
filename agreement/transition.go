package agreement

import "fmt"

// nextStatus applies the signature state machine guard: each role signs at
// most once, in order, and nothing moves backward. The second return value is
// false when the submission is a no-op (wrong state, wrong order, or a
// duplicate signature) — an expected operational occurrence, never an error.
func nextStatus(current Status, role SignerRole, agencySigned, clientSigned bool) (Status, bool) {
	switch role {
	case SignerAgency:
		if current == StatusPendingAgency && !agencySigned {
			return StatusPendingClient, true
		}
	case SignerClient:
		if current == StatusPendingClient && agencySigned && !clientSigned {
			return StatusFullySigned, true
		}
	}
	return current, false
}

// CheckInvariants verifies the status/flag biconditional that must hold at
// every observable point: fully_signed iff both parties signed, and
// pending_client implies exactly the agency signature is on record.
func CheckInvariants(a Agreement) error {
	bothSigned := a.AgencySigned && a.ClientSigned
	if (a.Status == StatusFullySigned) != bothSigned {
		return fmt.Errorf("agreement %s: status %s inconsistent with signatures (agency=%t client=%t)",
			a.ID, a.Status, a.AgencySigned, a.ClientSigned)
	}
	if a.Status == StatusPendingClient && (!a.AgencySigned || a.ClientSigned) {
		return fmt.Errorf("agreement %s: pending_client requires agency-only signature (agency=%t client=%t)",
			a.ID, a.AgencySigned, a.ClientSigned)
	}
	if a.Status == StatusPendingAgency && (a.AgencySigned || a.ClientSigned) {
		return fmt.Errorf("agreement %s: pending_agency must carry no signatures (agency=%t client=%t)",
			a.ID, a.AgencySigned, a.ClientSigned)
	}
	return nil
}
