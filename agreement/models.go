package agreement

import "time"

// Status is the signature lifecycle state of an agreement. Transitions move
// forward only; fully_signed is terminal.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusPendingAgency Status = "pending_agency"
	StatusPendingClient Status = "pending_client"
	StatusFullySigned   Status = "fully_signed"
)

// SignerRole identifies which side of the agreement is signing. The
// direct-hire variant reuses the same two slots: the professional signs the
// agency slot and the employer signs the client slot.
type SignerRole string

const (
	SignerAgency SignerRole = "agency"
	SignerClient SignerRole = "client"
)

// Agreement mirrors the agreements table. agreement_data is stored as the
// raw jsonb payload so the composer can re-normalize it on every preview.
type Agreement struct {
	ID     string
	Number string
	Type   string
	Data   []byte
	Status Status

	AgencySigned     bool
	AgencySignedName *string
	AgencySignedAt   *time.Time
	AgencyIP         *string

	ClientSigned     bool
	ClientSignedName *string
	ClientSignedAt   *time.Time
	ClientIP         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimelineEvent captures an immutable business event for an agreement.
type TimelineEvent struct {
	ID          int64
	AgreementID string
	Type        string
	ActorName   *string
	CreatedAt   time.Time
	Payload     []byte
}

// OutboxMessage represents a transactional outbox entry awaiting dispatch.
type OutboxMessage struct {
	ID        string
	Topic     string
	Payload   []byte
	Status    string
	Attempts  int
	CreatedAt time.Time
}

const (
	EventAgreementCreated     = "AGREEMENT_CREATED"
	EventSignatureRecorded    = "SIGNATURE_RECORDED"
	EventAgreementFullySigned = "AGREEMENT_FULLY_SIGNED"

	TopicAgreementCreated     = "agreement.created"
	TopicSignatureRecorded    = "agreement.signature_recorded"
	TopicAgreementFullySigned = "agreement.fully_signed"
)
