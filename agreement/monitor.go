package agreement

import "time"

// StaleAfterDays is the operational alerting threshold: a pending agreement
// older than this is flagged for follow-up.
const StaleAfterDays = 7

// Monitor derives the read-only dashboard fields (age, staleness, waiting
// time, progress step) from an agreement snapshot. All date arithmetic for
// dashboards lives here so the numbers cannot drift between consumers.
type Monitor struct {
	now func() time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{now: time.Now}
}

func (m *Monitor) WithClock(now func() time.Time) *Monitor {
	m.now = now
	return m
}

func (m *Monitor) daysSince(t time.Time) int {
	return int(m.now().Sub(t).Hours() / 24)
}

// Age is the whole number of days since the agreement was created.
func (m *Monitor) Age(a Agreement) int {
	return m.daysSince(a.CreatedAt)
}

// IsStale reports whether a not-yet-complete agreement has been pending for
// more than StaleAfterDays days.
func (m *Monitor) IsStale(a Agreement) bool {
	return a.Status != StatusFullySigned && m.Age(a) > StaleAfterDays
}

// WaitingDays is how long the current signer has been waited on: days since
// the agency signature when the client is up, otherwise days since creation.
// The second return value is false once the agreement is fully signed.
func (m *Monitor) WaitingDays(a Agreement) (int, bool) {
	if a.Status == StatusPendingClient && a.AgencySignedAt != nil {
		return m.daysSince(*a.AgencySignedAt), true
	}
	if a.Status != StatusFullySigned {
		return m.daysSince(a.CreatedAt), true
	}
	return 0, false
}

// SignatureStep is the 0..3 progress indicator consumed by the presentation
// layer. It never drives state transitions.
func (m *Monitor) SignatureStep(a Agreement) int {
	switch {
	case a.Status == StatusFullySigned:
		return 3
	case a.Status == StatusPendingClient && a.AgencySigned:
		return 2
	case a.Status == StatusPendingAgency:
		return 1
	default:
		return 0
	}
}

// Summary bundles the derived fields for one agreement row on a dashboard.
type Summary struct {
	AgreementID string
	Number      string
	Status      Status
	AgeDays     int
	Stale       bool
	WaitingDays *int
	Step        int
}

// Summarize computes the full derived view for a dashboard row.
func (m *Monitor) Summarize(a Agreement) Summary {
	s := Summary{
		AgreementID: a.ID,
		Number:      a.Number,
		Status:      a.Status,
		AgeDays:     m.Age(a),
		Stale:       m.IsStale(a),
		Step:        m.SignatureStep(a),
	}
	if days, ok := m.WaitingDays(a); ok {
		s.WaitingDays = &days
	}
	return s
}
