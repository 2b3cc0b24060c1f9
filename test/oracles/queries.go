package oracles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Oracle struct {
	Name string
	SQL  string
}

func All() []Oracle {
	return []Oracle{
		{
			Name: "O1_fully_signed_biconditional",
			SQL: `SELECT id FROM agreements
                  WHERE (status = 'fully_signed') <> (agency_signed AND client_signed)`,
		},
		{
			Name: "O2_pending_client_shape",
			SQL: `SELECT id FROM agreements
                  WHERE status = 'pending_client'
                    AND (NOT agency_signed OR client_signed)`,
		},
		{
			Name: "O3_signature_metadata_present",
			SQL: `SELECT id FROM agreements
                  WHERE (agency_signed AND (agency_signed_name IS NULL OR agency_signed_at IS NULL))
                     OR (client_signed AND (client_signed_name IS NULL OR client_signed_at IS NULL))`,
		},
		{
			Name: "O4_single_signature_event_per_role",
			SQL: `SELECT agreement_id, payload->>'role'
                  FROM timeline_events
                  WHERE type = 'SIGNATURE_RECORDED'
                  GROUP BY agreement_id, payload->>'role'
                  HAVING COUNT(*) > 1`,
		},
		{
			Name: "O5_signing_order",
			SQL: `SELECT id FROM agreements
                  WHERE agency_signed AND client_signed
                    AND client_signed_at < agency_signed_at`,
		},
		{
			Name: "O6_completed_event_linkage",
			SQL: `SELECT a.id FROM agreements a
                  WHERE a.status = 'fully_signed'
                    AND NOT EXISTS (SELECT 1 FROM timeline_events e
                                    WHERE e.agreement_id = a.id
                                      AND e.type = 'AGREEMENT_FULLY_SIGNED')`,
		},
		{
			Name: "O7_outbox_terminal_states",
			SQL: `SELECT id FROM outbox
                  WHERE status NOT IN ('pending','processed','dead')
                     OR (status = 'dead' AND attempts < 5)`,
		},
	}
}

// Run executes all oracles and returns the first failure (name and sample row text) or empty name if all pass.
func Run(ctx context.Context, pool *pgxpool.Pool) (string, string, error) {
	for _, o := range All() {
		rows, err := pool.Query(ctx, o.SQL)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		has := rows.Next()
		if has {
			vals, err := rows.Values()
			rows.Close()
			if err != nil {
				return o.Name, "", err
			}
			return o.Name, fmt.Sprintf("%v", vals), nil
		}
		rows.Close()
	}
	return "", "", nil
}
