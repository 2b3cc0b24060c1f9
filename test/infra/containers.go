package infra

import (
	"context"
	"os"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// StressDSNEnv names an existing Postgres the harness may reuse instead of
// starting a container.
const StressDSNEnv = "AGREEMENTFLOW_STRESS_DSN"

type PGContainer struct {
	C *postgres.PostgresContainer
}

// StartPostgres16 starts the disposable Postgres 16 the signature stress run
// executes against and returns its DSN. An overrideDSN argument or the
// StressDSNEnv variable short-circuits container startup.
func StartPostgres16(ctx context.Context, overrideDSN string) (*PGContainer, string, error) {
	if overrideDSN != "" {
		return &PGContainer{}, overrideDSN, nil
	}
	if dsn := os.Getenv(StressDSNEnv); dsn != "" {
		return &PGContainer{}, dsn, nil
	}

	pgC, err := postgres.Run(ctx,
		"postgres:16",
		postgres.WithDatabase("agreementflow"),
		postgres.WithUsername("agreementflow"),
		postgres.WithPassword("stresspass"),
	)
	if err != nil {
		return nil, "", err
	}

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgC.Terminate(ctx)
		return nil, "", err
	}
	return &PGContainer{C: pgC}, dsn, nil
}

func (p *PGContainer) Terminate(ctx context.Context) error {
	if p == nil || p.C == nil {
		return nil
	}
	return p.C.Terminate(ctx)
}
