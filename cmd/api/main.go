package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"agreementflow/agreement"
	"agreementflow/config"
	"agreementflow/db"
	"agreementflow/directory"
	"agreementflow/outbox"
	"agreementflow/signing"
)

// logPublisher is the default outbox destination until a broker is wired in
// by the deployment.
type logPublisher struct{}

func (logPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	var body map[string]any
	_ = json.Unmarshal(payload, &body)
	log.Printf("outbox event %s: %v", topic, body)
	return nil
}

// services bundles the constructed application surface. The HTTP layer in the
// deployment repo embeds this bundle rather than rebuilding the wiring.
type services struct {
	Agreements *agreement.Service
	Monitor    *agreement.Monitor
	Profiles   *directory.Service
	Tokens     *signing.TokenService
	Relay      *outbox.Relay
}

func buildServices(cfg config.Config, pool *pgxpool.Pool) *services {
	return &services{
		Agreements: agreement.NewService(pool, nil),
		Monitor:    agreement.NewMonitor(),
		Profiles:   directory.NewService(directory.NewRepository(pool)),
		Tokens:     signing.NewTokenService(cfg.SigningSecret, cfg.SigningTokenTTL),
		Relay:      outbox.NewRelay(pool, logPublisher{}, cfg.RelayBatchSize, cfg.RelayWorkers),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("bootstrap config: %v", err)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	svcs := buildServices(cfg, pool)

	go func() {
		if err := svcs.Relay.Run(ctx); err != nil && ctx.Err() == nil {
			log.Printf("outbox relay stopped: %v", err)
		}
	}()

	if pending, err := svcs.Agreements.ListPending(ctx); err != nil {
		log.Printf("pending agreements check: %v", err)
	} else {
		stale := 0
		for _, a := range pending {
			if svcs.Monitor.IsStale(a) {
				stale++
			}
		}
		log.Printf("pending agreements: %d (%d stale)", len(pending), stale)
	}

	log.Printf("agreement services ready (env=%s)", cfg.Env)
	<-ctx.Done()
	log.Printf("shutting down")
}
