package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/babacardot/suparaise-sub001/internal/infrastructure/env"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// New opens a pooled connection and verifies it with a ping.
func New(ctx context.Context, cfg env.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Repositories groups every Postgres-backed port.
type Repositories struct {
	Startups    *StartupRepository
	Targets     *TargetRepository
	Submissions *SubmissionRepository
}

func NewRepositories(db *sqlx.DB, queryTimeout time.Duration) *Repositories {
	return &Repositories{
		Startups:    NewStartupRepository(db, queryTimeout),
		Targets:     NewTargetRepository(db, queryTimeout),
		Submissions: NewSubmissionRepository(db, queryTimeout),
	}
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
