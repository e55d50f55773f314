package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

var _ output.StartupDataPort = (*StartupRepository)(nil)

// StartupRepository reads startup data through the database RPC functions
// so row-level ownership checks stay in SQL.
type StartupRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewStartupRepository(db *sqlx.DB, timeout time.Duration) *StartupRepository {
	return &StartupRepository{db: db, timeout: timeout}
}

func (r *StartupRepository) GetStartupProfile(ctx context.Context, userID, startupID string) (*entity.StartupProfile, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.rpc(ctx, `SELECT get_user_startup_data($1, $2)`, userID, startupID)
	if err != nil {
		return nil, fmt.Errorf("startup %s: %w", startupID, err)
	}

	var profile entity.StartupProfile
	if err := decodeOne(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode startup %s: %w", startupID, err)
	}
	if profile.ID == "" {
		profile.ID = startupID
	}
	return &profile, nil
}

func (r *StartupRepository) GetAgentSettings(ctx context.Context, userID string) (*entity.AgentSettings, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.rpc(ctx, `SELECT get_user_agent_settings($1)`, userID)
	if err != nil {
		return nil, fmt.Errorf("agent settings: %w", err)
	}

	var settings entity.AgentSettings
	if err := decodeOne(raw, &settings); err != nil {
		return nil, fmt.Errorf("decode agent settings: %w", err)
	}
	return &settings, nil
}

func (r *StartupRepository) rpc(ctx context.Context, query string, args ...any) ([]byte, error) {
	var raw []byte
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("[]")) {
		return nil, entity.ErrNotFound
	}
	return trimmed, nil
}

// decodeOne accepts either a JSON object or an array holding one.
func decodeOne(raw []byte, v any) error {
	if raw[0] != '[' {
		return json.Unmarshal(raw, v)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	if len(items) == 0 {
		return entity.ErrNotFound
	}
	return json.Unmarshal(items[0], v)
}
