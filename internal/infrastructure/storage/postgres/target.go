package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

var _ output.TargetPort = (*TargetRepository)(nil)

type TargetRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewTargetRepository(db *sqlx.DB, timeout time.Duration) *TargetRepository {
	return &TargetRepository{db: db, timeout: timeout}
}

type targetRow struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	ApplicationURL sql.NullString `db:"application_url"`
	FormType       sql.NullString `db:"form_type"`
	Type           sql.NullString `db:"type"`
}

func (r *targetRow) toDomain() *entity.Target {
	t := &entity.Target{
		ID:             r.ID,
		Name:           r.Name,
		ApplicationURL: r.ApplicationURL.String,
		Type:           r.Type.String,
	}
	if r.FormType.Valid && r.FormType.String != "" {
		ft := r.FormType.String
		t.FormType = &ft
	}
	return t
}

func (r *TargetRepository) GetTarget(ctx context.Context, targetID string) (*entity.Target, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT id, name, application_url, form_type, type
		FROM targets
		WHERE id = $1
	`

	var row targetRow
	if err := r.db.GetContext(ctx, &row, query, targetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("target %s: %w", targetID, entity.ErrNotFound)
		}
		return nil, fmt.Errorf("target %s: %w", targetID, err)
	}

	return row.toDomain(), nil
}
