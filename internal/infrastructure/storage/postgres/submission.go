package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

var _ output.SubmissionStore = (*SubmissionRepository)(nil)

var ErrSubmissionExists = errors.New("submission already exists")

type SubmissionRepository struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewSubmissionRepository(db *sqlx.DB, timeout time.Duration) *SubmissionRepository {
	return &SubmissionRepository{db: db, timeout: timeout}
}

func (r *SubmissionRepository) CreateSubmission(ctx context.Context, s *entity.Submission) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO submissions (id, startup_id, target_id, status, form_type, engine, agent_notes, session_id, share_url, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.StartupID,
		s.TargetID,
		string(s.Status),
		s.FormType.String(),
		s.Engine,
		s.AgentNotes,
		s.SessionID,
		s.ShareURL,
		s.SubmittedAt,
		s.UpdatedAt,
	)
	if err != nil {
		switch pqCode(err) {
		case uniqueViolation:
			return fmt.Errorf("submission %s: %w", s.ID, ErrSubmissionExists)
		case foreignKeyViolation:
			return fmt.Errorf("submission %s references unknown startup or target: %w", s.ID, entity.ErrNotFound)
		}
		return fmt.Errorf("insert submission %s: %w", s.ID, err)
	}

	return nil
}

func (r *SubmissionRepository) UpdateSubmission(ctx context.Context, s *entity.Submission) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		UPDATE submissions
		SET status = $2, agent_notes = $3, session_id = $4, share_url = $5, updated_at = $6
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		s.ID,
		string(s.Status),
		s.AgentNotes,
		s.SessionID,
		s.ShareURL,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update submission %s: %w", s.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update submission %s: %w", s.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("submission %s: %w", s.ID, entity.ErrNotFound)
	}
	return nil
}
