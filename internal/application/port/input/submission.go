package input

import (
	"context"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

type PlanRequest struct {
	TargetURL  string
	TargetName string
	FormType   string
	Data       *entity.SmartDataMapping
}

type SubmissionPlanner interface {
	Plan(ctx context.Context, req PlanRequest) (*entity.Plan, error)
	Prepare(ctx context.Context, userID, startupID, targetID string) (*entity.Plan, *entity.Target, error)
}

type RunRequest struct {
	UserID    string
	StartupID string
	TargetID  string
}

type SubmissionRunner interface {
	Run(ctx context.Context, req RunRequest) (*entity.Submission, error)
}
