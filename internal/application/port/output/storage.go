package output

import (
	"context"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

type StartupDataPort interface {
	GetStartupProfile(ctx context.Context, userID, startupID string) (*entity.StartupProfile, error)
	GetAgentSettings(ctx context.Context, userID string) (*entity.AgentSettings, error)
}

type TargetPort interface {
	GetTarget(ctx context.Context, targetID string) (*entity.Target, error)
}

type SubmissionStore interface {
	CreateSubmission(ctx context.Context, submission *entity.Submission) error
	UpdateSubmission(ctx context.Context, submission *entity.Submission) error
}
