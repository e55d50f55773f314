package output

import (
	"context"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

type AutomationEngine interface {
	Name() string
	Run(ctx context.Context, task entity.AutomationTask) (*entity.EngineResult, error)
}

// OutcomeEvaluator judges an engine's free-form final report.
type OutcomeEvaluator interface {
	Evaluate(ctx context.Context, instruction, report string) entity.Verdict
}
