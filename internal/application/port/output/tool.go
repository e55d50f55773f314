package output

import (
	"context"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

// ToolPort is one action the local engine's model can call. Execute errors are
// fed back to the model as observations, not returned from the run.
type ToolPort interface {
	Name() entity.ToolName
	Description() string
	// Parameters is a JSON Schema object describing the arguments.
	Parameters() map[string]any
	Execute(ctx context.Context, arguments string) (string, error)
}

// ToolRegistry is bound to a single browser session.
type ToolRegistry interface {
	Register(tool ToolPort)
	Get(name entity.ToolName) (ToolPort, bool)
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}
