package output

import (
	"context"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	Tools       []entity.ToolDefinition
	Temperature float32
	// MaxTokens caps the completion. Zero leaves it to the provider.
	MaxTokens int
	// JSONResponse asks the provider for a single JSON object. Ignored when
	// tools are set.
	JSONResponse bool
}

type ChatResponse struct {
	Message      entity.Message
	FinishReason string
	Usage        entity.TokenUsage
}
