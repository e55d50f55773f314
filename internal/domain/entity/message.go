package entity

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

type Message struct {
	Role       MessageRole
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

type ToolCall struct {
	ID        string
	Name      ToolName
	Arguments string
}

type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  map[string]any
}

type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
}

func (u TokenUsage) Total() int {
	return u.PromptTokens + u.CompletionTokens
}
