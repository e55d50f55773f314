package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/logger"
)

func TestConvertResponseMessage_WithContent(t *testing.T) {
	result := convertResponseMessage(openai.ChatCompletionMessage{
		Role:    "assistant",
		Content: "Hello, world!",
	})

	assert.Equal(t, entity.RoleAssistant, result.Role)
	assert.Equal(t, "Hello, world!", result.Content)
	assert.Empty(t, result.ToolCalls)
}

func TestConvertResponseMessage_WithToolCalls(t *testing.T) {
	result := convertResponseMessage(openai.ChatCompletionMessage{
		Role: "assistant",
		ToolCalls: []openai.ToolCall{
			{
				ID:   "call_123",
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      "fill",
					Arguments: `{"selector":"#email","text":"a@b.co"}`,
				},
			},
		},
	})

	require.Len(t, result.ToolCalls, 1)
	assert.Equal(t, "call_123", result.ToolCalls[0].ID)
	assert.Equal(t, entity.ToolFill, result.ToolCalls[0].Name)
}

func TestConvertMessages_ToolRoundTrip(t *testing.T) {
	messages := convertMessages([]entity.Message{
		{Role: entity.RoleSystem, Content: "be precise"},
		{Role: entity.RoleAssistant, ToolCalls: []entity.ToolCall{{ID: "c1", Name: entity.ToolNavigate, Arguments: `{"url":"https://x.y"}`}}},
		{Role: entity.RoleTool, ToolCallID: "c1", Name: "navigate", Content: "Navigated"},
	})

	require.Len(t, messages, 3)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "navigate", messages[1].ToolCalls[0].Function.Name)
	assert.Equal(t, openai.ToolTypeFunction, messages[1].ToolCalls[0].Type)
	assert.Equal(t, "c1", messages[2].ToolCallID)
}

func TestChat_AgainstServer(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: "assistant", Content: `{"outcome":"success","notes":"ok"}`},
			}},
		})
	}))
	defer srv.Close()

	adapter := NewOpenRouterAdapter(Config{APIKey: "or-key", Model: "openai/gpt-4.1-mini", BaseURL: srv.URL, Logger: logger.NewNop()})

	resp, err := adapter.Chat(context.Background(), output.ChatRequest{
		Messages: []entity.Message{{Role: entity.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	assert.Equal(t, `{"outcome":"success","notes":"ok"}`, resp.Message.Content)
	assert.Equal(t, "openai/gpt-4.1-mini", got.Model)
	assert.Empty(t, got.Tools)
	assert.Nil(t, got.ToolChoice)
}

func TestChat_JSONResponseAndUsage(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: `{}`},
				FinishReason: openai.FinishReasonStop,
			}},
			Usage: openai.Usage{PromptTokens: 120, CompletionTokens: 8, TotalTokens: 128},
		})
	}))
	defer srv.Close()

	adapter := NewOpenRouterAdapter(Config{APIKey: "k", Model: "m", BaseURL: srv.URL})
	resp, err := adapter.Chat(context.Background(), output.ChatRequest{
		Messages:     []entity.Message{{Role: entity.RoleUser, Content: "judge"}},
		MaxTokens:    300,
		JSONResponse: true,
	})
	require.NoError(t, err)

	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, got.ResponseFormat.Type)
	assert.Equal(t, 300, got.MaxTokens)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 128, resp.Usage.Total())
}

func TestChat_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	adapter := NewOpenRouterAdapter(Config{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := adapter.Chat(context.Background(), output.ChatRequest{})
	assert.ErrorContains(t, err, "no choices")
}
