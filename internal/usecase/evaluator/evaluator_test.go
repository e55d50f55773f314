package evaluator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/logger"
)

type scriptedLLM struct {
	reply string
	err   error
	calls int
}

func (s *scriptedLLM) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &output.ChatResponse{Message: entity.Message{Role: entity.RoleAssistant, Content: s.reply}}, nil
}

func TestParseReport_WithTextAround(t *testing.T) {
	response := `Here is the result:

{"outcome": "success", "notes": "  Submitted, confirmation page shown.  "}

Done.`

	v, err := ParseReport(response)
	require.NoError(t, err)
	assert.Equal(t, entity.OutcomeSuccess, v.Outcome)
	assert.Equal(t, "Submitted, confirmation page shown.", v.Notes)
}

func TestParseReport_Rejects(t *testing.T) {
	for name, response := range map[string]string{
		"no json":         "All done, the form is submitted.",
		"broken json":     `{"outcome": "success"`,
		"unknown outcome": `{"outcome": "maybe", "notes": ""}`,
		"reversed braces": `} nothing {`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseReport(response)
			assert.Error(t, err)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		report string
		want   entity.EngineOutcome
	}{
		{"", entity.OutcomeFailure},
		{"Application submitted. Thank you page displayed.", entity.OutcomeSuccess},
		{"Form submitted but a captcha blocked the final step", entity.OutcomeFailure},
		{"Filled 12 of 14 fields", entity.OutcomePartial},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.report).Outcome, tt.report)
	}
}

func TestEvaluate_StructuredReportSkipsLLM(t *testing.T) {
	llm := &scriptedLLM{}
	e := New(llm, logger.NewNop())

	v := e.Evaluate(context.Background(), "fill the form", `{"outcome":"partial","notes":"deck upload missing"}`)

	assert.Equal(t, entity.OutcomePartial, v.Outcome)
	assert.Zero(t, llm.calls)
}

func TestEvaluate_UsesLLMForFreeText(t *testing.T) {
	llm := &scriptedLLM{reply: `{"outcome":"success","notes":"Confirmation seen"}`}
	e := New(llm, logger.NewNop())

	v := e.Evaluate(context.Background(), "fill the form", "I clicked submit and saw a page")

	assert.Equal(t, entity.OutcomeSuccess, v.Outcome)
	assert.Equal(t, "Confirmation seen", v.Notes)
	assert.Equal(t, 1, llm.calls)
}

func TestEvaluate_LLMErrorFallsBackToKeywords(t *testing.T) {
	e := New(&scriptedLLM{err: errors.New("rate limited")}, logger.NewNop())

	v := e.Evaluate(context.Background(), "fill the form", "Unable to find the submit button")
	assert.Equal(t, entity.OutcomeFailure, v.Outcome)
}

func TestEvaluate_WithoutLLM(t *testing.T) {
	e := New(nil, logger.NewNop())

	v := e.Evaluate(context.Background(), "fill the form", "Application received, thanks for applying")
	assert.Equal(t, entity.OutcomeSuccess, v.Outcome)
}
