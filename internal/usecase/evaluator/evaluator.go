// Package evaluator turns an engine's final report into a submission outcome.
package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

const maxReportLen = 4000

var _ output.OutcomeEvaluator = (*Evaluator)(nil)

type Evaluator struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

// New builds an evaluator. llm may be nil, in which case unstructured
// reports are judged by keyword.
func New(llm output.LLMPort, logger output.LoggerPort) *Evaluator {
	return &Evaluator{
		llm:    llm,
		logger: logger,
	}
}

// Evaluate prefers a structured {"outcome", "notes"} report, then asks the
// LLM, then falls back to keywords.
func (e *Evaluator) Evaluate(ctx context.Context, instruction, report string) entity.Verdict {
	if v, err := ParseReport(report); err == nil {
		return v
	}

	if e.llm != nil {
		v, err := e.askLLM(ctx, instruction, report)
		if err == nil {
			e.logger.Info("Evaluation completed", "outcome", v.Outcome)
			return *v
		}
		e.logger.Warn("Failed to evaluate report with llm, using keywords", "error", err)
	}

	return Classify(report)
}

func (e *Evaluator) askLLM(ctx context.Context, instruction, report string) (*entity.Verdict, error) {
	if len(report) > maxReportLen {
		report = report[len(report)-maxReportLen:]
	}

	resp, err := e.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: evaluationPrompt},
			{Role: entity.RoleUser, Content: fmt.Sprintf("Instruction:\n%s\n\nFinal report:\n%s", instruction, report)},
		},
		Temperature:  0.0,
		MaxTokens:    300,
		JSONResponse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluation llm request failed: %w", err)
	}

	v, err := ParseReport(resp.Message.Content)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

const evaluationPrompt = `You review the final report of a browser agent that filled an investor application form.

Respond with JSON only:
{
  "outcome": "success" | "failure" | "partial",
  "notes": "one or two sentences for the founder"
}

success: the form was submitted and a confirmation was seen.
partial: some fields were filled but the form was not submitted, or submission is unconfirmed.
failure: the form could not be filled or submitted.`

// ParseReport extracts the JSON object between the first '{' and the last '}'.
func ParseReport(response string) (entity.Verdict, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return entity.Verdict{}, fmt.Errorf("no JSON found in response")
	}

	var v entity.Verdict
	if err := json.Unmarshal([]byte(response[start:end+1]), &v); err != nil {
		return entity.Verdict{}, fmt.Errorf("failed to parse JSON: %w", err)
	}

	switch v.Outcome {
	case entity.OutcomeSuccess, entity.OutcomeFailure, entity.OutcomePartial:
	default:
		return entity.Verdict{}, fmt.Errorf("unknown outcome %q", v.Outcome)
	}
	v.Notes = strings.TrimSpace(v.Notes)
	return v, nil
}

var (
	failureWords = []string{"could not", "couldn't", "unable to", "failed", "error", "captcha", "blocked"}
	successWords = []string{"submitted", "thank you", "thanks for", "application received", "successfully"}
)

// Classify judges a free-text report. Failure words win over success words.
func Classify(report string) entity.Verdict {
	notes := strings.TrimSpace(report)
	lower := strings.ToLower(notes)

	switch {
	case notes == "":
		return entity.Verdict{Outcome: entity.OutcomeFailure, Notes: "engine returned an empty report"}
	case containsAny(lower, failureWords):
		return entity.Verdict{Outcome: entity.OutcomeFailure, Notes: notes}
	case containsAny(lower, successWords):
		return entity.Verdict{Outcome: entity.OutcomeSuccess, Notes: notes}
	default:
		return entity.Verdict{Outcome: entity.OutcomePartial, Notes: notes}
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
