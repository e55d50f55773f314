// Package executor is the local automation engine: an LLM tool loop driving
// a browser on this machine.
package executor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/prompts"
)

const (
	Name = "local"

	maxIterations     = 50
	maxObservationLen = 20000
)

var _ output.AutomationEngine = (*UseCase)(nil)

// BrowserFactory opens a fresh browser for one task.
type BrowserFactory func(ctx context.Context) (output.BrowserPort, error)

// ToolsFactory binds the tool set to a task's browser.
type ToolsFactory func(browser output.BrowserPort) output.ToolRegistry

type UseCase struct {
	llm            output.LLMPort
	browsers       BrowserFactory
	tools          ToolsFactory
	evaluator      output.OutcomeEvaluator
	logger         output.LoggerPort
	systemTemplate string
	screenshotDir  string
}

func New(
	llm output.LLMPort,
	browsers BrowserFactory,
	tools ToolsFactory,
	evaluator output.OutcomeEvaluator,
	logger output.LoggerPort,
	systemTemplate string,
	screenshotDir string,
) *UseCase {
	if systemTemplate == "" {
		systemTemplate = prompts.EngineSystemTemplate
	}
	return &UseCase{
		llm:            llm,
		browsers:       browsers,
		tools:          tools,
		evaluator:      evaluator,
		logger:         logger,
		systemTemplate: systemTemplate,
		screenshotDir:  screenshotDir,
	}
}

func (uc *UseCase) Name() string {
	return Name
}

func (uc *UseCase) Run(ctx context.Context, task entity.AutomationTask) (*entity.EngineResult, error) {
	log := uc.logger.WithFields(map[string]any{
		"submission_id": task.SubmissionID,
		"target":        task.TargetName,
	})

	browser, err := uc.browsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting browser: %w", err)
	}
	defer browser.Close()

	if w, h := task.Config.BrowserViewportWidth, task.Config.BrowserViewportHeight; w > 0 && h > 0 {
		if err := browser.SetViewport(ctx, w, h); err != nil {
			log.Warn("Failed to set viewport", "error", err)
		}
	}
	if err := browser.Navigate(ctx, task.TargetURL); err != nil {
		return nil, fmt.Errorf("opening %s: %w", task.TargetURL, err)
	}

	steps := task.Config.MaxAgentSteps
	if steps <= 0 || steps > maxIterations {
		steps = maxIterations
	}

	tools := uc.tools(browser)
	systemPrompt, err := prompts.GenerateEngineSystemPrompt(uc.systemTemplate, tools, task.TargetName, task.TargetURL, steps)
	if err != nil {
		return nil, err
	}

	answer, used, err := uc.loop(ctx, tools, systemPrompt, task.Instruction, steps, log)
	if err != nil {
		return nil, err
	}

	result := &entity.EngineResult{
		SessionID: task.SubmissionID,
		Steps:     used,
	}
	if answer == nil {
		result.Outcome = entity.OutcomePartial
		result.Notes = fmt.Sprintf("Step limit reached (%d) before the agent reported back.", steps)
	} else {
		verdict := uc.evaluator.Evaluate(ctx, task.Instruction, *answer)
		result.Outcome = verdict.Outcome
		result.Notes = verdict.Notes
	}

	uc.saveScreenshot(ctx, browser, task.SubmissionID, log)

	log.Info("Local run ended", "outcome", result.Outcome, "steps", used)
	return result, nil
}

// loop runs the tool-calling conversation. A nil answer means the step
// budget ran out.
func (uc *UseCase) loop(ctx context.Context, tools output.ToolRegistry, systemPrompt, instruction string, steps int, log output.LoggerPort) (*string, int, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: systemPrompt},
		{Role: entity.RoleUser, Content: instruction},
	}

	toolDefs := tools.Definitions()
	var tokens entity.TokenUsage

	for iteration := 1; iteration <= steps; iteration++ {
		log.Debug("Starting iteration", "iteration", iteration)

		resp, err := uc.llm.Chat(ctx, output.ChatRequest{
			Messages:    messages,
			Tools:       toolDefs,
			Temperature: 0.0,
		})
		if err != nil {
			return nil, iteration, fmt.Errorf("llm request failed: %w", err)
		}
		tokens.PromptTokens += resp.Usage.PromptTokens
		tokens.CompletionTokens += resp.Usage.CompletionTokens
		log.Debug("LLM replied", "iteration", iteration, "finish_reason", resp.FinishReason, "tool_calls", len(resp.Message.ToolCalls), "tokens_total", tokens.Total())

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			answer := resp.Message.Content
			return &answer, iteration, nil
		}

		for _, tc := range resp.Message.ToolCalls {
			observation := uc.executeTool(ctx, tools, tc, log)

			messages = append(messages, entity.Message{
				Role:       entity.RoleTool,
				ToolCallID: tc.ID,
				Name:       tc.Name.String(),
				Content:    observation,
			})
		}
	}

	return nil, steps, nil
}

func (uc *UseCase) executeTool(ctx context.Context, tools output.ToolRegistry, tc entity.ToolCall, log output.LoggerPort) string {
	tool, ok := tools.Get(tc.Name)
	if !ok {
		log.Warn("Unknown tool called", "name", tc.Name)
		return fmt.Sprintf("Error: unknown tool '%s'", tc.Name)
	}

	log.Info("Executing tool", "name", tc.Name)

	result, err := tool.Execute(ctx, tc.Arguments)
	if err != nil {
		log.Warn("Tool execution failed", "name", tc.Name, "error", err)
		return "Error: " + err.Error()
	}

	if len(result) > maxObservationLen {
		result = result[:maxObservationLen] + "\n... (truncated)"
	}

	log.Debug("Tool completed", "name", tc.Name, "resultLen", len(result))
	return result
}

func (uc *UseCase) saveScreenshot(ctx context.Context, browser output.BrowserPort, submissionID string, log output.LoggerPort) {
	if uc.screenshotDir == "" || submissionID == "" {
		return
	}

	shot, err := browser.Screenshot(ctx)
	if err != nil {
		log.Warn("Final screenshot failed", "error", err)
		return
	}

	if err := os.MkdirAll(uc.screenshotDir, 0o755); err != nil {
		log.Warn("Creating screenshot dir failed", "error", err)
		return
	}
	path := filepath.Join(uc.screenshotDir, submissionID+"."+shot.Format)
	if err := os.WriteFile(path, shot.Data, 0o644); err != nil {
		log.Warn("Writing screenshot failed", "path", path, "error", err)
		return
	}
	log.Info("Final screenshot saved", "path", path, "width", shot.Width, "height", shot.Height)
}
