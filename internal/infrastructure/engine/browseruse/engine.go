package browseruse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

const Name = "browseruse"

var _ output.AutomationEngine = (*Engine)(nil)

type Config struct {
	LLMModel     string
	PollInterval time.Duration
	Timeout      time.Duration
}

// Engine runs one cloud task per submission and polls it to completion.
type Engine struct {
	client    *Client
	cfg       Config
	evaluator output.OutcomeEvaluator
	logger    output.LoggerPort
}

func NewEngine(client *Client, cfg Config, evaluator output.OutcomeEvaluator, logger output.LoggerPort) *Engine {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	return &Engine{
		client:    client,
		cfg:       cfg,
		evaluator: evaluator,
		logger:    logger,
	}
}

func (e *Engine) Name() string {
	return Name
}

func (e *Engine) Run(ctx context.Context, task entity.AutomationTask) (*entity.EngineResult, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	log := e.logger.WithFields(map[string]any{
		"submission_id": task.SubmissionID,
		"target":        task.TargetName,
	})

	started, err := e.client.RunTask(ctx, e.request(task))
	if err != nil {
		return nil, err
	}
	log.Info("Browser task started", "task_id", started.ID, "live_url", started.LiveURL)

	status, err := e.wait(ctx, started.ID, log)
	if err != nil {
		if ctx.Err() == nil {
			return nil, err
		}
		e.stop(started.ID, log)
		return &entity.EngineResult{
			Outcome:   entity.OutcomePartial,
			Notes:     fmt.Sprintf("Task did not finish in time (%v). Check the live session.", err),
			SessionID: started.ID,
			LiveURL:   started.LiveURL,
		}, nil
	}

	details, err := e.client.Task(ctx, started.ID)
	if err != nil {
		return nil, err
	}

	result := &entity.EngineResult{
		SessionID: started.ID,
		ShareURL:  details.PublicShareURL,
		LiveURL:   firstNonEmpty(details.LiveURL, started.LiveURL),
		Steps:     len(details.Steps),
	}

	if status == StatusFinished {
		verdict := e.evaluator.Evaluate(ctx, task.Instruction, details.Output)
		result.Outcome = verdict.Outcome
		result.Notes = verdict.Notes
	} else {
		result.Outcome = entity.OutcomeFailure
		result.Notes = firstNonEmpty(details.Output, "Browser task "+status)
	}

	log.Info("Browser task ended", "task_id", started.ID, "status", status, "outcome", result.Outcome, "steps", result.Steps)
	return result, nil
}

func (e *Engine) request(task entity.AutomationTask) RunTaskRequest {
	c := task.Config
	return RunTaskRequest{
		Task:                  task.Instruction,
		LLMModel:              firstNonEmpty(c.LLMModel, e.cfg.LLMModel),
		MaxAgentSteps:         c.MaxAgentSteps,
		UseAdblock:            c.UseAdblock,
		UseProxy:              c.UseProxy,
		ProxyCountryCode:      c.ProxyCountryCode,
		HighlightElements:     c.HighlightElements,
		BrowserViewportWidth:  c.BrowserViewportWidth,
		BrowserViewportHeight: c.BrowserViewportHeight,
		EnablePublicShare:     c.EnablePublicShare,
		SaveBrowserData:       c.SaveBrowserData,
	}
}

// wait polls until the task reaches a terminal status.
func (e *Engine) wait(ctx context.Context, taskID string, log output.LoggerPort) (string, error) {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	last := ""
	for {
		status, err := e.client.TaskStatus(ctx, taskID)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) || ctx.Err() != nil {
				return "", err
			}
			log.Warn("Polling task status failed", "task_id", taskID, "error", err)
		} else {
			if status != last {
				log.Debug("Browser task status", "task_id", taskID, "status", status)
				last = status
			}
			switch status {
			case StatusFinished, StatusFailed, StatusStopped:
				return status, nil
			}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func (e *Engine) stop(taskID string, log output.LoggerPort) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.client.StopTask(ctx, taskID); err != nil {
		log.Warn("Failed to stop browser task", "task_id", taskID, "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
