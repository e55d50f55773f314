// Package submission dispatches a target to its form specialist and drives
// an automation engine with the resulting instruction.
package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/babacardot/suparaise-sub001/internal/application/port/input"
	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/usecase/smartdata"
	"github.com/babacardot/suparaise-sub001/internal/usecase/specialists"
)

var (
	_ input.SubmissionPlanner = (*UseCase)(nil)
	_ input.SubmissionRunner  = (*UseCase)(nil)
)

const (
	SourceFormType = "form_type"
	SourceURL      = "url"
	SourceFallback = "fallback"
)

type UseCase struct {
	registry    output.SpecialistRegistry
	startups    output.StartupDataPort
	targets     output.TargetPort
	submissions output.SubmissionStore
	engine      output.AutomationEngine
	metrics     output.MetricsPort
	logger      output.LoggerPort

	validate *validator.Validate
	now      func() time.Time
}

func New(
	registry output.SpecialistRegistry,
	startups output.StartupDataPort,
	targets output.TargetPort,
	submissions output.SubmissionStore,
	engine output.AutomationEngine,
	metrics output.MetricsPort,
	logger output.LoggerPort,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		registry:    registry,
		startups:    startups,
		targets:     targets,
		submissions: submissions,
		engine:      engine,
		metrics:     metrics,
		logger:      logger,
		validate:    validator.New(),
		now:         time.Now,
	}
}

// Plan is pure: it resolves the specialist and builds the instruction
// without touching storage or the engine. Validation issues are reported on
// the plan, never as an error.
func (uc *UseCase) Plan(ctx context.Context, req input.PlanRequest) (*entity.Plan, error) {
	if req.Data == nil {
		return nil, fmt.Errorf("plan %q: %w: mapping is required", req.TargetName, entity.ErrInvalidSmartData)
	}

	specialist, source, err := uc.resolve(req.FormType, req.TargetURL)
	if err != nil {
		return nil, err
	}

	instruction := specialist.BuildInstruction(req.TargetURL, req.TargetName, req.Data)
	cfg := specialist.BrowserConfig()
	if err := uc.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("browser config for %s: %w", specialist.Type(), err)
	}

	plan := &entity.Plan{
		FormType:       specialist.Type(),
		Specialist:     specialist.Name(),
		PlanIdentifier: specialists.PlanIdentifier(req.Data, req.TargetName),
		Instruction:    instruction,
		Config:         cfg,
		Validation:     specialists.ValidateInstruction(instruction),
	}

	uc.metrics.ObserveDispatch(plan.FormType, source)
	uc.metrics.ObserveInstruction(plan.FormType, len([]rune(instruction)), plan.Validation.IsValid)

	uc.logger.Info("Plan ready",
		"plan", plan.PlanIdentifier,
		"specialist", plan.Specialist,
		"source", source,
		"valid", plan.Validation.IsValid,
	)

	return plan, nil
}

// Prepare loads everything a plan needs for one stored target.
func (uc *UseCase) Prepare(ctx context.Context, userID, startupID, targetID string) (*entity.Plan, *entity.Target, error) {
	profile, err := uc.startups.GetStartupProfile(ctx, userID, startupID)
	if err != nil {
		return nil, nil, fmt.Errorf("load startup %s: %w", startupID, err)
	}

	settings, err := uc.startups.GetAgentSettings(ctx, userID)
	switch {
	case errors.Is(err, entity.ErrNotFound):
		settings = &entity.AgentSettings{}
	case err != nil:
		return nil, nil, fmt.Errorf("load agent settings: %w", err)
	}

	target, err := uc.targets.GetTarget(ctx, targetID)
	if err != nil {
		return nil, nil, fmt.Errorf("load target %s: %w", targetID, err)
	}

	formType := ""
	if target.FormType != nil {
		formType = *target.FormType
	}

	plan, err := uc.Plan(ctx, input.PlanRequest{
		TargetURL:  target.ApplicationURL,
		TargetName: target.Name,
		FormType:   formType,
		Data:       smartdata.Build(*profile, *settings, *target, ""),
	})
	if err != nil {
		return nil, nil, err
	}
	return plan, target, nil
}

// Run executes one submission end to end. Engine failures are recorded on
// the submission rather than returned; there are no retries.
func (uc *UseCase) Run(ctx context.Context, req input.RunRequest) (*entity.Submission, error) {
	plan, target, err := uc.Prepare(ctx, req.UserID, req.StartupID, req.TargetID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	sub := &entity.Submission{
		ID:          uuid.NewString(),
		StartupID:   req.StartupID,
		TargetID:    req.TargetID,
		Status:      entity.SubmissionInProgress,
		FormType:    plan.FormType,
		Engine:      uc.engine.Name(),
		SubmittedAt: now,
		UpdatedAt:   now,
	}
	if err := uc.submissions.CreateSubmission(ctx, sub); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}

	log := uc.logger.WithFields(map[string]any{
		"submission": sub.ID,
		"plan":       plan.PlanIdentifier,
		"engine":     sub.Engine,
	})
	if !plan.Validation.IsValid {
		log.Warn("Dispatching instruction with issues", "issues", plan.Validation.Issues)
	}
	log.Info("Submission started", "target", target.Name, "url", target.ApplicationURL)

	result, runErr := uc.engine.Run(ctx, entity.AutomationTask{
		SubmissionID: sub.ID,
		TargetURL:    target.ApplicationURL,
		TargetName:   target.Name,
		Instruction:  plan.Instruction,
		Config:       plan.Config,
	})
	applyResult(sub, result, runErr)
	sub.UpdatedAt = uc.now()

	if runErr != nil {
		log.Error("Engine run failed", "error", runErr)
	} else {
		log.Info("Submission finished", "status", sub.Status, "notes", sub.AgentNotes)
	}

	uc.metrics.ObserveSubmission(sub.Status, sub.Engine)

	if err := uc.submissions.UpdateSubmission(ctx, sub); err != nil {
		return sub, fmt.Errorf("update submission %s: %w", sub.ID, err)
	}
	return sub, nil
}

func (uc *UseCase) resolve(formType, url string) (output.FormSpecialist, string, error) {
	if ft, ok := entity.ParseFormType(formType); ok {
		s, err := uc.registry.ForFormType(formType, url)
		if err != nil {
			return nil, "", fmt.Errorf("resolve specialist: %w", err)
		}
		if s.Type() == ft {
			return s, SourceFormType, nil
		}
		return s, sourceFor(s), nil
	}

	s, err := uc.registry.ForURL(url)
	if err != nil {
		return nil, "", fmt.Errorf("resolve specialist: %w", err)
	}
	return s, sourceFor(s), nil
}

func sourceFor(s output.FormSpecialist) string {
	if s.Type() == entity.FormTypeGeneric {
		return SourceFallback
	}
	return SourceURL
}

func applyResult(sub *entity.Submission, result *entity.EngineResult, runErr error) {
	switch {
	case runErr != nil:
		sub.Status = entity.SubmissionFailed
		sub.AgentNotes = runErr.Error()
	case result == nil:
		sub.Status = entity.SubmissionFailed
		sub.AgentNotes = "engine returned no result"
	default:
		sub.Status = result.Outcome.Status()
		sub.AgentNotes = result.Notes
		sub.SessionID = result.SessionID
		sub.ShareURL = result.ShareURL
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveDispatch(entity.FormType, string)           {}
func (nopMetrics) ObserveInstruction(entity.FormType, int, bool)     {}
func (nopMetrics) ObserveSubmission(entity.SubmissionStatus, string) {}
