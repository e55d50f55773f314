package entity

import "time"

type SubmissionStatus string

const (
	SubmissionPending    SubmissionStatus = "pending"
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionCompleted  SubmissionStatus = "completed"
	SubmissionFailed     SubmissionStatus = "failed"
)

type EngineOutcome string

const (
	OutcomeSuccess EngineOutcome = "success"
	OutcomeFailure EngineOutcome = "failure"
	OutcomePartial EngineOutcome = "partial"
)

// Status maps a terminal engine outcome to the persisted submission status.
// A partial run stays in progress so an operator can finish it by hand.
func (o EngineOutcome) Status() SubmissionStatus {
	switch o {
	case OutcomeSuccess:
		return SubmissionCompleted
	case OutcomePartial:
		return SubmissionInProgress
	default:
		return SubmissionFailed
	}
}

// AutomationTask is what an automation engine receives.
type AutomationTask struct {
	SubmissionID string
	TargetURL    string
	TargetName   string
	Instruction  string
	Config       BrowserUseConfig
}

type EngineResult struct {
	Outcome   EngineOutcome `json:"outcome"`
	Notes     string        `json:"notes"`
	SessionID string        `json:"session_id,omitempty"`
	ShareURL  string        `json:"share_url,omitempty"`
	LiveURL   string        `json:"live_url,omitempty"`
	Steps     int           `json:"steps"`
}

type Submission struct {
	ID          string           `json:"id"`
	StartupID   string           `json:"startup_id"`
	TargetID    string           `json:"target_id"`
	Status      SubmissionStatus `json:"status"`
	FormType    FormType         `json:"form_type"`
	Engine      string           `json:"engine"`
	AgentNotes  string           `json:"agent_notes,omitempty"`
	SessionID   string           `json:"session_id,omitempty"`
	ShareURL    string           `json:"share_url,omitempty"`
	SubmittedAt time.Time        `json:"submitted_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Plan is the dispatch result for one target: which specialist was chosen and
// what it produced.
type Plan struct {
	FormType       FormType              `json:"form_type"`
	Specialist     string                `json:"specialist"`
	PlanIdentifier string                `json:"plan_identifier"`
	Instruction    string                `json:"instruction"`
	Config         BrowserUseConfig      `json:"config"`
	Validation     InstructionValidation `json:"validation"`
}

// Verdict is the judged outcome of an engine's final report.
type Verdict struct {
	Outcome EngineOutcome `json:"outcome"`
	Notes   string        `json:"notes"`
}
