package userinteraction

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestShowPlan(t *testing.T) {
	var buf bytes.Buffer
	plan := &entity.Plan{
		FormType:       entity.FormTypeTypeform,
		Specialist:     "Typeform specialist",
		PlanIdentifier: "PRO/Foo Inc/Acme FUND",
		Instruction:    "Fill the form.\nSUCCESS CRITERIA: done",
		Config:         entity.BrowserUseConfig{MaxAgentSteps: 35},
		Validation:     entity.InstructionValidation{IsValid: false, Issues: []string{"instruction too short (36 < 100 characters)"}},
	}

	require.NoError(t, NewConsole(&buf).ShowPlan(plan))

	out := buf.String()
	assert.Contains(t, out, "━━━ PRO/Foo Inc/Acme FUND ━━━")
	assert.Contains(t, out, "Specialist: Typeform specialist (typeform)")
	assert.Contains(t, out, "⚠ 1 issue(s)")
	assert.Contains(t, out, "- instruction too short")
	assert.Contains(t, out, `"max_agent_steps": 35`)
	assert.True(t, strings.HasSuffix(out, "SUCCESS CRITERIA: done\n"))
}

func TestShowSubmission(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).ShowSubmission(&entity.Submission{
		ID:         "sub_1",
		Engine:     "browseruse",
		FormType:   entity.FormTypeGoogle,
		Status:     entity.SubmissionInProgress,
		ShareURL:   "https://share.example/1",
		AgentNotes: "  stopped at captcha  ",
	})

	out := buf.String()
	assert.Contains(t, out, "Status: in_progress")
	assert.Contains(t, out, "Recording: https://share.example/1")
	assert.Contains(t, out, "stopped at captcha\n")
}

func TestShowSpecialists(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).ShowSpecialists([]SpecialistLine{
		{Type: entity.FormTypeTypeform, Name: "Typeform specialist"},
		{Type: entity.FormTypeGeneric, Name: "Generic specialist"},
	}, entity.RegistryValidation{IsValid: true})

	out := buf.String()
	assert.Contains(t, out, "1. typeform   Typeform specialist")
	assert.Contains(t, out, "2. generic    Generic specialist")
	assert.Contains(t, out, "✓ valid")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "éé...", truncate("ééé", 2))
}
