// Package userinteraction renders plans and submissions for a terminal.
package userinteraction

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

type SpecialistLine struct {
	Type entity.FormType
	Name string
}

// Console writes colored reports. Color is dropped automatically when the
// writer is not a terminal or NO_COLOR is set.
type Console struct {
	out io.Writer

	heading *color.Color
	label   *color.Color
	dim     *color.Color
	ok      *color.Color
	warn    *color.Color
	bad     *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		heading: color.New(color.FgCyan, color.Bold),
		label:   color.New(color.FgBlue),
		dim:     color.New(color.Faint),
		ok:      color.New(color.FgGreen),
		warn:    color.New(color.FgYellow, color.Bold),
		bad:     color.New(color.FgRed),
	}
}

func (c *Console) ShowPlan(plan *entity.Plan) error {
	c.heading.Fprintf(c.out, "\n━━━ %s ━━━\n", plan.PlanIdentifier)
	c.field("Specialist", fmt.Sprintf("%s (%s)", plan.Specialist, plan.FormType))
	c.field("Length", fmt.Sprintf("%d characters", len([]rune(plan.Instruction))))
	c.showValidation(plan.Validation.IsValid, plan.Validation.Issues)

	cfg, err := json.MarshalIndent(plan.Config, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	c.label.Fprintln(c.out, "\nConfig:")
	c.dim.Fprintln(c.out, string(cfg))

	c.label.Fprintln(c.out, "\nInstruction:")
	fmt.Fprintln(c.out, plan.Instruction)
	return nil
}

func (c *Console) ShowSubmission(sub *entity.Submission) {
	c.heading.Fprintf(c.out, "\n━━━ Submission %s ━━━\n", sub.ID)
	c.field("Engine", sub.Engine)
	c.field("Form type", sub.FormType.String())

	c.label.Fprint(c.out, "Status: ")
	switch sub.Status {
	case entity.SubmissionCompleted:
		c.ok.Fprintln(c.out, sub.Status)
	case entity.SubmissionFailed:
		c.bad.Fprintln(c.out, sub.Status)
	default:
		c.warn.Fprintln(c.out, sub.Status)
	}

	if sub.ShareURL != "" {
		c.field("Recording", sub.ShareURL)
	}
	if notes := strings.TrimSpace(sub.AgentNotes); notes != "" {
		c.label.Fprintln(c.out, "Notes:")
		c.dim.Fprintln(c.out, truncate(notes, 2000))
	}
}

func (c *Console) ShowSpecialists(lines []SpecialistLine, validation entity.RegistryValidation) {
	c.heading.Fprintln(c.out, "\n━━━ Specialists (dispatch order) ━━━")
	for i, l := range lines {
		fmt.Fprintf(c.out, "%d. ", i+1)
		c.label.Fprintf(c.out, "%-10s", l.Type)
		fmt.Fprintf(c.out, " %s\n", l.Name)
	}
	fmt.Fprintln(c.out)
	c.showValidation(validation.IsValid, validation.Issues)
}

func (c *Console) showValidation(valid bool, issues []string) {
	if valid {
		c.ok.Fprintln(c.out, "✓ valid")
		return
	}
	c.warn.Fprintf(c.out, "⚠ %d issue(s)\n", len(issues))
	for _, issue := range issues {
		c.dim.Fprintf(c.out, "   - %s\n", issue)
	}
}

func (c *Console) field(name, value string) {
	c.label.Fprintf(c.out, "%s: ", name)
	fmt.Fprintln(c.out, value)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
