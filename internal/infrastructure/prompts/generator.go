// Package prompts renders the system prompts used by the local engine.
package prompts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
)

type ToolInfo struct {
	Name        string
	Description string
}

type EnginePromptData struct {
	Tools      []ToolInfo
	TargetName string
	TargetURL  string
	MaxSteps   int
}

// GenerateEngineSystemPrompt renders baseTemplate with the registered tools in
// registry order and the task's target.
func GenerateEngineSystemPrompt(baseTemplate string, tools output.ToolRegistry, targetName, targetURL string, maxSteps int) (string, error) {
	registered := tools.All()
	infos := make([]ToolInfo, 0, len(registered))
	for _, t := range registered {
		infos = append(infos, ToolInfo{
			Name:        t.Name().String(),
			Description: t.Description(),
		})
	}

	tmpl, err := template.New("engine").Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", fmt.Errorf("parse prompt template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, EnginePromptData{
		Tools:      infos,
		TargetName: targetName,
		TargetURL:  targetURL,
		MaxSteps:   maxSteps,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt template: %w", err)
	}

	return buf.String(), nil
}
