package specialists

import (
	"fmt"
	"strings"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

type GoogleFormsSpecialist struct {
	Base
}

var _ output.FormSpecialist = (*GoogleFormsSpecialist)(nil)

func NewGoogleForms(logger output.LoggerPort) *GoogleFormsSpecialist {
	return &GoogleFormsSpecialist{Base: newBase(entity.FormTypeGoogle, logger)}
}

func (s *GoogleFormsSpecialist) Name() string {
	return "Google Forms Specialist"
}

func (s *GoogleFormsSpecialist) CanHandle(url string) bool {
	return containsAny(strings.ToLower(url), "forms.gle", "docs.google.com/forms")
}

func (s *GoogleFormsSpecialist) BrowserConfig() entity.BrowserUseConfig {
	cfg := s.Base.BrowserConfig()
	cfg.MaxAgentSteps = 45
	return cfg
}

func (s *GoogleFormsSpecialist) BuildInstruction(targetURL, targetName string, data *entity.SmartDataMapping) string {
	role := fmt.Sprintf("You are a Google Form specialist. Submit %s's application to %s at %s.", companyName(data), targetName, targetURL)

	strategy := `GOOGLE FORM STRATEGY:
1. Scroll each section first. Required questions carry a red asterisk (*).
2. Short answer: one line in the expected format. Paragraph: the description that fits. Multiple choice, dropdown and scale: one best option. Checkboxes: all that apply.
3. For uploads, paste the deck URL into a link question instead. Never sign in to Google Drive.
4. Press "Next" between sections, fixing any red error first.
5. On the last section press "Submit".
`
	criteria := `"Your response has been recorded" or a similar confirmation is shown. Report its text.`

	return s.compose(role, strategy, criteria, targetName, data)
}
