package specialists

import (
	"fmt"
	"strings"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

type TypeformSpecialist struct {
	Base
}

var _ output.FormSpecialist = (*TypeformSpecialist)(nil)

func NewTypeform(logger output.LoggerPort) *TypeformSpecialist {
	return &TypeformSpecialist{Base: newBase(entity.FormTypeTypeform, logger)}
}

func (s *TypeformSpecialist) Name() string {
	return "Typeform Specialist"
}

func (s *TypeformSpecialist) CanHandle(url string) bool {
	return strings.Contains(strings.ToLower(url), "typeform.com")
}

func (s *TypeformSpecialist) BrowserConfig() entity.BrowserUseConfig {
	cfg := s.Base.BrowserConfig()
	cfg.MaxAgentSteps = 60
	return cfg
}

func (s *TypeformSpecialist) BuildInstruction(targetURL, targetName string, data *entity.SmartDataMapping) string {
	role := fmt.Sprintf("You are a Typeform specialist. Submit %s's application to %s at %s.", companyName(data), targetName, targetURL)

	strategy := `TYPEFORM STRATEGY:
1. Press "Start" or Enter on the welcome screen.
2. Typeform shows one question per screen: answer it from STARTUP DATA, then press "OK" or Enter.
3. Repeat for up to 20 questions. If a question does not advance, fix the answer flagged in red.
4. Dropdowns: type the first letters, pick from the OPTIONS lists in order, then "Other".
5. Multiple choice: click the option or press its letter. Confirm multi-select with "OK".
6. On the last screen press "Submit".
`
	criteria := "the Typeform thank-you screen is visible after Submit. Report its text."

	return s.compose(role, strategy, criteria, targetName, data)
}
