package specialists

import (
	"fmt"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

// GenericSpecialist accepts every URL and must stay last in any registry.
type GenericSpecialist struct {
	Base
}

var _ output.FormSpecialist = (*GenericSpecialist)(nil)

func NewGeneric(logger output.LoggerPort) *GenericSpecialist {
	return &GenericSpecialist{Base: newBase(entity.FormTypeGeneric, logger)}
}

func (s *GenericSpecialist) Name() string {
	return "Generic Form Specialist"
}

func (s *GenericSpecialist) CanHandle(string) bool {
	return true
}

func (s *GenericSpecialist) BrowserConfig() entity.BrowserUseConfig {
	cfg := s.Base.BrowserConfig()
	cfg.MaxAgentSteps = 40
	return cfg
}

func (s *GenericSpecialist) BuildInstruction(targetURL, targetName string, data *entity.SmartDataMapping) string {
	role := fmt.Sprintf("You are a form-filling specialist. Submit %s's application to %s at %s.", companyName(data), targetName, targetURL)

	strategy := `STRATEGY:
1. Find the application form, following an "Apply" link if needed, and list its fields.
2. Map each field to STARTUP DATA before typing.
3. Fill top to bottom. Dropdowns: read every option, pick from the OPTIONS lists, then "Other".
4. Uploads: follow the pitch deck guideline.
5. Press "Next" or "Submit" until a confirmation appears, fixing validation errors first.
`
	criteria := "a thank-you or confirmation screen is visible after Submit. Report its text."

	return s.compose(role, strategy, criteria, targetName, data)
}
