package specialists

import (
	"fmt"
	"strings"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

type AirtableSpecialist struct {
	Base
}

var _ output.FormSpecialist = (*AirtableSpecialist)(nil)

func NewAirtable(logger output.LoggerPort) *AirtableSpecialist {
	return &AirtableSpecialist{Base: newBase(entity.FormTypeAirtable, logger)}
}

func (s *AirtableSpecialist) Name() string {
	return "Airtable Specialist"
}

func (s *AirtableSpecialist) CanHandle(url string) bool {
	return strings.Contains(strings.ToLower(url), "airtable.com")
}

func (s *AirtableSpecialist) BrowserConfig() entity.BrowserUseConfig {
	cfg := s.Base.BrowserConfig()
	cfg.MaxAgentSteps = 50
	return cfg
}

func (s *AirtableSpecialist) BuildInstruction(targetURL, targetName string, data *entity.SmartDataMapping) string {
	role := fmt.Sprintf("You are an Airtable form specialist. Submit %s's application to %s at %s.", companyName(data), targetName, targetURL)

	deck := orEmpty(data).PrimaryData.Get("pitch_deck_url")
	deckStep := "4. No deck URL: skip the attachment field unless it is required."
	if deck != "" {
		deckStep = fmt.Sprintf(`4. Deck: click "Attach files" on the attachment field and choose "Link (URL)", never a device or cloud source. Paste %q, confirm, and wait for the file chip to appear.`, deck)
	}

	strategy := `AIRTABLE STRATEGY:
1. The form is one long page. Scroll through it and note the required fields.
2. Text fields take STARTUP DATA. Long text takes the longest description that fits.
3. Select fields: read the list, then pick from the OPTIONS lists.
` + deckStep + `
5. Press "Submit" at the bottom.
`
	criteria := "Airtable shows its thank-you or submitted message. Report its text."

	return s.compose(role, strategy, criteria, targetName, data)
}
