package specialists

import (
	"fmt"
	"strings"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

// ContactFormSpecialist targets plain contact pages. Instead of mapping
// fields one by one it writes an outreach message for the message box.
type ContactFormSpecialist struct {
	Base
}

var _ output.FormSpecialist = (*ContactFormSpecialist)(nil)

// contactKeywords match anywhere in the URL, host included.
var contactKeywords = []string{"contact", "get-in-touch", "reach-out", "connect", "contact-us"}

func NewContactForm(logger output.LoggerPort) *ContactFormSpecialist {
	return &ContactFormSpecialist{Base: newBase(entity.FormTypeContact, logger)}
}

func (s *ContactFormSpecialist) Name() string {
	return "Contact Form Specialist"
}

func (s *ContactFormSpecialist) CanHandle(url string) bool {
	return containsAny(strings.ToLower(url), contactKeywords...)
}

func (s *ContactFormSpecialist) BrowserConfig() entity.BrowserUseConfig {
	cfg := s.Base.BrowserConfig()
	cfg.MaxAgentSteps = 25
	return cfg
}

func (s *ContactFormSpecialist) BuildInstruction(targetURL, targetName string, data *entity.SmartDataMapping) string {
	role := fmt.Sprintf("You are a contact form specialist. Send %s's introduction to %s through the contact form at %s.", companyName(data), targetName, targetURL)

	subject := "Investment opportunity: " + companyName(data)
	if round := orEmpty(data).PrimaryData.Get("funding_round"); round != "" {
		subject += " (" + round + ")"
	}

	var sb strings.Builder
	sb.WriteString("CONTACT FORM STRATEGY:\n")
	sb.WriteString("1. Find the contact form, scrolling or following a \"Contact\" link.\n")
	sb.WriteString("2. Fill name, email and company from the lead founder data.\n")
	fmt.Fprintf(&sb, "3. Subject, if asked: %q.\n", subject)
	sb.WriteString("4. Paste MESSAGE into the message field as written. Trim only to fit a length limit.\n")
	sb.WriteString("5. Topic, if asked: \"Investment\" or the closest option. Then press \"Send\".\n")
	sb.WriteString("\nMESSAGE:\n\"\"\"\n")
	sb.WriteString(s.ComposeMessage(targetName, data))
	sb.WriteString("\n\"\"\"\n")

	criteria := "a sent or thank-you confirmation is shown after submitting. Report its text."

	return s.compose(role, sb.String(), criteria, targetName, data)
}

// ComposeMessage writes the outreach message from the facts that are present.
// Absent facts drop their whole paragraph.
func (s *ContactFormSpecialist) ComposeMessage(targetName string, data *entity.SmartDataMapping) string {
	p := orEmpty(data).PrimaryData

	company := p.Get("company_name")
	website := p.Get("company_website")
	founder := p.Get("lead_founder_name")
	role := p.Get("lead_founder_role")

	paragraphs := make([]string, 0, 10)

	if name := strings.TrimSpace(targetName); name != "" {
		paragraphs = append(paragraphs, fmt.Sprintf("Hi %s team,", name))
	} else {
		paragraphs = append(paragraphs, "Hello,")
	}

	intro := introLine(founder, role, company, website)
	if short := orEmpty(data).DescriptionByLength.Short; short != "" {
		intro = strings.TrimSpace(intro + " " + short)
	}
	paragraphs = appendPresent(paragraphs, intro)

	paragraphs = appendPresent(paragraphs, labeled("The problem: ", p.Get("problem_statement")))
	paragraphs = appendPresent(paragraphs, labeled("Traction: ", p.First("traction", "traction_overview", "kpis", "metrics")))
	paragraphs = appendPresent(paragraphs, labeled("Product: ", p.Get("product_details")))
	paragraphs = appendPresent(paragraphs, labeled("Business model: ", p.Get("revenue_model")))
	paragraphs = appendPresent(paragraphs, labeled("What sets us apart: ", p.Get("competitive_advantage")))
	paragraphs = appendPresent(paragraphs, labeled("Market: ", p.Get("market_size")))

	if round := p.Get("funding_round"); round != "" {
		raise := "We are raising our " + round + " round"
		if amount := p.Get("funding_amount_sought"); amount != "" {
			raise += " of " + amount
		}
		paragraphs = append(paragraphs, raise+".")
	}

	closing := "I would love to share more and see whether we could be a fit"
	if name := strings.TrimSpace(targetName); name != "" {
		closing += " for " + name
	}
	paragraphs = append(paragraphs, closing+".")

	signature := []string{"Best regards,"}
	if founder != "" {
		signature = append(signature, founder)
	}
	switch {
	case role != "" && company != "":
		signature = append(signature, role+", "+company)
	case company != "":
		signature = append(signature, company)
	}
	signature = appendPresent(signature, labeled("LinkedIn: ", p.Get("lead_founder_linkedin")))
	signature = appendPresent(signature, labeled("GitHub: ", p.Get("lead_founder_github")))
	signature = appendPresent(signature, labeled("Deck: ", p.Get("pitch_deck_url")))
	paragraphs = append(paragraphs, strings.Join(signature, "\n"))

	return strings.Join(paragraphs, "\n\n")
}

func introLine(founder, role, company, website string) string {
	if company != "" && website != "" {
		company = fmt.Sprintf("%s (%s)", company, website)
	}
	switch {
	case founder != "" && role != "" && company != "":
		return fmt.Sprintf("I'm %s, %s of %s.", founder, role, company)
	case founder != "" && company != "":
		return fmt.Sprintf("I'm %s from %s.", founder, company)
	case founder != "":
		return fmt.Sprintf("I'm %s.", founder)
	case company != "":
		return fmt.Sprintf("I'm reaching out on behalf of %s.", company)
	default:
		return ""
	}
}

func labeled(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

func appendPresent(list []string, value string) []string {
	if strings.TrimSpace(value) == "" {
		return list
	}
	return append(list, value)
}
