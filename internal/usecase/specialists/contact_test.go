package specialists

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/logger"
)

func contactMapping() *entity.SmartDataMapping {
	m := &entity.SmartDataMapping{
		DescriptionByLength: entity.DescriptionTiers{Short: "We run payroll for African SMEs."},
	}
	m.PrimaryData.Set("company_name", "Foo Inc")
	m.PrimaryData.Set("company_website", "https://foo.inc")
	m.PrimaryData.Set("lead_founder_name", "Awa Diop")
	m.PrimaryData.Set("lead_founder_role", "CEO")
	m.PrimaryData.Set("lead_founder_linkedin", "https://linkedin.com/in/awadiop")
	m.PrimaryData.Set("problem_statement", "SMEs lose days every month on manual payroll.")
	m.PrimaryData.Set("product_details", "A payroll dashboard with local tax filing.")
	return m
}

func TestComposeMessage_SkipsMissingTraction(t *testing.T) {
	s := NewContactForm(logger.NewNop())

	msg := s.ComposeMessage("Acme Ventures", contactMapping())

	assert.True(t, strings.HasPrefix(msg, "Hi Acme Ventures team,"))
	assert.Contains(t, msg, "I'm Awa Diop, CEO of Foo Inc (https://foo.inc).")
	assert.Contains(t, msg, "The problem: SMEs lose days")
	assert.NotContains(t, msg, "Traction")
	assert.NotContains(t, msg, "GitHub")
	assert.NotContains(t, msg, "\n\n\n")
	for _, p := range strings.Split(msg, "\n\n") {
		assert.NotEmpty(t, strings.TrimSpace(p))
	}
}

func TestComposeMessage_TractionFallbackChain(t *testing.T) {
	s := NewContactForm(logger.NewNop())

	m := contactMapping()
	m.PrimaryData.Set("metrics", "40% MoM")
	m.PrimaryData.Set("kpis", "120 customers")
	assert.Contains(t, s.ComposeMessage("Acme", m), "Traction: 120 customers")

	m.PrimaryData.Set("traction", "$30k MRR")
	assert.Contains(t, s.ComposeMessage("Acme", m), "Traction: $30k MRR")
}

func TestComposeMessage_SignatureAndRaise(t *testing.T) {
	s := NewContactForm(logger.NewNop())
	m := contactMapping()
	m.PrimaryData.Set("funding_round", "Seed")
	m.PrimaryData.Set("funding_amount_sought", "$1.5M")
	m.PrimaryData.Set("pitch_deck_url", "https://foo.inc/deck.pdf")

	msg := s.ComposeMessage("Acme", m)

	assert.Contains(t, msg, "We are raising our Seed round of $1.5M.")
	assert.True(t, strings.HasSuffix(msg, "Best regards,\nAwa Diop\nCEO, Foo Inc\nLinkedIn: https://linkedin.com/in/awadiop\nDeck: https://foo.inc/deck.pdf"))
}

func TestComposeMessage_EmptyMapping(t *testing.T) {
	s := NewContactForm(logger.NewNop())

	msg := s.ComposeMessage("", nil)

	assert.Equal(t, "Hello,\n\nI would love to share more and see whether we could be a fit.\n\nBest regards,", msg)
}

func TestContactForm_BuildInstructionEmbedsMessage(t *testing.T) {
	s := NewContactForm(logger.NewNop())
	m := contactMapping()
	m.PrimaryData.Set("funding_round", "Seed")

	instruction := s.BuildInstruction("https://fund.vc/contact", "Acme", m)

	start := strings.Index(instruction, "\"\"\"\n")
	end := strings.LastIndex(instruction, "\n\"\"\"")
	require.True(t, start >= 0 && end > start)
	assert.Equal(t, s.ComposeMessage("Acme", m), instruction[start+4:end])

	assert.Contains(t, instruction, `"Investment opportunity: Foo Inc (Seed)"`)
	assert.Contains(t, instruction, SuccessCriteriaMarker)
}
