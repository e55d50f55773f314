// Package specialists holds the per-platform form strategies that turn startup
// data into a single natural-language instruction for an automation engine.
package specialists

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

const (
	DefaultOptionLimit = 5

	MinInstructionLength  = 100
	MaxInstructionLength  = 3000
	SuccessCriteriaMarker = "SUCCESS CRITERIA"
)

// Base carries the behavior shared by every specialist. Concrete specialists
// embed it and only encode what differs per platform.
type Base struct {
	formType entity.FormType
	logger   output.LoggerPort
}

func newBase(formType entity.FormType, logger output.LoggerPort) Base {
	return Base{formType: formType, logger: logger}
}

func (b Base) Type() entity.FormType {
	return b.formType
}

// BrowserConfig is the baseline every specialist overrides field by field.
func (b Base) BrowserConfig() entity.BrowserUseConfig {
	return entity.BrowserUseConfig{
		MaxAgentSteps:         30,
		UseAdblock:            true,
		UseProxy:              true,
		ProxyCountryCode:      "us",
		HighlightElements:     false,
		BrowserViewportWidth:  1280,
		BrowserViewportHeight: 960,
		EnablePublicShare:     true,
	}
}

// FormatDataLines renders each primary_data entry as key: "value" in insertion order.
func (b Base) FormatDataLines(m *entity.SmartDataMapping) []string {
	m = orEmpty(m)
	lines := make([]string, 0, len(m.PrimaryData))
	for _, f := range m.PrimaryData {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %q", f.Key, f.Value))
	}
	return lines
}

func (b Base) IndustryOptions(m *entity.SmartDataMapping, limit int) string {
	return joinFirst(orEmpty(m).IndustryVariations, limit)
}

func (b Base) LocationOptions(m *entity.SmartDataMapping, limit int) string {
	return joinFirst(orEmpty(m).LocationVariations, limit)
}

// CoreDataSection is reused verbatim by every specialist. It must stay a pure
// function of the mapping.
func (b Base) CoreDataSection(m *entity.SmartDataMapping) string {
	m = orEmpty(m)

	var sb strings.Builder
	sb.WriteString("STARTUP DATA (exact facts, never invent others):\n")
	for _, line := range b.FormatDataLines(m) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if tone := strings.TrimSpace(m.PreferredTone); tone != "" {
		fmt.Fprintf(&sb, "\nMaintain a %q tone.\n", tone)
	}
	if custom := strings.TrimSpace(m.CustomInstructions); custom != "" {
		fmt.Fprintf(&sb, "\nCUSTOM INSTRUCTIONS: %s\n", custom)
	}

	fmt.Fprintf(&sb, "\nINDUSTRY OPTIONS (in order): %s\n", b.IndustryOptions(m, DefaultOptionLimit))
	fmt.Fprintf(&sb, "LOCATION OPTIONS (in order): %s\n", b.LocationOptions(m, DefaultOptionLimit))

	sb.WriteString("\nDESCRIPTIONS (use the longest that fits):\n")
	fmt.Fprintf(&sb, "Short: %q\n", m.DescriptionByLength.Short)
	fmt.Fprintf(&sb, "Medium: %q\n", m.DescriptionByLength.Medium)
	fmt.Fprintf(&sb, "Long: %q\n", m.DescriptionByLength.Long)

	if kb := strings.TrimSpace(m.KnowledgeBaseSection); kb != "" {
		sb.WriteString("\n")
		sb.WriteString(kb)
		sb.WriteString("\n")
	}

	return sb.String()
}

// GlobalGuidelines is the policy block appended to every instruction.
func (b Base) GlobalGuidelines(m *entity.SmartDataMapping) string {
	m = orEmpty(m)
	deckURL := m.PrimaryData.Get("pitch_deck_url")
	country := CompanyCountry(m)
	revenue := RevenueText(m)

	var sb strings.Builder
	sb.WriteString("GLOBAL GUIDELINES:\n")
	sb.WriteString("- Skip optional fields you have no data for. Never invent facts.\n")

	if deckURL != "" {
		fmt.Fprintf(&sb, "- Pitch deck: paste %q into a URL field or the link option of an upload widget.\n", deckURL)
	} else {
		sb.WriteString("- Pitch deck: no deck URL is available. Leave deck fields empty, or write \"Available on request\" if required.\n")
	}
	sb.WriteString("- Never connect Google Drive, Dropbox or other cloud storage, and never open the local file picker.\n")
	sb.WriteString("- \"How did you hear about us?\": \"Search\" or the closest option.\n")

	if country != "" {
		fmt.Fprintf(&sb, "- Founder nationality, if asked and missing: company country %q.\n", country)
	} else {
		sb.WriteString("- Founder nationality, if asked and missing: the incorporation country.\n")
	}

	sb.WriteString("- Accept required terms and privacy checkboxes. Never opt into marketing.\n")

	answer := "no"
	if RevenueGenerating(revenue) {
		answer = "yes"
	}
	if revenue != "" {
		fmt.Fprintf(&sb, "- Revenue: current revenue is %q.", revenue)
	} else {
		sb.WriteString("- Revenue: no revenue figure is available.")
	}
	fmt.Fprintf(&sb, " \"Generating revenue?\" is \"yes\" only above 1 (here: %q).", answer)
	sb.WriteString(" Mandatory numeric field without data: enter 0.\n")

	return sb.String()
}

// compose assembles role, core data, strategy, guidelines and success criteria
// into the final instruction and runs the advisory validation.
func (b Base) compose(role, strategy, criteria, targetName string, m *entity.SmartDataMapping) string {
	var sb strings.Builder
	sb.WriteString(role)
	sb.WriteString("\n\n")
	sb.WriteString(b.CoreDataSection(m))
	sb.WriteString("\n")
	sb.WriteString(strategy)
	sb.WriteString("\n")
	sb.WriteString(b.GlobalGuidelines(m))
	sb.WriteString("\n")
	sb.WriteString(SuccessCriteriaMarker)
	sb.WriteString(": ")
	sb.WriteString(criteria)
	sb.WriteString("\n")

	instruction := sb.String()
	b.warnOnIssues(instruction, targetName, m)
	return instruction
}

func (b Base) warnOnIssues(instruction, targetName string, m *entity.SmartDataMapping) {
	result := ValidateInstruction(instruction)
	if result.IsValid || b.logger == nil {
		return
	}
	b.logger.Warn("Instruction validation issues",
		"specialist", b.formType.String(),
		"plan", PlanIdentifier(m, targetName),
		"length", utf8.RuneCountInString(instruction),
		"issues", result.Issues,
	)
}

// ValidateInstruction is advisory: callers log the issues and still dispatch.
func ValidateInstruction(instruction string) entity.InstructionValidation {
	issues := []string{}
	length := utf8.RuneCountInString(instruction)

	if length < MinInstructionLength {
		issues = append(issues, fmt.Sprintf("instruction too short (%d < %d characters)", length, MinInstructionLength))
	}
	if length > MaxInstructionLength {
		issues = append(issues, fmt.Sprintf("instruction too long (%d > %d characters), the engine may lose focus", length, MaxInstructionLength))
	}
	if !strings.Contains(instruction, SuccessCriteriaMarker) {
		issues = append(issues, "missing "+SuccessCriteriaMarker+" section")
	}

	return entity.InstructionValidation{
		IsValid: len(issues) == 0,
		Issues:  issues,
	}
}

// PlanIdentifier labels a run for operator logs: PLAN/COMPANY/TARGET TYPE.
func PlanIdentifier(m *entity.SmartDataMapping, targetName string) string {
	m = orEmpty(m)

	plan := strings.ToUpper(strings.TrimSpace(m.PermissionLevel()))
	if plan == "" {
		plan = "FREE"
	}
	company := m.PrimaryData.Get("company_name")
	if company == "" {
		company = "UNKNOWN"
	}
	target := strings.TrimSpace(targetName)
	if target == "" {
		target = "UNKNOWN"
	}
	kind := strings.ToUpper(strings.TrimSpace(m.TargetType))
	if kind == "" {
		kind = "FUND"
	}

	return fmt.Sprintf("%s/%s/%s %s", plan, company, target, kind)
}

// CompanyCountry resolves the country used for nationality and location fallbacks.
func CompanyCountry(m *entity.SmartDataMapping) string {
	m = orEmpty(m)
	if c := m.PrimaryData.First("incorporation_country", "company_country", "location"); c != "" {
		return c
	}
	if len(m.LocationVariations) > 0 {
		return m.LocationVariations[0]
	}
	return ""
}

// RevenueText picks the figure the revenue guideline quotes. The numeric
// mrr and arr fields win over free text, and the first field holding a
// positive amount wins over one that merely exists.
func RevenueText(m *entity.SmartDataMapping) string {
	p := orEmpty(m).PrimaryData
	keys := []string{"mrr", "arr", "current_revenue", "revenue"}
	for _, key := range keys {
		if v := p.Get(key); v != "" {
			if amount, ok := RevenueAmount(v); ok && amount > 0 {
				return v
			}
		}
	}
	return p.First(keys...)
}

var (
	amountPattern = regexp.MustCompile(`([$€£])?\s*(\d[\d,]*(?:\.\d+)?)\s*(?:([kKmMbB])\b)?`)
	yearPattern   = regexp.MustCompile(`^(?:19|20)\d\d$`)

	noRevenueMarkers = []string{"pre-revenue", "pre revenue", "prerevenue", "no revenue", "not generating"}
	forecastMarkers  = []string{"target", "goal", "forecast", "projected", "expected", "aiming", "plan to"}
)

// RevenueAmount reads the current amount out of free revenue text. Bare
// years are skipped, anything after a forecast word such as "targeting" is
// ignored, and explicit pre-revenue wording yields no amount. Suffixes k, m
// and b scale the value.
func RevenueAmount(text string) (float64, bool) {
	lower := strings.ToLower(text)
	if containsAny(lower, noRevenueMarkers...) {
		return 0, false
	}
	cut := len(lower)
	for _, marker := range forecastMarkers {
		if i := strings.Index(lower, marker); i >= 0 && i < cut {
			cut = i
		}
	}

	for _, match := range amountPattern.FindAllStringSubmatch(lower[:cut], -1) {
		currency, digits, suffix := match[1], match[2], match[3]
		if currency == "" && suffix == "" && yearPattern.MatchString(digits) {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(digits, ",", ""), 64)
		if err != nil {
			continue
		}
		switch suffix {
		case "k":
			value *= 1_000
		case "m":
			value *= 1_000_000
		case "b":
			value *= 1_000_000_000
		}
		return value, true
	}
	return 0, false
}

// RevenueGenerating reports whether text holds a current amount greater than 1.
func RevenueGenerating(text string) bool {
	amount, ok := RevenueAmount(text)
	return ok && amount > 1
}

func joinFirst(values []string, limit int) string {
	if limit <= 0 {
		limit = DefaultOptionLimit
	}
	if len(values) > limit {
		values = values[:limit]
	}
	return strings.Join(values, ", ")
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func companyName(m *entity.SmartDataMapping) string {
	if name := orEmpty(m).PrimaryData.Get("company_name"); name != "" {
		return name
	}
	return "the startup"
}

var emptyMapping = &entity.SmartDataMapping{}

func orEmpty(m *entity.SmartDataMapping) *entity.SmartDataMapping {
	if m == nil {
		return emptyMapping
	}
	return m
}
