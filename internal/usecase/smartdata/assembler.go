// Package smartdata flattens a stored startup profile into the mapping that
// form specialists consume.
package smartdata

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

// Build assembles the mapping for one target. The description cascade is
// applied here so specialists can render tiers as-is. plan overrides the
// permission level stored in settings when non-empty.
func Build(profile entity.StartupProfile, settings entity.AgentSettings, target entity.Target, plan string) *entity.SmartDataMapping {
	m := entity.SmartDataMapping{
		PrimaryData:        primaryData(profile),
		IndustryVariations: IndustryVariations(profile.Industry),
		LocationVariations: LocationVariations(profile.Location, profile.IncorporationCountry),
		DescriptionByLength: entity.DescriptionTiers{
			Short:  strings.TrimSpace(profile.DescriptionShort),
			Medium: strings.TrimSpace(profile.DescriptionMedium),
			Long:   strings.TrimSpace(profile.DescriptionLong),
		},
		KnowledgeBaseSection: KnowledgeBaseSection(profile.KnowledgeBase),
		CustomInstructions:   strings.TrimSpace(settings.CustomInstructions),
		PreferredTone:        strings.TrimSpace(settings.PreferredTone),
		TargetType:           strings.TrimSpace(target.Type),
	}

	level := strings.TrimSpace(plan)
	if level == "" {
		level = strings.TrimSpace(settings.PermissionLevel)
	}
	if level != "" {
		m.UserPlan = &entity.UserPlan{PermissionLevel: level}
	}

	if m.DescriptionByLength.Short == "" {
		m.DescriptionByLength.Short = firstSentence(m.DescriptionByLength.Medium, m.DescriptionByLength.Long)
	}

	m = m.WithDescriptionFallback()
	return &m
}

func primaryData(p entity.StartupProfile) entity.PrimaryData {
	var d entity.PrimaryData

	d.Set("company_name", p.Name)
	d.Set("company_website", p.Website)
	d.Set("company_industry", p.Industry)
	d.Set("company_location", p.Location)
	d.Set("incorporation_country", p.IncorporationCountry)
	if c, ok := lookupCountry(p.Location); ok {
		d.Set("company_country", c.Name)
	}
	d.Set("legal_structure", p.LegalStructure)
	d.Set("founded_year", formatInt(p.FoundedYear))
	d.Set("employee_count", formatInt(p.EmployeeCount))
	d.Set("problem_statement", p.ProblemStatement)
	d.Set("product_details", p.ProductDetails)
	d.Set("traction", p.Traction)
	d.Set("kpis", p.KPIs)
	d.Set("current_revenue", p.CurrentRevenue)
	d.Set("mrr", formatUSD(p.MRR))
	d.Set("arr", formatUSD(p.ARR))
	d.Set("revenue_model", p.RevenueModel)
	d.Set("market_size", p.MarketSize)
	d.Set("competitive_advantage", p.CompetitiveAdvantage)
	d.Set("competitors", p.Competitors)
	d.Set("go_to_market", p.GoToMarket)
	d.Set("funding_round", p.FundingRound)
	d.Set("funding_amount_sought", formatUSD(p.FundingAmountSought))
	d.Set("pre_money_valuation", formatUSD(p.PreMoneyValuation))
	d.Set("investment_instrument", p.InvestmentInstrument)
	d.Set("pitch_deck_url", p.PitchDeckURL)
	d.Set("intro_video_url", p.IntroVideoURL)
	d.Set("logo_url", p.LogoURL)

	for i, f := range p.Founders {
		prefix := "lead_founder"
		if i > 0 {
			prefix = fmt.Sprintf("founder_%d", i+1)
		}
		d.Set(prefix+"_name", f.FullName())
		d.Set(prefix+"_first_name", f.FirstName)
		d.Set(prefix+"_last_name", f.LastName)
		d.Set(prefix+"_role", f.Role)
		d.Set(prefix+"_email", f.Email)
		d.Set(prefix+"_phone", f.Phone)
		d.Set(prefix+"_linkedin", f.LinkedIn)
		d.Set(prefix+"_github", f.GitHub)
		d.Set(prefix+"_website", f.PersonalURL)
		d.Set(prefix+"_bio", f.Bio)
		d.Set(prefix+"_nationality", f.Nationality)
	}

	return d
}

// KnowledgeBaseSection renders entries as "- title: content" lines.
// Empty when no entry has content.
func KnowledgeBaseSection(entries []entity.KnowledgeEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		content := strings.TrimSpace(e.Content)
		if content == "" {
			continue
		}
		if title := strings.TrimSpace(e.Title); title != "" {
			lines = append(lines, fmt.Sprintf("- %s: %s", title, content))
		} else {
			lines = append(lines, "- "+content)
		}
	}
	if len(lines) == 0 {
		return ""
	}
	return "KNOWLEDGE BASE:\n" + strings.Join(lines, "\n")
}

func firstSentence(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if i := strings.IndexAny(c, ".!?"); i > 0 {
			return c[:i+1]
		}
		return c
	}
	return ""
}

func formatInt(v int) string {
	if v <= 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// formatUSD renders whole dollars with thousands separators. Zero is treated
// as missing.
func formatUSD(v float64) string {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	digits := strconv.FormatInt(int64(math.Round(v)), 10)

	var sb strings.Builder
	sb.WriteByte('$')
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
