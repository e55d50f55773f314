package smartdata

import "strings"

// OtherOption closes every variation list so a picker always has a fallback.
const OtherOption = "Other"

type synonymSet struct {
	key      string
	synonyms []string
}

// industrySynonyms is ordered so variation lists are stable between runs.
var industrySynonyms = []synonymSet{
	{"fintech", []string{"Financial Services", "Finance", "Payments", "Banking"}},
	{"insurtech", []string{"Insurance", "Financial Services", "Fintech"}},
	{"healthtech", []string{"Healthcare", "Digital Health", "Health", "MedTech"}},
	{"medtech", []string{"Medical Devices", "Healthcare", "Health"}},
	{"biotech", []string{"Life Sciences", "Biotechnology", "Healthcare"}},
	{"edtech", []string{"Education", "E-learning", "EdTech"}},
	{"saas", []string{"Software", "B2B Software", "Enterprise Software", "B2B"}},
	{"ai", []string{"Artificial Intelligence", "Machine Learning", "Deep Tech", "Software"}},
	{"ecommerce", []string{"E-commerce", "Retail", "Consumer", "Marketplace"}},
	{"marketplace", []string{"Marketplaces", "E-commerce", "Consumer"}},
	{"climate", []string{"Climate Tech", "CleanTech", "Sustainability", "Energy"}},
	{"cleantech", []string{"Climate Tech", "Energy", "Sustainability"}},
	{"energy", []string{"Energy", "CleanTech", "Climate Tech"}},
	{"agritech", []string{"Agriculture", "AgTech", "Food"}},
	{"foodtech", []string{"Food", "Food & Beverage", "Consumer"}},
	{"proptech", []string{"Real Estate", "Construction", "PropTech"}},
	{"logistics", []string{"Supply Chain", "Transportation", "Mobility"}},
	{"mobility", []string{"Transportation", "Automotive", "Logistics"}},
	{"crypto", []string{"Blockchain", "Web3", "Crypto", "Fintech"}},
	{"web3", []string{"Blockchain", "Crypto", "Web3"}},
	{"blockchain", []string{"Web3", "Crypto", "Fintech"}},
	{"cybersecurity", []string{"Security", "Infrastructure", "Enterprise Software"}},
	{"security", []string{"Cybersecurity", "Infrastructure"}},
	{"hrtech", []string{"HR Tech", "Human Resources", "Future of Work"}},
	{"legaltech", []string{"Legal", "Enterprise Software"}},
	{"gaming", []string{"Games", "Entertainment", "Media"}},
	{"media", []string{"Media", "Entertainment", "Content"}},
	{"devtools", []string{"Developer Tools", "Infrastructure", "Software"}},
	{"hardware", []string{"Hardware", "Deep Tech", "IoT"}},
	{"robotics", []string{"Robotics", "Hardware", "Deep Tech"}},
}

type country struct {
	Name    string
	Alpha2  string
	Alpha3  string
	Region  string
	Aliases []string
	Cities  []string
}

var countries = []country{
	{"United States", "US", "USA", "North America", []string{"United States of America", "America", "U.S."}, []string{"San Francisco", "New York", "Boston", "Austin", "Los Angeles", "Seattle", "Miami", "Delaware"}},
	{"Canada", "CA", "CAN", "North America", nil, []string{"Toronto", "Montreal", "Vancouver"}},
	{"Mexico", "MX", "MEX", "Latin America", nil, []string{"Mexico City"}},
	{"Brazil", "BR", "BRA", "Latin America", []string{"Brasil"}, []string{"Sao Paulo", "São Paulo"}},
	{"United Kingdom", "GB", "GBR", "Europe", []string{"UK", "Great Britain", "England"}, []string{"London", "Manchester", "Edinburgh"}},
	{"France", "FR", "FRA", "Europe", nil, []string{"Paris", "Lyon"}},
	{"Germany", "DE", "DEU", "Europe", []string{"Deutschland"}, []string{"Berlin", "Munich"}},
	{"Netherlands", "NL", "NLD", "Europe", []string{"The Netherlands", "Holland"}, []string{"Amsterdam"}},
	{"Spain", "ES", "ESP", "Europe", nil, []string{"Madrid", "Barcelona"}},
	{"Italy", "IT", "ITA", "Europe", nil, []string{"Milan", "Rome"}},
	{"Sweden", "SE", "SWE", "Europe", nil, []string{"Stockholm"}},
	{"Switzerland", "CH", "CHE", "Europe", nil, []string{"Zurich", "Geneva"}},
	{"Ireland", "IE", "IRL", "Europe", nil, []string{"Dublin"}},
	{"Estonia", "EE", "EST", "Europe", nil, []string{"Tallinn"}},
	{"Israel", "IL", "ISR", "Middle East", nil, []string{"Tel Aviv"}},
	{"United Arab Emirates", "AE", "ARE", "Middle East", []string{"UAE"}, []string{"Dubai", "Abu Dhabi"}},
	{"Senegal", "SN", "SEN", "Africa", []string{"Sénégal"}, []string{"Dakar"}},
	{"Nigeria", "NG", "NGA", "Africa", nil, []string{"Lagos", "Abuja"}},
	{"Ghana", "GH", "GHA", "Africa", nil, []string{"Accra"}},
	{"Kenya", "KE", "KEN", "Africa", nil, []string{"Nairobi"}},
	{"South Africa", "ZA", "ZAF", "Africa", nil, []string{"Cape Town", "Johannesburg"}},
	{"Côte d'Ivoire", "CI", "CIV", "Africa", []string{"Ivory Coast", "Cote d'Ivoire"}, []string{"Abidjan"}},
	{"Morocco", "MA", "MAR", "Africa", []string{"Maroc"}, []string{"Casablanca"}},
	{"Egypt", "EG", "EGY", "Africa", nil, []string{"Cairo"}},
	{"India", "IN", "IND", "Asia", nil, []string{"Bangalore", "Bengaluru", "Mumbai", "Delhi"}},
	{"Singapore", "SG", "SGP", "Asia", nil, nil},
	{"Japan", "JP", "JPN", "Asia", nil, []string{"Tokyo"}},
	{"Australia", "AU", "AUS", "Oceania", nil, []string{"Sydney", "Melbourne"}},
}

// IndustryVariations returns the raw industry followed by known synonyms,
// deduplicated case-insensitively, with OtherOption last.
func IndustryVariations(industry string) []string {
	out := newOrderedSet()

	for _, part := range splitList(industry) {
		out.add(part)
		key := normalizeKey(part)
		for _, set := range industrySynonyms {
			if key == set.key || len(set.key) > 3 && strings.Contains(key, set.key) {
				out.add(set.synonyms...)
			}
		}
	}

	return out.withOther()
}

// LocationVariations returns the raw location, then country name, aliases,
// ISO codes and region for every recognized country, with OtherOption last.
func LocationVariations(location string, more ...string) []string {
	out := newOrderedSet()

	inputs := append([]string{location}, more...)
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		out.add(in)
		for _, part := range splitList(in) {
			out.add(part)
			if c, ok := lookupCountry(part); ok {
				out.add(c.Name)
				out.add(c.Aliases...)
				out.add(c.Alpha2, c.Alpha3, c.Region)
			}
		}
	}

	return out.withOther()
}

// lookupCountry resolves a country name, alias, ISO code or known city.
// Comma separated input is tried part by part from the end.
func lookupCountry(s string) (country, bool) {
	parts := splitList(s)
	for i := len(parts) - 1; i >= 0; i-- {
		needle := strings.ToLower(parts[i])
		for _, c := range countries {
			if matchesCountry(c, needle) {
				return c, true
			}
		}
	}
	return country{}, false
}

func matchesCountry(c country, needle string) bool {
	if strings.EqualFold(c.Name, needle) || strings.EqualFold(c.Alpha2, needle) || strings.EqualFold(c.Alpha3, needle) {
		return true
	}
	for _, a := range c.Aliases {
		if strings.EqualFold(a, needle) {
			return true
		}
	}
	for _, city := range c.Cities {
		if strings.EqualFold(city, needle) {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '/' || r == ';' || r == '|'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func normalizeKey(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' || r == '.' {
			return -1
		}
		return r
	}, strings.ToLower(s))
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		key := strings.ToLower(v)
		if v == "" || key == strings.ToLower(OtherOption) {
			continue
		}
		if _, dup := s.seen[key]; dup {
			continue
		}
		s.seen[key] = struct{}{}
		s.items = append(s.items, v)
	}
}

func (s *orderedSet) withOther() []string {
	return append(s.items, OtherOption)
}
