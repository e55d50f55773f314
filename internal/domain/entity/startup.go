package entity

// StartupProfile is the raw record returned by get_user_startup_data.
type StartupProfile struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Website              string           `json:"website"`
	Industry             string           `json:"industry"`
	Location             string           `json:"location"`
	IncorporationCountry string           `json:"incorporation_country"`
	LegalStructure       string           `json:"legal_structure"`
	FoundedYear          int              `json:"founded_year"`
	EmployeeCount        int              `json:"employee_count"`
	DescriptionShort     string           `json:"description_short"`
	DescriptionMedium    string           `json:"description_medium"`
	DescriptionLong      string           `json:"description_long"`
	ProblemStatement     string           `json:"problem_statement"`
	ProductDetails       string           `json:"product_details"`
	Traction             string           `json:"traction"`
	KPIs                 string           `json:"kpis"`
	CurrentRevenue       string           `json:"current_revenue"`
	MRR                  float64          `json:"mrr"`
	ARR                  float64          `json:"arr"`
	RevenueModel         string           `json:"revenue_model"`
	MarketSize           string           `json:"market_size"`
	CompetitiveAdvantage string           `json:"competitive_advantage"`
	Competitors          string           `json:"competitors"`
	GoToMarket           string           `json:"go_to_market"`
	FundingRound         string           `json:"funding_round"`
	FundingAmountSought  float64          `json:"funding_amount_sought"`
	PreMoneyValuation    float64          `json:"pre_money_valuation"`
	InvestmentInstrument string           `json:"investment_instrument"`
	PitchDeckURL         string           `json:"pitch_deck_url"`
	IntroVideoURL        string           `json:"intro_video_url"`
	LogoURL              string           `json:"logo_url"`
	Founders             []Founder        `json:"founders"`
	KnowledgeBase        []KnowledgeEntry `json:"knowledge_base"`
}

type Founder struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LinkedIn    string `json:"linkedin"`
	GitHub      string `json:"github_url"`
	PersonalURL string `json:"personal_website_url"`
	Bio         string `json:"bio"`
	Nationality string `json:"nationality"`
}

func (f Founder) FullName() string {
	switch {
	case f.FirstName == "":
		return f.LastName
	case f.LastName == "":
		return f.FirstName
	default:
		return f.FirstName + " " + f.LastName
	}
}

type KnowledgeEntry struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AgentSettings is returned by get_user_agent_settings.
type AgentSettings struct {
	PreferredTone      string `json:"preferred_tone"`
	CustomInstructions string `json:"custom_instructions"`
	PermissionLevel    string `json:"permission_level"`
}

// Target is a fund, accelerator or angel the startup applies to.
type Target struct {
	ID             string  `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	ApplicationURL string  `json:"application_url" db:"application_url"`
	FormType       *string `json:"form_type,omitempty" db:"form_type"`
	Type           string  `json:"type" db:"type"`
}
