package entity

// BrowserUseConfig carries engine tuning knobs. Specialists start from the
// shared baseline and overwrite individual fields.
type BrowserUseConfig struct {
	MaxAgentSteps         int    `json:"max_agent_steps" validate:"min=1,max=200"`
	UseAdblock            bool   `json:"use_adblock"`
	UseProxy              bool   `json:"use_proxy"`
	ProxyCountryCode      string `json:"proxy_country_code" validate:"omitempty,len=2,lowercase"`
	HighlightElements     bool   `json:"highlight_elements"`
	BrowserViewportWidth  int    `json:"browser_viewport_width" validate:"min=320,max=3840"`
	BrowserViewportHeight int    `json:"browser_viewport_height" validate:"min=240,max=2160"`
	EnablePublicShare     bool   `json:"enable_public_share"`
	SaveBrowserData       bool   `json:"save_browser_data"`
	LLMModel              string `json:"llm_model,omitempty"`
}
