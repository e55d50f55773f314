// Package tool exposes browser actions to the local engine's LLM loop.
package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/browser/htmlclean"
)

const maxPageText = 15000

// BrowserTools returns every browser tool in the order they are offered to the model.
func BrowserTools(browser output.BrowserPort, logger output.LoggerPort) []output.ToolPort {
	return []output.ToolPort{
		NewNavigateTool(browser, logger),
		NewFormFieldsTool(browser, logger),
		NewPageTextTool(browser, logger),
		NewFillTool(browser, logger),
		NewSelectOptionTool(browser, logger),
		NewClickTool(browser, logger),
		NewScrollTool(browser, logger),
		NewPressEnterTool(browser, logger),
	}
}

func decodeArgs(args string, v any) error {
	if strings.TrimSpace(args) == "" {
		args = "{}"
	}
	if err := json.Unmarshal([]byte(args), v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func noParams() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": map[string]any{},
		"required":   []string{},
	}
}

func stringParam(description string) map[string]any {
	return map[string]any{
		"type":        "string",
		"description": description,
	}
}

type NavigateTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewNavigateTool(browser output.BrowserPort, logger output.LoggerPort) *NavigateTool {
	return &NavigateTool{browser: browser, logger: logger}
}

func (t *NavigateTool) Name() entity.ToolName { return entity.ToolNavigate }
func (t *NavigateTool) Description() string   { return "Opens a URL in the browser" }
func (t *NavigateTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": stringParam("Absolute http(s) URL"),
		},
		"required": []string{"url"},
	}
}

func (t *NavigateTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		URL string `json:"url"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return "", err
	}
	if err := t.browser.Navigate(ctx, input.URL); err != nil {
		return "", err
	}
	return fmt.Sprintf("Navigated to %s", t.browser.CurrentURL()), nil
}

type ClickTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewClickTool(browser output.BrowserPort, logger output.LoggerPort) *ClickTool {
	return &ClickTool{browser: browser, logger: logger}
}

func (t *ClickTool) Name() entity.ToolName { return entity.ToolClick }
func (t *ClickTool) Description() string {
	return "Clicks an element: buttons, radio options, checkboxes, Next and Submit"
}
func (t *ClickTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"selector": stringParam("CSS selector or XPath starting with /"),
		},
		"required": []string{"selector"},
	}
}

func (t *ClickTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return "", err
	}
	if err := t.browser.Click(ctx, input.Selector); err != nil {
		return "", err
	}
	return fmt.Sprintf("Clicked %s", input.Selector), nil
}

type FillTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewFillTool(browser output.BrowserPort, logger output.LoggerPort) *FillTool {
	return &FillTool{browser: browser, logger: logger}
}

func (t *FillTool) Name() entity.ToolName { return entity.ToolFill }
func (t *FillTool) Description() string   { return "Replaces the value of a text field" }
func (t *FillTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"selector": stringParam("Selector from form_fields"),
			"text":     stringParam("Exact value to type"),
		},
		"required": []string{"selector", "text"},
	}
}

func (t *FillTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
		Text     string `json:"text"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return "", err
	}
	if err := t.browser.Fill(ctx, input.Selector, input.Text); err != nil {
		return "", err
	}
	return fmt.Sprintf("Filled %s (%d characters)", input.Selector, len([]rune(input.Text))), nil
}

type SelectOptionTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewSelectOptionTool(browser output.BrowserPort, logger output.LoggerPort) *SelectOptionTool {
	return &SelectOptionTool{browser: browser, logger: logger}
}

func (t *SelectOptionTool) Name() entity.ToolName { return entity.ToolSelectOption }
func (t *SelectOptionTool) Description() string {
	return "Picks an option of a native <select> by its visible text"
}
func (t *SelectOptionTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"selector": stringParam("Selector of the <select>"),
			"option":   stringParam("Visible option text"),
		},
		"required": []string{"selector", "option"},
	}
}

func (t *SelectOptionTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Selector string `json:"selector"`
		Option   string `json:"option"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return "", err
	}
	if err := t.browser.SelectOption(ctx, input.Selector, input.Option); err != nil {
		return "", err
	}
	return fmt.Sprintf("Selected %q in %s", input.Option, input.Selector), nil
}

type ScrollTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewScrollTool(browser output.BrowserPort, logger output.LoggerPort) *ScrollTool {
	return &ScrollTool{browser: browser, logger: logger}
}

func (t *ScrollTool) Name() entity.ToolName { return entity.ToolScroll }
func (t *ScrollTool) Description() string   { return "Scrolls the page" }
func (t *ScrollTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"direction": map[string]any{
				"type":        "string",
				"enum":        []string{"up", "down", "top", "bottom"},
				"description": "Scroll direction",
			},
		},
		"required": []string{"direction"},
	}
}

func (t *ScrollTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Direction string `json:"direction"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return "", err
	}
	if err := t.browser.Scroll(ctx, input.Direction); err != nil {
		return "", err
	}
	return fmt.Sprintf("Scrolled %s", input.Direction), nil
}

type PageTextTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewPageTextTool(browser output.BrowserPort, logger output.LoggerPort) *PageTextTool {
	return &PageTextTool{browser: browser, logger: logger}
}

func (t *PageTextTool) Name() entity.ToolName { return entity.ToolPageText }
func (t *PageTextTool) Description() string {
	return "Returns the visible text of the page, useful to read questions and confirmation messages"
}
func (t *PageTextTool) Parameters() map[string]any { return noParams() }

func (t *PageTextTool) Execute(ctx context.Context, args string) (string, error) {
	content, err := t.browser.GetPageContent(ctx)
	if err != nil {
		return "", err
	}
	text := htmlclean.Text(content.HTML, maxPageText)
	return fmt.Sprintf("URL: %s\nTitle: %s\n\n%s", content.URL, content.Title, text), nil
}

type FormFieldsTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewFormFieldsTool(browser output.BrowserPort, logger output.LoggerPort) *FormFieldsTool {
	return &FormFieldsTool{browser: browser, logger: logger}
}

func (t *FormFieldsTool) Name() entity.ToolName { return entity.ToolFormFields }
func (t *FormFieldsTool) Description() string {
	return "Lists the fillable fields on the page with labels, options and selectors"
}
func (t *FormFieldsTool) Parameters() map[string]any { return noParams() }

func (t *FormFieldsTool) Execute(ctx context.Context, args string) (string, error) {
	fields, err := t.browser.GetFormFields(ctx)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "No fillable fields found on this page. Use page_text to read it.", nil
	}
	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type PressEnterTool struct {
	browser output.BrowserPort
	logger  output.LoggerPort
}

func NewPressEnterTool(browser output.BrowserPort, logger output.LoggerPort) *PressEnterTool {
	return &PressEnterTool{browser: browser, logger: logger}
}

func (t *PressEnterTool) Name() entity.ToolName      { return entity.ToolPressEnter }
func (t *PressEnterTool) Description() string        { return "Presses Enter in the focused element" }
func (t *PressEnterTool) Parameters() map[string]any { return noParams() }

func (t *PressEnterTool) Execute(ctx context.Context, args string) (string, error) {
	if err := t.browser.PressEnter(ctx); err != nil {
		return "", err
	}
	return "Enter pressed", nil
}
