package entity

type ToolName string

const (
	ToolNavigate     ToolName = "navigate"
	ToolClick        ToolName = "click"
	ToolFill         ToolName = "fill"
	ToolSelectOption ToolName = "select_option"
	ToolScroll       ToolName = "scroll"
	ToolPageText     ToolName = "page_text"
	ToolFormFields   ToolName = "form_fields"
	ToolPressEnter   ToolName = "press_enter"
)

func (t ToolName) String() string {
	return string(t)
}
