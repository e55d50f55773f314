package output

import (
	"context"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

type BrowserPort interface {
	Navigate(ctx context.Context, url string) error
	SetViewport(ctx context.Context, width, height int) error
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, text string) error
	SelectOption(ctx context.Context, selector, option string) error
	PressEnter(ctx context.Context) error
	Scroll(ctx context.Context, direction string) error

	GetPageContent(ctx context.Context) (*entity.PageContent, error)
	GetFormFields(ctx context.Context) ([]entity.UIElement, error)
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	CurrentURL() string
	Close()
}
