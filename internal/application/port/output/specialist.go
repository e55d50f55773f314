package output

import "github.com/babacardot/suparaise-sub001/internal/domain/entity"

// FormSpecialist turns a target and its startup data into an engine instruction.
// Implementations are stateless and safe for concurrent use.
type FormSpecialist interface {
	Type() entity.FormType
	Name() string
	CanHandle(url string) bool
	BuildInstruction(targetURL, targetName string, data *entity.SmartDataMapping) string
	BrowserConfig() entity.BrowserUseConfig
}

type SpecialistRegistry interface {
	Register(specialist FormSpecialist)
	ForURL(url string) (FormSpecialist, error)
	ForFormType(formType, fallbackURL string) (FormSpecialist, error)
	All() []FormSpecialist
	Validate() entity.RegistryValidation
}
