package specialists

import "github.com/babacardot/suparaise-sub001/internal/application/port/output"

// Default returns the built-in specialists in dispatch priority order.
// The generic fallback is always last.
func Default(logger output.LoggerPort) []output.FormSpecialist {
	return []output.FormSpecialist{
		NewTypeform(logger),
		NewGoogleForms(logger),
		NewAirtable(logger),
		NewContactForm(logger),
		NewGeneric(logger),
	}
}
