package entity

import "strings"

type FormType string

const (
	FormTypeTypeform FormType = "typeform"
	FormTypeGoogle   FormType = "google"
	FormTypeAirtable FormType = "airtable"
	FormTypeContact  FormType = "contact"
	FormTypeGeneric  FormType = "generic"
)

// AllFormTypes returns every known form type in dispatch priority order.
func AllFormTypes() []FormType {
	return []FormType{
		FormTypeTypeform,
		FormTypeGoogle,
		FormTypeAirtable,
		FormTypeContact,
		FormTypeGeneric,
	}
}

// ParseFormType maps a persisted form_type value to a FormType.
// Unknown or empty values report false so callers can fall back to URL detection.
func ParseFormType(s string) (FormType, bool) {
	candidate := FormType(strings.ToLower(strings.TrimSpace(s)))
	for _, ft := range AllFormTypes() {
		if ft == candidate {
			return ft, true
		}
	}
	return "", false
}

func (f FormType) String() string {
	return string(f)
}
