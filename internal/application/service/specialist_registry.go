package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

// ErrNoSpecialist means the registry was built without a catch-all specialist.
var ErrNoSpecialist = errors.New("no suitable specialist found")

var _ output.SpecialistRegistry = (*SpecialistRegistryImpl)(nil)

// SpecialistRegistryImpl dispatches in registration order. The first
// specialist whose CanHandle accepts a URL wins.
type SpecialistRegistryImpl struct {
	mu          sync.RWMutex
	specialists []output.FormSpecialist
}

func NewSpecialistRegistry(specialists ...output.FormSpecialist) *SpecialistRegistryImpl {
	r := &SpecialistRegistryImpl{}
	for _, s := range specialists {
		r.Register(s)
	}
	return r
}

// Register ignores a specialist whose type is already present.
func (r *SpecialistRegistryImpl) Register(specialist output.FormSpecialist) {
	if specialist == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.specialists {
		if s.Type() == specialist.Type() {
			return
		}
	}
	r.specialists = append(r.specialists, specialist)
}

func (r *SpecialistRegistryImpl) ForURL(url string) (output.FormSpecialist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.specialists {
		if s.CanHandle(url) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("url %q: %w", url, ErrNoSpecialist)
}

// ForFormType prefers a persisted classification over URL detection.
// Unknown form types fall back to fallbackURL, then to the generic specialist.
func (r *SpecialistRegistryImpl) ForFormType(formType, fallbackURL string) (output.FormSpecialist, error) {
	if ft, ok := entity.ParseFormType(formType); ok {
		if s, found := r.byType(ft); found {
			return s, nil
		}
	}

	if fallbackURL != "" {
		if s, err := r.ForURL(fallbackURL); err == nil {
			return s, nil
		}
	}

	if s, found := r.byType(entity.FormTypeGeneric); found {
		return s, nil
	}
	return nil, fmt.Errorf("form type %q: %w", formType, ErrNoSpecialist)
}

func (r *SpecialistRegistryImpl) All() []output.FormSpecialist {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]output.FormSpecialist, len(r.specialists))
	copy(result, r.specialists)
	return result
}

// Validate checks the registry wiring: every known type present once and
// the generic fallback registered last.
func (r *SpecialistRegistryImpl) Validate() entity.RegistryValidation {
	all := r.All()
	issues := []string{}

	seen := make(map[entity.FormType]int, len(all))
	for _, s := range all {
		seen[s.Type()]++
	}

	for _, ft := range entity.AllFormTypes() {
		if seen[ft] == 0 {
			issues = append(issues, fmt.Sprintf("missing specialist for form type %q", ft))
		}
	}
	for ft, n := range seen {
		if n > 1 {
			issues = append(issues, fmt.Sprintf("duplicate specialist for form type %q", ft))
		}
	}
	if len(all) > 0 && all[len(all)-1].Type() != entity.FormTypeGeneric {
		issues = append(issues, fmt.Sprintf("generic specialist must be registered last, got %q", all[len(all)-1].Type()))
	}

	return entity.RegistryValidation{
		IsValid: len(issues) == 0,
		Issues:  issues,
	}
}

func (r *SpecialistRegistryImpl) byType(ft entity.FormType) (output.FormSpecialist, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.specialists {
		if s.Type() == ft {
			return s, true
		}
	}
	return nil, false
}
