// Package schema validates inbound smart data documents before they are decoded.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
)

//go:embed smart_data.schema.json
var smartDataSchema string

var smartDataLoader = gojsonschema.NewStringLoader(smartDataSchema)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every schema violation of a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, e := range ve.Errors {
		fmt.Fprintf(&sb, " %d. %s: %s;", i+1, e.Field, e.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

func (ve *ValidationError) Unwrap() error {
	return entity.ErrInvalidSmartData
}

// ValidateSmartData checks raw JSON against the SmartDataMapping schema.
func ValidateSmartData(raw []byte) error {
	result, err := gojsonschema.Validate(smartDataLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrInvalidSmartData, err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

// DecodeSmartData validates raw and decodes it into a mapping.
func DecodeSmartData(raw []byte) (*entity.SmartDataMapping, error) {
	if err := ValidateSmartData(raw); err != nil {
		return nil, err
	}

	var m entity.SmartDataMapping
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidSmartData, err)
	}
	return &m, nil
}
