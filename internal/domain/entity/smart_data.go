package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SmartDataMapping is the normalized view of a startup profile handed to form specialists.
type SmartDataMapping struct {
	PrimaryData          PrimaryData      `json:"primary_data"`
	IndustryVariations   []string         `json:"industry_variations"`
	LocationVariations   []string         `json:"location_variations"`
	DescriptionByLength  DescriptionTiers `json:"description_by_length"`
	KnowledgeBaseSection string           `json:"knowledge_base_section"`
	CustomInstructions   string           `json:"customInstructions,omitempty"`
	PreferredTone        string           `json:"preferredTone,omitempty"`
	TargetType           string           `json:"targetType,omitempty"`
	UserPlan             *UserPlan        `json:"userPlan,omitempty"`
}

type DescriptionTiers struct {
	Short  string `json:"short"`
	Medium string `json:"medium"`
	Long   string `json:"long"`
}

type UserPlan struct {
	PermissionLevel string `json:"permission_level"`
}

// WithDescriptionFallback returns a copy where an empty medium tier takes the short
// text and an empty long tier takes the (possibly cascaded) medium text.
func (m SmartDataMapping) WithDescriptionFallback() SmartDataMapping {
	if strings.TrimSpace(m.DescriptionByLength.Medium) == "" {
		m.DescriptionByLength.Medium = m.DescriptionByLength.Short
	}
	if strings.TrimSpace(m.DescriptionByLength.Long) == "" {
		m.DescriptionByLength.Long = m.DescriptionByLength.Medium
	}
	return m
}

// PermissionLevel is empty when no plan is attached.
func (m *SmartDataMapping) PermissionLevel() string {
	if m == nil || m.UserPlan == nil {
		return ""
	}
	return m.UserPlan.PermissionLevel
}

type DataField struct {
	Key   string
	Value string
}

// PrimaryData is an insertion-ordered set of non-empty startup facts.
type PrimaryData []DataField

// Set trims value and appends or replaces key. Empty values are ignored.
func (p *PrimaryData) Set(key, value string) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return
	}
	for i := range *p {
		if (*p)[i].Key == key {
			(*p)[i].Value = value
			return
		}
	}
	*p = append(*p, DataField{Key: key, Value: value})
}

func (p PrimaryData) Lookup(key string) (string, bool) {
	for _, f := range p {
		if f.Key == key {
			return f.Value, f.Value != ""
		}
	}
	return "", false
}

func (p PrimaryData) Get(key string) string {
	v, _ := p.Lookup(key)
	return v
}

// First returns the value of the first key that is present.
func (p PrimaryData) First(keys ...string) string {
	for _, k := range keys {
		if v, ok := p.Lookup(k); ok {
			return v
		}
	}
	return ""
}

func (p PrimaryData) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, f := range p {
		keys = append(keys, f.Key)
	}
	return keys
}

func (p PrimaryData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps document key order. Non-string scalars are stringified,
// null and blank values are dropped.
func (p *PrimaryData) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("primary_data: %w", err)
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("primary_data: expected object, got %v", tok)
	}

	var fields PrimaryData
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("primary_data: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("primary_data: unexpected key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("primary_data[%s]: %w", key, err)
		}
		fields.Set(key, rawToString(raw))
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("primary_data: %w", err)
	}

	*p = fields
	return nil
}

func rawToString(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return string(trimmed)
	}
	return compact.String()
}
