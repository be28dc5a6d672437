package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexKind tags the shape of a semi-structured profile field.
type FlexKind int

const (
	// FlexEmpty means the field is absent or could not be decoded.
	FlexEmpty FlexKind = iota
	// FlexFlat means the field is a flat list of strings.
	FlexFlat
	// FlexStructured means the field is a list of sub-records with named fields.
	FlexStructured
)

// FlexRecord is one structured sub-record (e.g. a single project or job).
type FlexRecord map[string]string

// FlexField models profile fields that arrive either as a flat list of
// strings (skills, tools) or as a list of structured sub-records
// (work history, projects). Decoding is defensive: malformed payloads
// degrade to an empty field instead of failing the whole record.
type FlexField struct {
	kind    FlexKind
	flat    []string
	records []FlexRecord
}

// NewFlatField creates a flat-list field.
func NewFlatField(items []string) FlexField {
	if len(items) == 0 {
		return FlexField{}
	}
	return FlexField{kind: FlexFlat, flat: items}
}

// NewStructuredField creates a structured-list field.
func NewStructuredField(records []FlexRecord) FlexField {
	if len(records) == 0 {
		return FlexField{}
	}
	return FlexField{kind: FlexStructured, records: records}
}

// Kind returns the field shape tag.
func (f FlexField) Kind() FlexKind { return f.kind }

// IsEmpty reports whether the field carries no data.
func (f FlexField) IsEmpty() bool { return f.kind == FlexEmpty }

// Flat returns the flat list (nil unless Kind is FlexFlat).
func (f FlexField) Flat() []string { return f.flat }

// Records returns the structured list (nil unless Kind is FlexStructured).
func (f FlexField) Records() []FlexRecord { return f.records }

// FormatList renders a flat field as a comma-separated string.
// Structured fields render each record's values in no particular field
// order; callers that care about record layout use FormatRecords.
func (f FlexField) FormatList() string {
	switch f.kind {
	case FlexFlat:
		return strings.Join(f.flat, ", ")
	case FlexStructured:
		parts := make([]string, 0, len(f.records))
		for _, r := range f.records {
			for _, v := range r {
				if v != "" {
					parts = append(parts, v)
				}
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// FormatRecords renders a structured field by extracting the named fields
// from each record ("field1 - field2"), joining records with "; ".
// Empty extracted values are skipped; records with no values are dropped.
func (f FlexField) FormatRecords(fields ...string) string {
	if f.kind != FlexStructured {
		return ""
	}
	items := make([]string, 0, len(f.records))
	for _, r := range f.records {
		parts := make([]string, 0, len(fields))
		for _, name := range fields {
			if v := strings.TrimSpace(r[name]); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			items = append(items, strings.Join(parts, " - "))
		}
	}
	return strings.Join(items, "; ")
}

// MarshalJSON emits null for empty, an array of strings for flat, and an
// array of objects for structured fields.
func (f FlexField) MarshalJSON() ([]byte, error) {
	switch f.kind {
	case FlexFlat:
		return json.Marshal(f.flat)
	case FlexStructured:
		return json.Marshal(f.records)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes any of the shapes seen in stored profiles:
// ["a","b"], [{"name":...},...], or {"manual_list":["a","b"]}.
// Anything else degrades to an empty field, never an error.
func (f *FlexField) UnmarshalJSON(data []byte) error {
	*f = decodeFlex(data)
	return nil
}

// DecodeFlex decodes a raw JSON sub-field into a FlexField.
// Used by the store layer for columns that may hold either shape.
func DecodeFlex(data []byte) FlexField {
	return decodeFlex(data)
}

func decodeFlex(data []byte) FlexField {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return FlexField{}
	}

	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		return NewFlatField(flat)
	}

	var structured []map[string]any
	if err := json.Unmarshal(data, &structured); err == nil {
		records := make([]FlexRecord, 0, len(structured))
		for _, m := range structured {
			rec := make(FlexRecord, len(m))
			for k, v := range m {
				rec[k] = stringifyScalar(v)
			}
			records = append(records, rec)
		}
		return NewStructuredField(records)
	}

	// Legacy object shape: {"manual_list": ["a", "b"]}.
	var wrapper struct {
		ManualList []string `json:"manual_list"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.ManualList) > 0 {
		return NewFlatField(wrapper.ManualList)
	}

	return FlexField{}
}

func stringifyScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; drop the trailing ".0" for ints.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		// Nested arrays/objects are not meaningful as record field text.
		return ""
	}
}
