package stream

import "github.com/gnames/tapadyen/pkg/field"

// Schema returns the JSON schema of cleaned records of the stream.
func (d Descriptor) Schema() map[string]any {
	props := make(map[string]any, len(d.Fields)+1)
	props[IDField] = map[string]any{"type": []string{"integer"}}

	for _, f := range d.Fields {
		typ := []string{f.Rule.Type.String()}
		if f.Rule.Nullable {
			typ = []string{"null", f.Rule.Type.String()}
		}
		prop := map[string]any{"type": typ}
		if f.Rule.Type == field.Datetime {
			prop["format"] = "date-time"
		}
		props[f.Name] = prop
	}

	return map[string]any{
		"type":       []string{"null", "object"},
		"properties": props,
	}
}

// RawSchema returns the schema used when rows are emitted without
// cleaning. Every property is an optional string.
func (d Descriptor) RawSchema() map[string]any {
	props := make(map[string]any, len(d.Fields))
	for _, f := range d.Fields {
		props[f.Column] = map[string]any{"type": []string{"null", "string"}}
	}
	return map[string]any{
		"type":                 []string{"null", "object"},
		"properties":           props,
		"additionalProperties": true,
	}
}
