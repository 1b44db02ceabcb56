// Package jsonschema renders one configuration schema as a draft-07 JSON
// Schema document and checks JSON payloads against it. Backends that accept
// records over the admin API can reuse the document for a first structural
// pass before handing the payload to the validation engine.
package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/RustWorks/webadmin/pkg/schema"
)

const draft = "http://json-schema.org/draft-07/schema#"

const durationPattern = `^\d+(ms|s|m|h|d)$`

// Document renders the schema as a draft-07 JSON Schema document.
func Document(s *schema.Schema) ([]byte, error) {
	if s == nil {
		return nil, errors.New("jsonschema export: schema is required")
	}

	properties := make(map[string]any, len(s.Fields()))
	var required []string
	for _, f := range s.Fields() {
		properties[f.ID] = property(f)
		if f.IsRequired() && f.DisplayIf == nil && len(f.Default) == 0 {
			required = append(required, f.ID)
		}
	}

	doc := map[string]any{
		"$schema":              draft,
		"title":                s.Singular,
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("jsonschema export: schema %q: %w", s.Key, err)
	}
	return out, nil
}

func property(f schema.Field) map[string]any {
	p := map[string]any{}
	switch f.Type.Kind {
	case schema.TypeKindBoolean:
		p["type"] = "boolean"
		if len(f.Default) > 0 {
			p["default"] = f.Default[0] == "true"
		}

	case schema.TypeKindDuration:
		p["type"] = "string"
		p["pattern"] = durationPattern

	case schema.TypeKindArray:
		p["type"] = "array"
		p["items"] = map[string]any{"type": "string"}

	case schema.TypeKindSelect:
		values := make([]any, len(f.Type.Options))
		for i, opt := range f.Type.Options {
			values[i] = opt.Value
		}
		if f.Type.Multi {
			p["type"] = "array"
			p["items"] = map[string]any{"enum": values}
			p["uniqueItems"] = true
		} else {
			p["enum"] = values
		}

	default:
		p["type"] = "string"
	}

	if f.Label != "" {
		p["title"] = f.Label
	}
	if f.Help != "" {
		p["description"] = f.Help
	}
	if _, ok := p["default"]; !ok && len(f.Default) > 0 {
		if f.Type.Kind == schema.TypeKindArray || (f.Type.Kind == schema.TypeKindSelect && f.Type.Multi) {
			p["default"] = f.Default
		} else {
			p["default"] = f.Default[0]
		}
	}
	return p
}

// Check validates a JSON payload against an exported document, joining every
// schema violation into one error.
func Check(doc []byte, payload any) error {
	schemaLoader := gojsonschema.NewBytesLoader(doc)
	dataLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("jsonschema export: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var reasons []string
	for _, issue := range result.Errors() {
		reasons = append(reasons, issue.String())
	}
	return fmt.Errorf("jsonschema export: payload invalid: %s", strings.Join(reasons, "; "))
}
