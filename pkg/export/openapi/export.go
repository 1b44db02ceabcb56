// Package openapi projects a schema registry into an OpenAPI 3 document so
// the admin API can serve the schema model as data to external consumers.
// Each configuration schema becomes a component schema; selects carry their
// option sets as enums, secrets are marked write-only password strings, and
// durations keep the magnitude+unit string format the validation engine
// parses.
package openapi

import (
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/RustWorks/webadmin/pkg/schema"
)

const durationPattern = `^\d+(ms|s|m|h|d)$`

// Document renders the registry as an OpenAPI 3 document.
func Document(reg *schema.Registry) (*openapi3.T, error) {
	if reg == nil {
		return nil, errors.New("openapi export: registry is required")
	}

	components := openapi3.NewComponents()
	components.Schemas = make(openapi3.Schemas, reg.Len())
	for _, key := range reg.Keys() {
		s, _ := reg.Schema(key)
		object, err := objectSchema(s)
		if err != nil {
			return nil, err
		}
		components.Schemas[key] = openapi3.NewSchemaRef("", object)
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "Configuration schemas",
			Version: "1.0.0",
		},
		Paths:      openapi3.NewPaths(),
		Components: &components,
	}, nil
}

func objectSchema(s *schema.Schema) (*openapi3.Schema, error) {
	object := openapi3.NewObjectSchema()
	object.Title = s.Singular
	object.Properties = make(openapi3.Schemas, len(s.Fields()))
	for _, f := range s.Fields() {
		property, err := fieldSchema(f)
		if err != nil {
			return nil, fmt.Errorf("openapi export: schema %q: %w", s.Key, err)
		}
		object.Properties[f.ID] = openapi3.NewSchemaRef("", property)
		// Conditionally shown fields cannot be unconditionally required.
		if f.IsRequired() && f.DisplayIf == nil && len(f.Default) == 0 {
			object.Required = append(object.Required, f.ID)
		}
	}
	return object, nil
}

func fieldSchema(f schema.Field) (*openapi3.Schema, error) {
	var property *openapi3.Schema
	switch f.Type.Kind {
	case schema.TypeKindInput, schema.TypeKindText:
		property = openapi3.NewStringSchema()

	case schema.TypeKindSecret:
		property = openapi3.NewStringSchema()
		property.Format = "password"
		property.WriteOnly = true

	case schema.TypeKindBoolean:
		property = openapi3.NewBoolSchema()
		if len(f.Default) > 0 {
			property.Default = f.Default[0] == "true"
		}

	case schema.TypeKindDuration:
		property = openapi3.NewStringSchema()
		property.Format = "duration"
		property.Pattern = durationPattern

	case schema.TypeKindArray:
		property = openapi3.NewArraySchema()
		property.Items = openapi3.NewSchemaRef("", openapi3.NewStringSchema())

	case schema.TypeKindSelect:
		member := openapi3.NewStringSchema()
		for _, opt := range f.Type.Options {
			member.Enum = append(member.Enum, opt.Value)
		}
		if f.Type.Multi {
			property = openapi3.NewArraySchema()
			property.Items = openapi3.NewSchemaRef("", member)
		} else {
			property = member
		}

	default:
		return nil, fmt.Errorf("field %q: unsupported type %q", f.ID, f.Type.Kind)
	}

	property.Title = f.Label
	property.Description = f.Help
	if property.Default == nil && len(f.Default) > 0 && f.Type.Kind != schema.TypeKindBoolean {
		if f.Type.Kind == schema.TypeKindArray || (f.Type.Kind == schema.TypeKindSelect && f.Type.Multi) {
			property.Default = f.Default
		} else {
			property.Default = f.Default[0]
		}
	}
	return property, nil
}
