// Package webadmin exposes the configuration-schema engine behind the admin
// UI: a registry of typed schemas plus the validation and visibility calls
// the HTTP layer invokes per request. The heavy lifting lives in pkg/schema,
// pkg/validate, and pkg/visibility; this package only stitches the common
// entry points together.
package webadmin

import (
	"github.com/RustWorks/webadmin/pkg/catalog"
	"github.com/RustWorks/webadmin/pkg/schema"
	"github.com/RustWorks/webadmin/pkg/validate"
	"github.com/RustWorks/webadmin/pkg/visibility"
)

// RawValues aliases the submission shape accepted by Validate.
type RawValues = validate.RawValues

// BuildRegistry assembles the shipped schema catalog. Call it once during
// startup; the returned registry is read-only and safe to share.
func BuildRegistry() (*schema.Registry, error) {
	return catalog.Build()
}

// Validate normalizes and checks a submitted record against the named
// schema, overlaying previously stored values for partial updates. It
// returns validate.Errors with one entry per failing field, or a
// validate.SchemaNotFoundError for an unknown key.
func Validate(reg *schema.Registry, key string, raw RawValues, stored schema.Values) (schema.Values, error) {
	return validate.Validate(reg, key, raw, stored)
}

// VisibleFields reports which field ids the named schema currently shows for
// the given record state.
func VisibleFields(reg *schema.Registry, key string, values schema.Values) (map[string]bool, error) {
	s, ok := reg.Schema(key)
	if !ok {
		return nil, &validate.SchemaNotFoundError{Key: key}
	}
	return visibility.Fields(s, values), nil
}

// VisibleSections reports which form sections the named schema currently
// shows, in declaration order.
func VisibleSections(reg *schema.Registry, key string, values schema.Values) ([]schema.Section, error) {
	s, ok := reg.Schema(key)
	if !ok {
		return nil, &validate.SchemaNotFoundError{Key: key}
	}
	return visibility.Sections(s, values), nil
}
