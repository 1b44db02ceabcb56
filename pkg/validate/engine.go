// Package validate normalizes and checks submitted records against a schema.
// Each submitted field runs through its transformer chain, then its validator
// chain, then coercion into the field's declared value kind; failures are
// collected per field and reported together. Fields the visibility engine
// currently hides are skipped entirely, required or not.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RustWorks/webadmin/pkg/schema"
	"github.com/RustWorks/webadmin/pkg/visibility"
)

// RawValues is a submission as it arrives from form encoding: field id to
// one or more raw string elements.
type RawValues map[string][]string

// Validate checks raw against the named schema, overlaying stored values for
// partial-update semantics. On success it returns the normalized value set
// covering every field the submission (or a default) supplied; otherwise it
// returns Errors listing each failing field, or a SchemaNotFoundError.
func Validate(reg *schema.Registry, key string, raw RawValues, stored schema.Values) (schema.Values, error) {
	s, ok := reg.Schema(key)
	if !ok {
		return nil, &SchemaNotFoundError{Key: key}
	}

	current := overlay(s, raw, stored)
	visible := visibility.Fields(s, current)

	var errs Errors
	out := make(schema.Values)
	for _, f := range s.Fields() {
		if !visible[f.ID] {
			continue
		}
		elements, submitted := raw[f.ID]
		if !submitted {
			if _, ok := stored[f.ID]; ok {
				// Partial update; the stored value stands.
				continue
			}
			switch {
			case len(f.Default) > 0:
				elements = f.Default
			case f.IsRequired():
				elements = nil // runValidators reports the missing value
			default:
				continue
			}
		}
		elements = transformed(f, elements)
		if ferr := runValidators(f, elements); ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		value, ferr := coerce(f, elements)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		if !value.IsAbsent() {
			out[f.ID] = value
		}
	}

	errs = append(errs, unknownFields(s, raw)...)
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

// unknownFields reports submitted ids the schema does not declare. Stale or
// mistyped forms surface as errors instead of silently losing data.
func unknownFields(s *schema.Schema, raw RawValues) Errors {
	var ids []string
	for id := range raw {
		if !s.Has(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	var errs Errors
	for _, id := range ids {
		errs = append(errs, FieldError{
			Field:   id,
			Rule:    schema.RuleUnknownField,
			Message: fmt.Sprintf("schema %q has no field %q", s.Key, id),
		})
	}
	return errs
}

// overlay builds the combined record state visibility is evaluated against:
// stored values, overlaid with best-effort normalizations of the submission,
// backfilled with declared defaults. Coercion failures here are ignored; the
// per-field pass reports them.
func overlay(s *schema.Schema, raw RawValues, stored schema.Values) schema.Values {
	current := make(schema.Values, len(stored)+len(raw))
	for id, v := range stored {
		current[id] = v
	}
	for id, elements := range raw {
		f, ok := s.Field(id)
		if !ok {
			continue
		}
		elements = transformed(f, elements)
		if v, ferr := coerce(f, elements); ferr == nil && !v.IsAbsent() {
			current[id] = v
		} else if el, err := firstNonEmpty(elements); err == nil {
			current[id] = schema.String(el)
		}
	}
	for _, f := range s.Fields() {
		if _, ok := current[f.ID]; ok || len(f.Default) == 0 {
			continue
		}
		if v, ferr := coerce(f, transformed(f, f.Default)); ferr == nil && !v.IsAbsent() {
			current[f.ID] = v
		}
	}
	return current
}

func transformed(f schema.Field, elements []string) []string {
	if len(f.Transformers) == 0 || len(elements) == 0 {
		return elements
	}
	out := make([]string, len(elements))
	copy(out, elements)
	for _, t := range f.Transformers {
		for i, el := range out {
			out[i] = t.Apply(el)
		}
	}
	return out
}

// coerce folds the validated elements into the field's declared value kind.
// Membership and parse failures count as validation errors.
func coerce(f schema.Field, elements []string) (schema.Value, *FieldError) {
	switch f.Type.Kind {
	case schema.TypeKindInput, schema.TypeKindText:
		el, err := firstNonEmpty(elements)
		if err != nil {
			return schema.Absent(), nil
		}
		return schema.String(el), nil

	case schema.TypeKindSecret:
		el, err := firstNonEmpty(elements)
		if err != nil {
			return schema.Absent(), nil
		}
		return schema.Secret(el), nil

	case schema.TypeKindBoolean:
		el, err := firstNonEmpty(elements)
		if err != nil {
			return schema.Absent(), nil
		}
		b, ok := parseBool(el)
		if !ok {
			return schema.Absent(), &FieldError{
				Field:   f.ID,
				Rule:    schema.RuleBoolean,
				Message: fmt.Sprintf("%q is not a boolean", el),
			}
		}
		return schema.Bool(b), nil

	case schema.TypeKindDuration:
		el, err := firstNonEmpty(elements)
		if err != nil {
			return schema.Absent(), nil
		}
		d, err := schema.ParseDuration(el)
		if err != nil {
			return schema.Absent(), &FieldError{
				Field:   f.ID,
				Rule:    schema.RuleDuration,
				Message: fmt.Sprintf("%q is not a valid duration", el),
			}
		}
		return schema.Duration(d), nil

	case schema.TypeKindArray:
		items := nonEmpty(elements)
		if len(items) == 0 {
			return schema.Absent(), nil
		}
		return schema.StringList(items...), nil

	case schema.TypeKindSelect:
		items := nonEmpty(elements)
		if len(items) == 0 {
			return schema.Absent(), nil
		}
		if !f.Type.Multi {
			items = items[:1]
		}
		for _, item := range items {
			if !f.Type.HasOption(item) {
				return schema.Absent(), &FieldError{
					Field:   f.ID,
					Rule:    schema.RuleOption,
					Message: fmt.Sprintf("%q is not one of the allowed options", item),
				}
			}
		}
		if f.Type.Multi {
			return schema.StringList(dedupe(items)...), nil
		}
		return schema.String(items[0]), nil

	default:
		el, err := firstNonEmpty(elements)
		if err != nil {
			return schema.Absent(), nil
		}
		return schema.String(el), nil
	}
}

// dedupe drops repeated elements, keeping first-occurrence order. A
// multi-select normalizes to a subset of the option set, never a bag.
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0:0]
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func nonEmpty(elements []string) []string {
	var out []string
	for _, el := range elements {
		if el != "" {
			out = append(out, el)
		}
	}
	return out
}

// parseBool accepts strconv forms plus the "on"/"off" pair checkboxes
// submit.
func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "1", "t", "true", "on", "yes":
		return true, true
	case "0", "f", "false", "off", "no":
		return false, true
	default:
		return false, false
	}
}
