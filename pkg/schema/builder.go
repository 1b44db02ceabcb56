package schema

import (
	"errors"
	"fmt"
)

// Defect is a construction-time programming error in a schema declaration:
// duplicate keys or ids, dangling field references, self-referencing or
// cyclic display conditions, secrets surfacing in list views. Defects are
// fatal; Build never returns a registry alongside one.
type Defect struct {
	Schema string
	Field  string
	Reason string
}

func (d *Defect) Error() string {
	switch {
	case d.Schema == "":
		return "schema builder: " + d.Reason
	case d.Field == "":
		return fmt.Sprintf("schema builder: schema %q: %s", d.Schema, d.Reason)
	default:
		return fmt.Sprintf("schema builder: schema %q: field %q: %s", d.Schema, d.Field, d.Reason)
	}
}

// RegistryBuilder is the outermost builder stage. Only opening a schema and
// the terminal Build are available here; field and layout declarations live
// on the inner stages so out-of-order calls do not compile.
type RegistryBuilder struct {
	schemas []*Schema
	seen    map[string]bool
	defects []error
}

// NewBuilder starts an empty registry declaration.
func NewBuilder() *RegistryBuilder {
	return &RegistryBuilder{seen: make(map[string]bool)}
}

// Schema opens a new schema declaration for the given key.
func (b *RegistryBuilder) Schema(key string) *SchemaBuilder {
	if b.seen[key] {
		b.defect(&Defect{Schema: key, Reason: "duplicate schema key"})
	}
	b.seen[key] = true
	return &SchemaBuilder{
		reg: b,
		s:   &Schema{Key: key, index: make(map[string]int)},
	}
}

// Build finalizes the registry. It fails with the accumulated defects when
// any declaration was inconsistent; the partial registry is discarded.
func (b *RegistryBuilder) Build() (*Registry, error) {
	if len(b.defects) > 0 {
		return nil, errors.Join(b.defects...)
	}
	reg := &Registry{schemas: make(map[string]*Schema, len(b.schemas))}
	for _, s := range b.schemas {
		reg.keys = append(reg.keys, s.Key)
		reg.schemas[s.Key] = s
	}
	return reg, nil
}

func (b *RegistryBuilder) defect(d *Defect) { b.defects = append(b.defects, d) }

// SchemaBuilder is the middle builder stage: one schema is open and accepts
// naming metadata, field declarations, and list/section layout. Done closes
// the schema, running the referential checks.
type SchemaBuilder struct {
	reg *RegistryBuilder
	s   *Schema
}

// Names sets the singular and plural display names.
func (sb *SchemaBuilder) Names(singular, plural string) *SchemaBuilder {
	sb.s.Singular = singular
	sb.s.Plural = plural
	return sb
}

// Prefix sets the setting-key prefix records are stored under.
func (sb *SchemaBuilder) Prefix(prefix string) *SchemaBuilder {
	sb.s.KeyPrefix = prefix
	return sb
}

// Suffix sets the setting-key suffix appended after the record id.
func (sb *SchemaBuilder) Suffix(suffix string) *SchemaBuilder {
	sb.s.KeySuffix = suffix
	return sb
}

// ReloadPrefix sets the change-notification grouping prefix.
func (sb *SchemaBuilder) ReloadPrefix(prefix string) *SchemaBuilder {
	sb.s.ReloadPrefix = prefix
	return sb
}

// IDField declares the conventional identifier field: a required, trimmed
// input named "_id", always the first field of its schema.
func (sb *SchemaBuilder) IDField() *FieldBuilder {
	if len(sb.s.fields) > 0 {
		sb.reg.defect(&Defect{Schema: sb.s.Key, Field: IDFieldName, Reason: "id field must be declared first"})
	}
	return sb.Field(IDFieldName).
		Type(TypeInput).
		Transform(Trim).
		Validate(Required)
}

// Field opens a new field declaration. The field's type defaults to input.
func (sb *SchemaBuilder) Field(id string) *FieldBuilder {
	return &FieldBuilder{
		schema: sb,
		f:      Field{ID: id, Type: TypeInput},
	}
}

// ListTitle sets the list-view title.
func (sb *SchemaBuilder) ListTitle(title string) *SchemaBuilder {
	sb.s.List.Title = title
	return sb
}

// ListSubtitle sets the list-view subtitle.
func (sb *SchemaBuilder) ListSubtitle(subtitle string) *SchemaBuilder {
	sb.s.List.Subtitle = subtitle
	return sb
}

// ListFields sets the fields shown in the list-view summary, in order.
func (sb *SchemaBuilder) ListFields(ids ...string) *SchemaBuilder {
	sb.s.List.FieldIDs = ids
	return sb
}

// Apply runs a declaration helper against the open schema, so shared field
// blocks can be reused across schemas.
func (sb *SchemaBuilder) Apply(fn func(*SchemaBuilder) *SchemaBuilder) *SchemaBuilder {
	if fn == nil {
		return sb
	}
	return fn(sb)
}

// Section opens a new form-section declaration with the given title.
func (sb *SchemaBuilder) Section(title string) *SectionBuilder {
	return &SectionBuilder{
		schema: sb,
		sec:    Section{Title: title},
	}
}

// Done closes the schema, verifies every cross-reference, and returns to the
// registry stage.
func (sb *SchemaBuilder) Done() *RegistryBuilder {
	sb.check()
	sb.reg.schemas = append(sb.reg.schemas, sb.s)
	return sb.reg
}

func (sb *SchemaBuilder) check() {
	s := sb.s
	for _, id := range s.List.FieldIDs {
		f, ok := s.Field(id)
		if !ok {
			sb.reg.defect(&Defect{Schema: s.Key, Field: id, Reason: "list view references undeclared field"})
			continue
		}
		if f.IsSecret() {
			sb.reg.defect(&Defect{Schema: s.Key, Field: id, Reason: "secret field may not appear in a list view"})
		}
	}
	for _, sec := range s.Sections {
		for _, id := range sec.FieldIDs {
			if !s.Has(id) {
				sb.reg.defect(&Defect{Schema: s.Key, Field: id, Reason: fmt.Sprintf("section %q references undeclared field", sec.Title)})
			}
		}
		if c := sec.DisplayIf; c != nil && !s.Has(c.Field) {
			sb.reg.defect(&Defect{Schema: s.Key, Field: c.Field, Reason: fmt.Sprintf("section %q condition references undeclared field", sec.Title)})
		}
	}
	for _, f := range s.fields {
		c := f.DisplayIf
		if c == nil {
			continue
		}
		if c.Field == f.ID {
			sb.reg.defect(&Defect{Schema: s.Key, Field: f.ID, Reason: "display condition references its own field"})
			continue
		}
		if !s.Has(c.Field) {
			sb.reg.defect(&Defect{Schema: s.Key, Field: f.ID, Reason: fmt.Sprintf("display condition references undeclared field %q", c.Field)})
		}
	}
	sb.checkAcyclic()
}

// checkAcyclic walks the display-condition graph. Chains are evaluated
// recursively at runtime, so they must not loop.
func (sb *SchemaBuilder) checkAcyclic() {
	s := sb.s
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(s.fields))
	var visit func(id string) bool
	visit = func(id string) bool {
		switch state[id] {
		case visiting:
			return false
		case done:
			return true
		}
		state[id] = visiting
		if f, ok := s.Field(id); ok && f.DisplayIf != nil {
			if !visit(f.DisplayIf.Field) {
				state[id] = done
				return false
			}
		}
		state[id] = done
		return true
	}
	for _, f := range s.fields {
		if f.DisplayIf == nil {
			continue
		}
		if !visit(f.ID) {
			sb.reg.defect(&Defect{Schema: s.Key, Field: f.ID, Reason: "display condition cycle"})
			return
		}
	}
}

// FieldBuilder is the innermost builder stage: one field is open and accepts
// its metadata. Done records the field and returns to the schema stage.
type FieldBuilder struct {
	schema *SchemaBuilder
	f      Field
}

// Label sets the UI label.
func (fb *FieldBuilder) Label(label string) *FieldBuilder {
	fb.f.Label = label
	return fb
}

// Help sets the help text shown next to the control. Inline markup is
// sanitized; plain text passes through untouched.
func (fb *FieldBuilder) Help(help string) *FieldBuilder {
	fb.f.Help = sanitizeHelp(help)
	return fb
}

// Placeholder sets the input placeholder.
func (fb *FieldBuilder) Placeholder(placeholder string) *FieldBuilder {
	fb.f.Placeholder = placeholder
	return fb
}

// Type sets the field's semantic kind.
func (fb *FieldBuilder) Type(t Type) *FieldBuilder {
	fb.f.Type = t
	return fb
}

// Transform appends normalization steps, applied in declaration order before
// validation.
func (fb *FieldBuilder) Transform(ts ...Transformer) *FieldBuilder {
	fb.f.Transformers = append(fb.f.Transformers, ts...)
	return fb
}

// Validate appends validators, applied in declaration order; the first
// failure wins for the field.
func (fb *FieldBuilder) Validate(vs ...Validator) *FieldBuilder {
	fb.f.Validators = append(fb.f.Validators, vs...)
	return fb
}

// Default sets the raw default, used when the field is absent from a
// submission. Defaults run through the same transform and validate chains as
// submitted input.
func (fb *FieldBuilder) Default(values ...string) *FieldBuilder {
	fb.f.Default = values
	return fb
}

// DisplayIfEq makes the field visible only while the referenced sibling
// field holds one of the given values. With no values the call is a no-op,
// which lets shared declaration helpers disable the gate for some schemas.
func (fb *FieldBuilder) DisplayIfEq(field string, values ...string) *FieldBuilder {
	if len(values) == 0 {
		return fb
	}
	fb.f.DisplayIf = &Condition{Field: field, AnyOf: values}
	return fb
}

// Done records the field on the open schema and returns to the schema stage.
func (fb *FieldBuilder) Done() *SchemaBuilder {
	sb := fb.schema
	if sb.s.Has(fb.f.ID) {
		sb.reg.defect(&Defect{Schema: sb.s.Key, Field: fb.f.ID, Reason: "duplicate field id"})
		return sb
	}
	sb.s.index[fb.f.ID] = len(sb.s.fields)
	sb.s.fields = append(sb.s.fields, fb.f)
	return sb
}

// SectionBuilder declares one form section.
type SectionBuilder struct {
	schema *SchemaBuilder
	sec    Section
}

// DisplayIfEq makes the section visible only while the referenced field
// holds one of the given values. With no values the call is a no-op.
func (sb *SectionBuilder) DisplayIfEq(field string, values ...string) *SectionBuilder {
	if len(values) == 0 {
		return sb
	}
	sb.sec.DisplayIf = &Condition{Field: field, AnyOf: values}
	return sb
}

// Fields sets the ordered field ids the section lays out.
func (sb *SectionBuilder) Fields(ids ...string) *SectionBuilder {
	sb.sec.FieldIDs = ids
	return sb
}

// Done records the section and returns to the schema stage.
func (sb *SectionBuilder) Done() *SchemaBuilder {
	sb.schema.s.Sections = append(sb.schema.s.Sections, sb.sec)
	return sb.schema
}
