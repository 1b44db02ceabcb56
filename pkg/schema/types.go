package schema

import "strings"

// IDFieldName is the conventional identifier field id, always declared first
// in schemas that manage named records.
const IDFieldName = "_id"

// Transformer is a pure input-normalization step applied to each raw element
// before validation. Transformers never fail and are idempotent.
type Transformer string

const (
	Trim      Transformer = "trim"
	Lowercase Transformer = "lowercase"
	Uppercase Transformer = "uppercase"
)

// Apply runs the transformer over one raw element.
func (t Transformer) Apply(raw string) string {
	switch t {
	case Trim:
		return strings.TrimSpace(raw)
	case Lowercase:
		return strings.ToLower(raw)
	case Uppercase:
		return strings.ToUpper(raw)
	default:
		return raw
	}
}

// Rule identifies why a validator rejected a value. The same codes surface in
// validation errors reported back to the client.
type Rule string

const (
	RuleRequired     Rule = "required"
	RuleURL          Rule = "url"
	RuleEmail        Rule = "email"
	RulePort         Rule = "port"
	RuleIPOrMask     Rule = "ip-or-mask"
	RuleDomain       Rule = "domain"
	RuleBoolean      Rule = "boolean"
	RuleDuration     Rule = "duration"
	RuleOption       Rule = "option"
	RuleUnknownField Rule = "unknown-field"
	RuleCustom       Rule = "custom"
)

// CheckFunc rejects a transformed, non-empty raw element with a reason.
type CheckFunc func(value string) error

// Validator is one pass/fail rule in a field's validation chain. Built-in
// rules are matched by code in the validation engine; Check is set only for
// custom validators.
type Validator struct {
	Rule  Rule
	Check CheckFunc
}

// Built-in validators, referenced by fields the way the validation engine
// understands them. Required fails only on empty or absent post-transform
// values; the remaining rules skip empty input and run per element.
var (
	Required   = Validator{Rule: RuleRequired}
	IsURL      = Validator{Rule: RuleURL}
	IsEmail    = Validator{Rule: RuleEmail}
	IsPort     = Validator{Rule: RulePort}
	IsIPOrMask = Validator{Rule: RuleIPOrMask}
	IsDomain   = Validator{Rule: RuleDomain}
)

// Custom wraps a caller-supplied check into a validator reported under the
// custom rule code.
func Custom(check CheckFunc) Validator {
	return Validator{Rule: RuleCustom, Check: check}
}

// TypeKind enumerates the semantic kinds a field can declare.
type TypeKind string

const (
	TypeKindInput    TypeKind = "input"
	TypeKindSecret   TypeKind = "secret"
	TypeKindText     TypeKind = "text"
	TypeKindBoolean  TypeKind = "boolean"
	TypeKindDuration TypeKind = "duration"
	TypeKindArray    TypeKind = "array"
	TypeKindSelect   TypeKind = "select"
)

// Option is one selectable (value, display label) pair.
type Option struct {
	Value string
	Label string
}

// Type declares a field's semantic kind plus kind-specific configuration.
// Options and Multi are meaningful for selects only. It is declarative data;
// coercion behaviour lives in the validation engine.
type Type struct {
	Kind    TypeKind
	Options []Option
	Multi   bool
}

var (
	TypeInput    = Type{Kind: TypeKindInput}
	TypeSecret   = Type{Kind: TypeKindSecret}
	TypeText     = Type{Kind: TypeKindText}
	TypeBoolean  = Type{Kind: TypeKindBoolean}
	TypeDuration = Type{Kind: TypeKindDuration}
	TypeArray    = Type{Kind: TypeKindArray}
)

// SelectOne declares a single-choice select over the given options.
func SelectOne(options ...Option) Type {
	return Type{Kind: TypeKindSelect, Options: options}
}

// SelectMany declares a multi-choice select over the given options.
func SelectMany(options ...Option) Type {
	return Type{Kind: TypeKindSelect, Options: options, Multi: true}
}

// HasOption reports whether value is a member of the declared option set.
func (t Type) HasOption(value string) bool {
	for _, opt := range t.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Condition gates the visibility of a field or section on a sibling field's
// current value: visible iff the referenced field currently holds one of the
// allowed values.
type Condition struct {
	Field string
	AnyOf []string
}

// Field is the immutable metadata for one piece of configuration data.
type Field struct {
	ID           string
	Label        string
	Help         string
	Placeholder  string
	Type         Type
	Transformers []Transformer
	Validators   []Validator
	Default      []string
	DisplayIf    *Condition
}

// IsRequired reports whether the validator chain contains the required rule.
func (f Field) IsRequired() bool {
	for _, v := range f.Validators {
		if v.Rule == RuleRequired {
			return true
		}
	}
	return false
}

// IsSecret reports whether the field is secret-typed.
func (f Field) IsSecret() bool { return f.Type.Kind == TypeKindSecret }

// Section is a named, conditionally visible group of fields for the editing
// UI layout.
type Section struct {
	Title     string
	DisplayIf *Condition
	FieldIDs  []string
}

// ListView configures the summary projection used by tabular listings.
// Secret fields may not appear here; the builder rejects them.
type ListView struct {
	Title    string
	Subtitle string
	FieldIDs []string
}
