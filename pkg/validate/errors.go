package validate

import (
	"fmt"
	"strings"

	"github.com/RustWorks/webadmin/pkg/schema"
)

// SchemaNotFoundError reports a schema key the registry does not know.
type SchemaNotFoundError struct {
	Key string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("validate: unknown schema %q", e.Key)
}

// FieldError is one per-field validation failure, carrying the rule code the
// client needs to render the message next to the offending control.
type FieldError struct {
	Field   string
	Rule    schema.Rule
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// Errors collects every field failure from one submission. Validation never
// short-circuits across fields, so clients receive the full set at once.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validate: " + strings.Join(msgs, "; ")
}

// ByField returns the first error recorded for the given field id.
func (e Errors) ByField(id string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == id {
			return fe, true
		}
	}
	return FieldError{}, false
}
