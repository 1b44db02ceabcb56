// Package visibility evaluates display conditions against a record's current
// values, computing which fields and sections an editing UI should show. The
// validation engine uses the same evaluation to decide which fields a
// submission is accountable for.
package visibility

import (
	"github.com/RustWorks/webadmin/pkg/schema"
)

// Fields returns the set of field ids currently visible given the (possibly
// partial) record state. A field with no display condition is always
// visible. A gated field is visible only while its gating field is itself
// visible and currently holds one of the allowed values; a hidden or absent
// gate hides every dependent.
func Fields(s *schema.Schema, values schema.Values) map[string]bool {
	ev := &evaluation{s: s, values: values, memo: make(map[string]bool, len(s.Fields()))}
	visible := make(map[string]bool, len(s.Fields()))
	for _, f := range s.Fields() {
		if ev.fieldVisible(f.ID) {
			visible[f.ID] = true
		}
	}
	return visible
}

// FieldVisible evaluates a single field id. Unknown ids are not visible.
func FieldVisible(s *schema.Schema, id string, values schema.Values) bool {
	ev := &evaluation{s: s, values: values, memo: make(map[string]bool)}
	return ev.fieldVisible(id)
}

// Sections returns the sections currently visible, in declaration order.
func Sections(s *schema.Schema, values schema.Values) []schema.Section {
	ev := &evaluation{s: s, values: values, memo: make(map[string]bool)}
	var visible []schema.Section
	for _, sec := range s.Sections {
		if ev.conditionHolds(sec.DisplayIf) {
			visible = append(visible, sec)
		}
	}
	return visible
}

// evaluation memoizes per-field results so condition chains are walked once.
// The builder guarantees the condition graph is acyclic, so the recursion
// terminates.
type evaluation struct {
	s      *schema.Schema
	values schema.Values
	memo   map[string]bool
}

func (ev *evaluation) fieldVisible(id string) bool {
	if v, ok := ev.memo[id]; ok {
		return v
	}
	f, ok := ev.s.Field(id)
	if !ok {
		return false
	}
	v := f.DisplayIf == nil || ev.conditionHolds(f.DisplayIf)
	ev.memo[id] = v
	return v
}

func (ev *evaluation) conditionHolds(c *schema.Condition) bool {
	if c == nil {
		return true
	}
	if !ev.fieldVisible(c.Field) {
		return false
	}
	gate, ok := ev.values[c.Field]
	if !ok {
		return false
	}
	return gate.MatchesAny(c.AnyOf)
}
