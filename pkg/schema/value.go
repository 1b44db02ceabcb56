package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind enumerates the shapes a normalized Value can take.
type Kind string

const (
	KindAbsent     Kind = "absent"
	KindString     Kind = "string"
	KindStringList Kind = "string-list"
	KindBool       Kind = "boolean"
	KindInt        Kind = "integer"
	KindDuration   Kind = "duration"
	KindSecret     Kind = "secret"
)

// Value is the tagged union holding one field's normalized content. The zero
// Value is absent.
type Value struct {
	kind Kind
	str  string
	list []string
	b    bool
	i    int64
	d    time.Duration
}

// Values maps field ids to their normalized content. A missing key means the
// field is absent.
type Values map[string]Value

// Absent returns the empty Value.
func Absent() Value { return Value{} }

// String wraps a plain string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// StringList wraps an ordered list of strings.
func StringList(items ...string) Value {
	return Value{kind: KindStringList, list: items}
}

// Bool wraps a boolean.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int wraps a signed integer.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Duration wraps a parsed interval.
func Duration(d time.Duration) Value { return Value{kind: KindDuration, d: d} }

// Secret wraps a string that must never surface in list views or logs.
func Secret(s string) Value { return Value{kind: KindSecret, str: s} }

// Kind reports which member of the union is set.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindAbsent
	}
	return v.kind
}

// IsAbsent reports whether the value carries no content.
func (v Value) IsAbsent() bool { return v.Kind() == KindAbsent }

// AsString returns the string content for string and secret values.
func (v Value) AsString() (string, bool) {
	if v.kind == KindString || v.kind == KindSecret {
		return v.str, true
	}
	return "", false
}

// AsStringList returns the list content.
func (v Value) AsStringList() ([]string, bool) {
	if v.kind == KindStringList {
		return v.list, true
	}
	return nil, false
}

// AsBool returns the boolean content.
func (v Value) AsBool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

// AsInt returns the integer content.
func (v Value) AsInt() (int64, bool) {
	if v.kind == KindInt {
		return v.i, true
	}
	return 0, false
}

// AsDuration returns the interval content.
func (v Value) AsDuration() (time.Duration, bool) {
	if v.kind == KindDuration {
		return v.d, true
	}
	return 0, false
}

// Equal reports deep equality. It exists so go-cmp can compare Values without
// reaching into unexported fields.
func (v Value) Equal(other Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindStringList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != other.list[i] {
				return false
			}
		}
		return true
	default:
		return v.str == other.str && v.b == other.b && v.i == other.i && v.d == other.d
	}
}

// MatchesAny reports whether the value's canonical text form equals one of
// the candidates. List values match when any element does; absent values
// never match. Display conditions are evaluated with this comparison.
func (v Value) MatchesAny(candidates []string) bool {
	if v.IsAbsent() || len(candidates) == 0 {
		return false
	}
	if v.kind == KindStringList {
		for _, item := range v.list {
			for _, want := range candidates {
				if item == want {
					return true
				}
			}
		}
		return false
	}
	text := v.Text()
	for _, want := range candidates {
		if text == want {
			return true
		}
	}
	return false
}

// Text renders the canonical string form used for comparisons and exports.
// List values join with commas; absent values render empty.
func (v Value) Text() string {
	switch v.Kind() {
	case KindString, KindSecret:
		return v.str
	case KindStringList:
		return strings.Join(v.list, ",")
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindDuration:
		return FormatDuration(v.d)
	default:
		return ""
	}
}

// MarshalJSON renders the natural JSON shape per kind: strings and durations
// as strings, lists as arrays, booleans and integers as themselves, absent as
// null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind() {
	case KindString, KindSecret:
		return json.Marshal(v.str)
	case KindStringList:
		if v.list == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.list)
	case KindBool:
		return json.Marshal(v.b)
	case KindInt:
		return json.Marshal(v.i)
	case KindDuration:
		return json.Marshal(FormatDuration(v.d))
	default:
		return []byte("null"), nil
	}
}

var durationUnits = []struct {
	suffix string
	unit   time.Duration
}{
	{"ms", time.Millisecond},
	{"s", time.Second},
	{"m", time.Minute},
	{"h", time.Hour},
	{"d", 24 * time.Hour},
}

// ParseDuration parses a magnitude+unit interval such as "30d", "1m" or
// "500ms". Supported units are ms, s, m, h and d.
func ParseDuration(raw string) (time.Duration, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("schema: empty duration")
	}
	for _, u := range durationUnits {
		digits, found := strings.CutSuffix(trimmed, u.suffix)
		if !found {
			continue
		}
		// "1ms" must not parse as "1m" + stray "s"; ms is listed first so
		// the longest suffix wins.
		magnitude, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			break
		}
		if magnitude > uint64(math.MaxInt64/int64(u.unit)) {
			break
		}
		return time.Duration(magnitude) * u.unit, nil
	}
	return 0, fmt.Errorf("schema: invalid duration %q (expected <number><ms|s|m|h|d>)", raw)
}

// FormatDuration renders a duration using the largest unit that divides it
// exactly, matching the format ParseDuration accepts.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	for i := len(durationUnits) - 1; i >= 0; i-- {
		u := durationUnits[i]
		if d%u.unit == 0 {
			return strconv.FormatInt(int64(d/u.unit), 10) + u.suffix
		}
	}
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
