package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/RustWorks/webadmin/pkg/schema"
)

func testRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := schema.NewBuilder().
		Schema("relay").
		Names("relay", "relays").
		IDField().Label("Relay Id").Done().
		Field("endpoint").
		Transform(schema.Trim).
		Validate(schema.Required, schema.IsURL).
		Done().
		Field("mode").
		Type(schema.SelectOne(
			schema.Option{Value: "direct", Label: "Direct"},
			schema.Option{Value: "proxy", Label: "Proxy"},
		)).
		Validate(schema.Required).
		Default("direct").
		Done().
		Field("proxy-host").
		Transform(schema.Trim).
		Validate(schema.Required, schema.IsIPOrMask).
		DisplayIfEq("mode", "proxy").
		Done().
		Field("timeout").
		Type(schema.TypeDuration).
		Default("30s").
		Done().
		Field("enabled").
		Type(schema.TypeBoolean).
		Default("true").
		Done().
		Field("tags").
		Type(schema.TypeArray).
		Transform(schema.Trim).
		Done().
		Field("regions").
		Type(schema.SelectMany(
			schema.Option{Value: "eu", Label: "Europe"},
			schema.Option{Value: "us", Label: "Americas"},
			schema.Option{Value: "ap", Label: "Asia-Pacific"},
		)).
		Done().
		Section("General").Fields(schema.IDFieldName, "endpoint", "mode", "timeout", "enabled", "tags", "regions").Done().
		Section("Proxy").DisplayIfEq("mode", "proxy").Fields("proxy-host").Done().
		Done().
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return reg
}

func TestValidateNormalizesAndAppliesDefaults(t *testing.T) {
	reg := testRegistry(t)

	got, err := Validate(reg, "relay", RawValues{
		"_id":      {" upstream "},
		"endpoint": {"  https://relay.example.com/submit  "},
		"tags":     {"prod", "", "eu"},
	}, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	want := schema.Values{
		"_id":      schema.String("upstream"),
		"endpoint": schema.String("https://relay.example.com/submit"),
		"mode":     schema.String("direct"),
		"timeout":  schema.Duration(30 * time.Second),
		"enabled":  schema.Bool(true),
		"tags":     schema.StringList("prod", "eu"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalized values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRoundTrip(t *testing.T) {
	reg := testRegistry(t)
	raw := RawValues{
		"_id":      {"upstream"},
		"endpoint": {"https://relay.example.com"},
		"mode":     {"direct"},
		"timeout":  {"1m"},
		"enabled":  {"false"},
	}

	first, err := Validate(reg, "relay", raw, nil)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := Validate(reg, "relay", raw, nil)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validation is not stable (-first +second):\n%s", diff)
	}
}

func TestValidateCollectsAllFieldErrors(t *testing.T) {
	reg := testRegistry(t)

	_, err := Validate(reg, "relay", RawValues{
		"endpoint": {"not a url"},
		"timeout":  {"soon"},
		"enabled":  {"maybe"},
	}, nil)

	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}

	expect := map[string]schema.Rule{
		"_id":      schema.RuleRequired,
		"endpoint": schema.RuleURL,
		"timeout":  schema.RuleDuration,
		"enabled":  schema.RuleBoolean,
	}
	if len(errs) != len(expect) {
		t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(expect))
	}
	for field, rule := range expect {
		fe, ok := errs.ByField(field)
		if !ok {
			t.Fatalf("no error recorded for %q in %v", field, errs)
		}
		if fe.Rule != rule {
			t.Fatalf("field %q failed with rule %q, want %q", field, fe.Rule, rule)
		}
	}
}

func TestValidateSkipsHiddenRequiredFields(t *testing.T) {
	reg := testRegistry(t)

	got, err := Validate(reg, "relay", RawValues{
		"_id":      {"upstream"},
		"endpoint": {"https://relay.example.com"},
		"mode":     {"direct"},
	}, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, ok := got["proxy-host"]; ok {
		t.Fatal("hidden field leaked into output")
	}
}

func TestValidateRequiresRevealedFields(t *testing.T) {
	reg := testRegistry(t)

	_, err := Validate(reg, "relay", RawValues{
		"_id":      {"upstream"},
		"endpoint": {"https://relay.example.com"},
		"mode":     {"proxy"},
	}, nil)

	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	fe, ok := errs.ByField("proxy-host")
	if !ok {
		t.Fatalf("proxy-host not reported: %v", errs)
	}
	if fe.Rule != schema.RuleRequired {
		t.Fatalf("rule = %q, want required", fe.Rule)
	}
}

func TestValidateStoredValuesGateVisibility(t *testing.T) {
	reg := testRegistry(t)

	// Partial update: the stored record runs in proxy mode, so the proxy
	// block stays accountable even though the submission omits it.
	stored := schema.Values{
		"mode":       schema.String("proxy"),
		"proxy-host": schema.String("10.0.0.1"),
	}
	got, err := Validate(reg, "relay", RawValues{
		"_id":        {"upstream"},
		"endpoint":   {"https://relay.example.com"},
		"proxy-host": {"10.0.0.2"},
	}, stored)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v := got["proxy-host"]; !v.Equal(schema.String("10.0.0.2")) {
		t.Fatalf("proxy-host = %v", v)
	}
}

func TestValidateRejectsUnknownFields(t *testing.T) {
	reg := testRegistry(t)

	_, err := Validate(reg, "relay", RawValues{
		"_id":      {"upstream"},
		"endpoint": {"https://relay.example.com"},
		"hostnme":  {"oops"},
	}, nil)

	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	fe, ok := errs.ByField("hostnme")
	if !ok {
		t.Fatalf("unknown field not reported: %v", errs)
	}
	if fe.Rule != schema.RuleUnknownField {
		t.Fatalf("rule = %q, want unknown-field", fe.Rule)
	}
}

func TestValidateSelectMembership(t *testing.T) {
	reg := testRegistry(t)

	_, err := Validate(reg, "relay", RawValues{
		"_id":      {"upstream"},
		"endpoint": {"https://relay.example.com"},
		"mode":     {"tunnel"},
	}, nil)

	var errs Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	fe, ok := errs.ByField("mode")
	if !ok {
		t.Fatalf("mode not reported: %v", errs)
	}
	if fe.Rule != schema.RuleOption {
		t.Fatalf("rule = %q, want option", fe.Rule)
	}
}

func TestValidateMultiSelectDropsDuplicates(t *testing.T) {
	reg := testRegistry(t)

	got, err := Validate(reg, "relay", RawValues{
		"_id":      {"upstream"},
		"endpoint": {"https://relay.example.com"},
		"regions":  {"eu", "us", "eu"},
	}, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v := got["regions"]; !v.Equal(schema.StringList("eu", "us")) {
		t.Fatalf("regions = %v, want the deduplicated pair", v)
	}
}

func TestValidateUnknownSchema(t *testing.T) {
	reg := testRegistry(t)

	_, err := Validate(reg, "nope", RawValues{}, nil)
	var notFound *SchemaNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SchemaNotFoundError, got %v", err)
	}
	if notFound.Key != "nope" {
		t.Fatalf("key = %q", notFound.Key)
	}
}
