package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/RustWorks/webadmin/pkg/schema"
	"github.com/RustWorks/webadmin/pkg/validate"
	"github.com/RustWorks/webadmin/pkg/visibility"
)

func builtRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg, err := Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return reg
}

func TestBuildRegistersAllSchemas(t *testing.T) {
	reg := builtRegistry(t)
	for _, key := range []string{"acme", "certificate", "tls"} {
		if _, ok := reg.Schema(key); !ok {
			t.Fatalf("schema %q missing", key)
		}
	}
}

// Every id referenced by a list view, section, or display condition must
// resolve; the builder enforces this, so a successful Build is the property
// under test, and this walk documents it.
func TestReferencesResolve(t *testing.T) {
	reg := builtRegistry(t)
	for _, key := range reg.Keys() {
		s, _ := reg.Schema(key)
		for _, id := range s.List.FieldIDs {
			if !s.Has(id) {
				t.Fatalf("schema %q: dangling list field %q", key, id)
			}
		}
		for _, sec := range s.Sections {
			for _, id := range sec.FieldIDs {
				if !s.Has(id) {
					t.Fatalf("schema %q: section %q: dangling field %q", key, sec.Title, id)
				}
			}
		}
		for _, f := range s.Fields() {
			if f.DisplayIf != nil && !s.Has(f.DisplayIf.Field) {
				t.Fatalf("schema %q: field %q: dangling condition on %q", key, f.ID, f.DisplayIf.Field)
			}
		}
	}
}

func TestListViewsNeverShowSecrets(t *testing.T) {
	reg := builtRegistry(t)
	for _, key := range reg.Keys() {
		s, _ := reg.Schema(key)
		for _, id := range s.List.FieldIDs {
			if f, ok := s.Field(id); ok && f.IsSecret() {
				t.Fatalf("schema %q lists secret field %q", key, id)
			}
		}
	}
}

func TestACMETLSALPNHidesDNSBlock(t *testing.T) {
	reg := builtRegistry(t)

	got, err := validate.Validate(reg, "acme", validate.RawValues{
		"_id":       {"letsencrypt"},
		"challenge": {"tls-alpn-01"},
		"contact":   {"admin@example.com"},
		"domains":   {"example.com"},
	}, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for _, hidden := range []string{"provider", "host", "port", "secret", "key"} {
		if _, ok := got[hidden]; ok {
			t.Fatalf("DNS-01 field %q present in output", hidden)
		}
	}
	if v := got["renew-before"]; !v.Equal(schema.Duration(30 * 24 * time.Hour)) {
		t.Fatalf("renew-before = %v", v)
	}
	if v := got["directory"]; !v.Equal(schema.String("https://acme-v02.api.letsencrypt.org/directory")) {
		t.Fatalf("directory = %v", v)
	}
}

func TestACMEDNS01RequiresHost(t *testing.T) {
	reg := builtRegistry(t)

	_, err := validate.Validate(reg, "acme", validate.RawValues{
		"_id":       {"letsencrypt"},
		"challenge": {"dns-01"},
		"provider":  {"cloudflare"},
		"contact":   {"admin@example.com"},
		"domains":   {"example.com"},
		"secret":    {"token"},
		"key":       {"tsig-key"},
	}, nil)

	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	fe, ok := errs.ByField("host")
	if !ok {
		t.Fatalf("host not reported: %v", errs)
	}
	if fe.Rule != schema.RuleRequired {
		t.Fatalf("host rule = %q, want required", fe.Rule)
	}
}

func TestACMEContactMustBeEmail(t *testing.T) {
	reg := builtRegistry(t)

	_, err := validate.Validate(reg, "acme", validate.RawValues{
		"_id":       {"letsencrypt"},
		"challenge": {"tls-alpn-01"},
		"domains":   {"example.com"},
		"contact":   {"not-an-email"},
	}, nil)

	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	fe, ok := errs.ByField("contact")
	if !ok {
		t.Fatalf("contact not reported: %v", errs)
	}
	if fe.Rule != schema.RuleEmail {
		t.Fatalf("contact rule = %q, want email", fe.Rule)
	}
}

func TestCertificateValidation(t *testing.T) {
	reg := builtRegistry(t)

	_, err := validate.Validate(reg, "certificate", validate.RawValues{
		"_id":      {"main"},
		"subjects": {"bad_domain!"},
	}, nil)

	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	if fe, ok := errs.ByField("subjects"); !ok || fe.Rule != schema.RuleDomain {
		t.Fatalf("subjects error = %+v (ok=%v), want domain rule", fe, ok)
	}
	for _, missing := range []string{"cert", "private-key"} {
		fe, ok := errs.ByField(missing)
		if !ok {
			t.Fatalf("%q not reported: %v", missing, errs)
		}
		if fe.Rule != schema.RuleRequired {
			t.Fatalf("%q rule = %q, want required", missing, fe.Rule)
		}
	}
}

func TestTLSDefaults(t *testing.T) {
	reg := builtRegistry(t)

	got, err := validate.Validate(reg, "tls", validate.RawValues{}, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v := got["server.tls.ignore-client-order"]; !v.Equal(schema.Bool(true)) {
		t.Fatalf("server.tls.ignore-client-order = %v, want true", v)
	}
	if v := got["server.tls.timeout"]; !v.Equal(schema.Duration(time.Minute)) {
		t.Fatalf("server.tls.timeout = %v, want 1m", v)
	}
}

func TestTLSDisabledProtocolSubset(t *testing.T) {
	reg := builtRegistry(t)

	got, err := validate.Validate(reg, "tls", validate.RawValues{
		"server.tls.disable-protocols": {"TLSv1.2"},
	}, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v := got["server.tls.disable-protocols"]; !v.Equal(schema.StringList("TLSv1.2")) {
		t.Fatalf("disable-protocols = %v", v)
	}

	_, err = validate.Validate(reg, "tls", validate.RawValues{
		"server.tls.disable-protocols": {"SSLv3"},
	}, nil)
	var errs validate.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected Errors, got %v", err)
	}
	if fe, ok := errs.ByField("server.tls.disable-protocols"); !ok || fe.Rule != schema.RuleOption {
		t.Fatalf("error = %+v (ok=%v), want option rule", fe, ok)
	}
}

func TestACMEVisibilityChain(t *testing.T) {
	reg := builtRegistry(t)
	s, _ := reg.Schema("acme")

	visible := visibility.Fields(s, schema.Values{
		"challenge": schema.String("dns-01"),
		"provider":  schema.String("rfc2136-tsig"),
	})
	for _, id := range []string{"provider", "host", "port", "key", "tsig-algorithm", "protocol"} {
		if !visible[id] {
			t.Fatalf("%q hidden under rfc2136-tsig", id)
		}
	}
	if visible["timeout"] {
		t.Fatal("cloudflare timeout visible under rfc2136-tsig")
	}

	visible = visibility.Fields(s, schema.Values{
		"challenge": schema.String("tls-alpn-01"),
	})
	for _, id := range []string{"provider", "host", "tsig-algorithm", "timeout"} {
		if visible[id] {
			t.Fatalf("%q visible under tls-alpn-01", id)
		}
	}

	sections := visibility.Sections(s, schema.Values{"challenge": schema.String("tls-alpn-01")})
	for _, sec := range sections {
		if sec.Title == "DNS settings" {
			t.Fatal("DNS settings section visible under tls-alpn-01")
		}
	}
}
