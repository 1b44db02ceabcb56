package openapi

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/RustWorks/webadmin/pkg/catalog"
)

func TestDocumentCoversEverySchema(t *testing.T) {
	reg, err := catalog.Build()
	if err != nil {
		t.Fatalf("catalog.Build: %v", err)
	}

	doc, err := Document(reg)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if doc.Components == nil {
		t.Fatal("document has no components")
	}
	for _, key := range reg.Keys() {
		if _, ok := doc.Components.Schemas[key]; !ok {
			t.Fatalf("component schema %q missing", key)
		}
	}
}

func TestDocumentFieldProjection(t *testing.T) {
	reg, err := catalog.Build()
	if err != nil {
		t.Fatalf("catalog.Build: %v", err)
	}
	doc, err := Document(reg)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	acme := doc.Components.Schemas["acme"].Value
	if acme == nil {
		t.Fatal("acme component missing")
	}

	challenge := acme.Properties["challenge"].Value
	wantEnum := []any{"tls-alpn-01", "dns-01", "http-01"}
	if diff := cmp.Diff(wantEnum, challenge.Enum); diff != "" {
		t.Fatalf("challenge enum mismatch (-want +got):\n%s", diff)
	}
	if challenge.Default != "tls-alpn-01" {
		t.Fatalf("challenge default = %v", challenge.Default)
	}

	secret := acme.Properties["secret"].Value
	if secret.Format != "password" || !secret.WriteOnly {
		t.Fatalf("secret projected as %q (writeOnly=%v)", secret.Format, secret.WriteOnly)
	}

	renew := acme.Properties["renew-before"].Value
	if renew.Format != "duration" || renew.Pattern == "" {
		t.Fatalf("renew-before projected as %q pattern %q", renew.Format, renew.Pattern)
	}

	domains := acme.Properties["domains"].Value
	if !domains.Type.Is("array") {
		t.Fatalf("domains type = %v", domains.Type)
	}

	tls := doc.Components.Schemas["tls"].Value
	disabled := tls.Properties["server.tls.disable-protocols"].Value
	if !disabled.Type.Is("array") || disabled.Items == nil {
		t.Fatalf("disable-protocols projected as %v", disabled.Type)
	}
	if len(disabled.Items.Value.Enum) != 2 {
		t.Fatalf("disable-protocols enum = %v", disabled.Items.Value.Enum)
	}
}

func TestRequiredOnlyListsUnconditionalFields(t *testing.T) {
	reg, err := catalog.Build()
	if err != nil {
		t.Fatalf("catalog.Build: %v", err)
	}
	doc, err := Document(reg)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	acme := doc.Components.Schemas["acme"].Value
	required := map[string]bool{}
	for _, id := range acme.Required {
		required[id] = true
	}
	for _, id := range []string{"_id", "contact", "domains"} {
		if !required[id] {
			t.Fatalf("%q missing from required set %v", id, acme.Required)
		}
	}
	// Gated or defaulted fields cannot be required at the document level.
	for _, id := range []string{"host", "secret", "directory", "challenge"} {
		if required[id] {
			t.Fatalf("%q must not be required (set: %v)", id, acme.Required)
		}
	}
}
