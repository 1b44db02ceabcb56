// Package catalog declares the schemas shipped with the admin UI: the ACME
// provider, TLS certificate, and TLS settings configuration objects. The
// declarations are the single source of truth the validation and visibility
// engines, the exporters, and the CLI all read from.
package catalog

import (
	"github.com/RustWorks/webadmin/pkg/schema"
)

// Build assembles the shipped registry. It is meant to run once during
// process initialization; a Defect error here is a programming error in the
// declarations below, never a runtime condition.
func Build() (*schema.Registry, error) {
	b := schema.NewBuilder()
	b = buildTLS(b)
	return b.Build()
}
