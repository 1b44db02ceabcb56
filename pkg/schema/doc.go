// Package schema defines the configuration-schema model: typed field
// descriptors grouped into named schemas, assembled through a staged builder
// into an immutable Registry. Consumers hand the registry to the validate and
// visibility packages to normalize submitted records and to compute which
// fields an editing UI should currently show.
//
// Registries are built once during process initialization and are safe for
// unsynchronized concurrent reads afterwards.
package schema
