// Package oclapi serves the OCL subscription REST resource consumed by
// pkg/ocl.Client.
//
// It is a reference backend for development and tests, and can be embedded
// in the admin binary. Exactly one subscription may exist; POST to the
// collection updates it when present.
//
//	GET    /?v=full   {"results":[...]}
//	POST   /          201 on create, 200 when it updated the existing one
//	GET    /{uuid}    entity or 404
//	POST   /{uuid}    200, 404 for an unknown uuid
//	DELETE /{uuid}    204, 404 for an unknown uuid
//
// Invalid input yields 400 with a plain-text message. Storage is pluggable:
// NewMemoryStore for a single process, NewPostgresStore for PostgreSQL with
// tokens sealed by pkg/secrets. Apply Migrations with pg.Migrate first.
package oclapi
