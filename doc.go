// Package draft4 validates JSON instances against JSON Schema draft-4
// documents.
//
// - Schema documents are registered with InsertSchema; references across
//   documents resolve lazily and in any insertion order
// - The document registered under the root marker "#" becomes the root
//   schema that Validate checks instances against
// - Validation stops at the first violated constraint and reports it as a
//   *Failure carrying a kind, a message and the instance path
//
// Design policy:
// - Keep only public APIs in the root package; the per-document reference
//   resolution pass lives under internal/resolver.
// - The value tree is jsontree.Value, canonical identifiers are
//   schemauri.URI; both are small leaf packages usable on their own.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	v := draft4.New()
//	schema, err := jsontree.DecodeJSON(schemaBytes)
//	undefined, err := v.InsertSchema(schema, "#")
//	instance, err := jsontree.DecodeJSON(instanceBytes)
//	err = v.Validate(instance)
//
// The combinator keywords (allOf, anyOf, oneOf, not) and the string format
// and pattern keywords are not implemented; schemas using them fail with an
// unsupported-keyword error rather than being silently ignored.
package draft4
