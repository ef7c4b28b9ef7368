// Package strukt is a schema-driven structural validator and codec: given
// a schema tree (package ast) and an already-parsed value, Decode checks
// conformance and produces the canonical in-memory representation, Encode
// converts a canonical value back to its external shape, and failures come
// back as a tree of path-qualified issues mirroring the input.
//
// The engine is synchronous, pure and safe for concurrent use over shared
// schema nodes; suspension is a capability callers opt into per run.
package strukt
