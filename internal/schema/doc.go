// Package schema defines the newtype definition file format and loads it
// into the attribute model.
//
// Definitions are authored in YAML (primary) or TOML. The loader keeps
// per-node source positions where the format provides them so every
// later diagnostic can point at the offending token.
package schema
