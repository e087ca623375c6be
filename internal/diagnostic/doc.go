// Package diagnostic provides structured errors and warnings for the
// newtype generator.
//
// Every detected misconfiguration (duplicate rule, unknown option,
// missing default value, capability requested without its feature flag)
// flows through this package so it can be surfaced to the developer with
// the offending token's source location.
package diagnostic
