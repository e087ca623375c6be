// Package capability resolves a wrapper's requested capability set into
// the transparent/irregular partition the code assembler consumes.
//
// Resolution is guard-aware: several capabilities generate different
// bodies (or are rejected outright) depending on whether construction is
// fallible, which is why it runs after guard classification.
package capability
