// Package gen assembles the generated artifact for each newtype: type
// definition, constructor(s) matching the guard classification,
// extractor, one block per irregular capability, and the error type for
// fallible wrappers.
//
// Generation approach uses text/template + go/format for readable,
// deterministic Go code. Fragments are composed per block so each block
// can be assembled (and tested) for its own shape.
package gen
