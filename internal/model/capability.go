package model

import "newtype-generator/internal/common"

// Capability is a behavior requested for a generated wrapper type.
// Requests form a set: asking for the same capability twice has no effect.
type Capability int

const (
	_ Capability = iota

	CapEq
	CapHash
	CapClone
	CapDebug
	CapOrd
	CapDisplay
	CapAsRef
	CapInto
	CapFrom
	CapTryFrom
	CapFromStr
	CapDefault
	CapSerialize
	CapDeserialize
	CapJSONSchema
	CapArbitrary

	// CapTotal is a constant that represents the total number of capabilities defined
	CapTotal = int(iota)
)

var capabilityNames = map[Capability]string{
	CapEq:          "eq",
	CapHash:        "hash",
	CapClone:       "clone",
	CapDebug:       "debug",
	CapOrd:         "ord",
	CapDisplay:     "display",
	CapAsRef:       "as_ref",
	CapInto:        "into",
	CapFrom:        "from",
	CapTryFrom:     "try_from",
	CapFromStr:     "from_str",
	CapDefault:     "default",
	CapSerialize:   "serialize",
	CapDeserialize: "deserialize",
	CapJSONSchema:  "json_schema",
	CapArbitrary:   "arbitrary",
}

// String returns the definition-file spelling of the capability.
func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}

	return common.UnknownStr
}

// ParseCapability resolves a capability name from a definition file.
func ParseCapability(name string) (Capability, bool) {
	for c, n := range capabilityNames {
		if n == name {
			return c, true
		}
	}

	return 0, false
}

// AllCapabilities returns every capability in its fixed, deterministic
// order. Resolution and emission both iterate in this order.
func AllCapabilities() []Capability {
	caps := make([]Capability, 0, CapTotal-1)
	for c := Capability(1); int(c) < CapTotal; c++ {
		caps = append(caps, c)
	}

	return caps
}
