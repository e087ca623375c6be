package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Score":       "score",
		"MaxSpeed":    "max_speed",
		"APIKey":      "api_key",
		"HTTPTimeout": "http_timeout",
		"Ratio2D":     "ratio2_d",
		"weight":      "weight",
		"":            "",
	}

	for in, want := range cases {
		assert.Equal(t, want, SnakeCase(in), "SnakeCase(%q)", in)
	}
}
