// File: internal/portal/workload_test.go
package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentValue(t *testing.T) {
	cases := []struct {
		in    string
		value string
		ok    bool
	}{
		{"Production", "prod", true},
		{"production", "prod", true},
		{"prod", "prod", true},
		{"Pre-production", "preprod", true},
		{"pre-prod", "preprod", true},
		{"  PRE-PRODUCTION  ", "preprod", true},
		{"staging", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			value, ok := environmentValue(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.value, value)
		})
	}
}
