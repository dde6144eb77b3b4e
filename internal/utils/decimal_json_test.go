package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalFromJSON(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "number", raw: `4.3012`, want: "4.3012", wantOK: true},
		{name: "zero", raw: `0`, want: "0", wantOK: true},
		{name: "exponent", raw: `1.5e2`, want: "150", wantOK: true},
		{name: "numeric string", raw: `" 3.9876 "`, want: "3.9876", wantOK: true},
		{name: "text", raw: `"n/a"`},
		{name: "empty string", raw: `""`},
		{name: "null", raw: `null`},
		{name: "bool", raw: `true`},
		{name: "object", raw: `{}`},
		{name: "array", raw: `[1]`},
		{name: "missing", raw: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecimalFromJSON(json.RawMessage(tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}
