package utils

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// DecimalFromJSON reads a JSON number or a quoted numeric string. ok is false
// for null, booleans, objects, arrays and strings that do not hold a number.
func DecimalFromJSON(raw json.RawMessage) (decimal.Decimal, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return decimal.Zero, false
	}

	text := string(trimmed)
	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return decimal.Zero, false
		}
		text = strings.TrimSpace(s)
	case c == '-' || (c >= '0' && c <= '9'):
	default:
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
