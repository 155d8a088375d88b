package timeval

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount coerces a money-like JSON value (number, numeric string, null, or
// absent) into a non-negative decimal. Absent, malformed and negative inputs
// all degrade to zero; this function never fails.
func Amount(raw json.RawMessage) decimal.Decimal {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal.Zero
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return decimal.Zero
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
