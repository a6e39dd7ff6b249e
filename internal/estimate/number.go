package estimate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a float that never fails to decode: malformed input becomes 0.
// It accepts JSON numbers and strings, with either a dot or a comma as decimal separator.
// A lone comma is always decimal, so "1,234" is 1.234; thousands need a space or a dot after them ("1 234", "1,234.0").
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = 0
			return nil
		}
		*n = Number(ParseNumber(s))
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(finite(f))
	return nil
}

func (n Number) Float() float64 {
	return float64(n)
}

// ParseNumber parses user input, defaulting to 0. Commas follow the rules of Number.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "$", "").Replace(s)
	if s == "" {
		return 0
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func nonNegative(f float64) float64 {
	f = finite(f)
	if f < 0 {
		return 0
	}
	return f
}
