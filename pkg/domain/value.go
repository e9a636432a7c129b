package domain

import (
	"math"
	"strings"
)

// CleanTarget normalizes a transition target string. Placeholder values the
// corpus uses for "no value" ("NaN", "None", "null", empty) collapse to "".
func CleanTarget(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "NAN", "NONE", "NULL":
		return ""
	}
	return s
}

// IsMissing reports whether a raw value should be treated as absent: nil,
// a NaN float, or one of the string placeholders.
func IsMissing(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))
	case string:
		return CleanTarget(t) == ""
	}
	return false
}

// IsExplicitNaN reports whether a raw value is a literal NaN marker. Unlike
// IsMissing it accepts nil: optional fields may legitimately be null, but a
// NaN slipped in by a broken export pipeline is always a data defect.
func IsExplicitNaN(v any) bool {
	switch t := v.(type) {
	case float64:
		return math.IsNaN(t)
	case float32:
		return math.IsNaN(float64(t))
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "nan")
	}
	return false
}
