package domain

import (
	"regexp"
	"strings"
)

// CountryCode is the fixed dialing prefix prepended to every submitted number.
const CountryCode = "+94"

// phoneMask is the canonical display form: 3 digits, space, 3 digits, dash, 4 digits.
var phoneMask = regexp.MustCompile(`^\(\d{3}\) \d{3}-\d{4}$`)

// FormatPhone normalizes raw keystrokes into the masked display form.
// Non-digits are stripped and the mask grows with the digit count:
//
//	0 digits      -> ""
//	1-2 digits    -> "(D.."
//	3-5 digits    -> "(DDD) D.."
//	6+ digits     -> "(DDD) DDD-DDDD", truncated at 10 digits
//
// The function is pure; reformatting its own output is a no-op.
func FormatPhone(raw string) string {
	// Only ASCII 0-9 count as digits; other scripts' digits are stripped.
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	digits := b.String()
	if len(digits) > 10 {
		digits = digits[:10]
	}

	switch {
	case len(digits) == 0:
		return ""
	case len(digits) < 3:
		return "(" + digits
	case len(digits) < 6:
		return "(" + digits[:3] + ") " + digits[3:]
	default:
		return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
	}
}

// ValidPhone reports whether s fills the canonical mask exactly.
// No semantic validity (area-code plausibility and the like) is checked.
func ValidPhone(s string) bool {
	return phoneMask.MatchString(s)
}

// CanonicalPhone is the value submitted to ingestion: the masked number
// prefixed with the fixed country code and a separating space.
func CanonicalPhone(masked string) string {
	return CountryCode + " " + masked
}
