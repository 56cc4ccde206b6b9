package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ID validates a product/record identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable product name. Required on create; a byte
// length cap keeps form abuse out of the ledger.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 120 {
		return "", false
	}
	return s, true
}

// Q normalizes a search query: trims and caps the length. An empty query is
// valid and means "match everything".
func Q(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}

// Num coerces free-form numeric input to a float. Anything unparsable
// normalizes to 0 so a stray string can never reach ledger arithmetic.
func Num(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// Int coerces free-form input to an integer, truncating toward zero.
// Same fallback policy as Num: unparsable input becomes 0.
func Int(s string) int {
	return int(Num(s))
}
