package incidents

import (
	"fmt"
	"strings"
)

// DefaultDateFormat is the date notation used by the incident dataset.
const DefaultDateFormat = "M/D/YYYY"

// dateTokens maps pattern tokens to Go layout elements, longest first.
// Month and day map to the unpadded layout so both "7/4/2015" and
// "07/04/2015" parse.
var dateTokens = []struct {
	token  string
	layout string
}{
	{"YYYY", "2006"},
	{"%Y", "2006"},
	{"MM", "1"},
	{"DD", "2"},
	{"%m", "1"},
	{"%d", "2"},
	{"M", "1"},
	{"D", "2"},
}

// DateLayout converts a date pattern into a Go time layout. Accepted
// notations are token patterns ("M/D/YYYY", "YYYY-MM-DD"), strftime-style
// patterns ("%m/%d/%Y") and literal Go layouts ("2006-01-02").
func DateLayout(pattern string) (string, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return "", fmt.Errorf("empty date format")
	}
	if strings.Contains(pattern, "2006") {
		return pattern, nil
	}

	var b strings.Builder
	var hasYear, hasMonth, hasDay bool
	for i := 0; i < len(pattern); {
		matched := false
		for _, t := range dateTokens {
			if strings.HasPrefix(pattern[i:], t.token) {
				b.WriteString(t.layout)
				switch t.layout {
				case "2006":
					hasYear = true
				case "1":
					hasMonth = true
				case "2":
					hasDay = true
				}
				i += len(t.token)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		c := pattern[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '%' || (c >= '0' && c <= '9') {
			return "", fmt.Errorf("unsupported date format %q: unexpected %q", pattern, c)
		}
		b.WriteByte(c)
		i++
	}

	if !hasYear || !hasMonth || !hasDay {
		return "", fmt.Errorf("unsupported date format %q: needs year, month and day", pattern)
	}
	return b.String(), nil
}
