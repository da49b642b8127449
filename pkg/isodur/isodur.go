package isodur

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSeconds parses an ISO-8601 duration as emitted by the YouTube API
// (e.g. "PT1H2M3S", "P1DT4H", "P2W") and returns its total length in seconds.
// Fractional components and negative durations are rejected; months and years
// are not supported since video durations never carry them.
func ParseSeconds(value string) (int64, error) {
	s := value
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("isodur: %q does not start with P", value)
	}
	s = s[1:]
	if s == "" {
		return 0, fmt.Errorf("isodur: %q has no components", value)
	}

	var total int64
	inTime := false
	num := ""

	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			num += string(ch)
		case ch == 'T':
			if inTime || num != "" {
				return 0, fmt.Errorf("isodur: misplaced T in %q", value)
			}
			inTime = true
		default:
			if num == "" {
				return 0, fmt.Errorf("isodur: designator %q without value in %q", string(ch), value)
			}
			n, err := strconv.ParseInt(num, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("isodur: component %q in %q: %w", num, value, err)
			}
			num = ""

			var mult int64
			switch {
			case !inTime && ch == 'W':
				mult = 7 * 24 * 3600
			case !inTime && ch == 'D':
				mult = 24 * 3600
			case inTime && ch == 'H':
				mult = 3600
			case inTime && ch == 'M':
				mult = 60
			case inTime && ch == 'S':
				mult = 1
			default:
				return 0, fmt.Errorf("isodur: unsupported designator %q in %q", string(ch), value)
			}
			total += n * mult
		}
	}

	if num != "" {
		return 0, fmt.Errorf("isodur: trailing value %q in %q", num, value)
	}
	return total, nil
}
