package payroll

import (
	"strconv"
	"strings"
)

// FormatTimeInput normalizes quick-entry digits into HH:MM.
// "700" becomes "07:00" and "1300" becomes "13:00". Anything else, including
// values that already contain a colon, is returned unchanged. Hour and minute
// ranges are not checked here.
func FormatTimeInput(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(s, ":") || !isDigits(s) {
		return s
	}
	switch len(s) {
	case 3:
		return "0" + s[:1] + ":" + s[1:]
	case 4:
		return s[:2] + ":" + s[2:]
	}
	return s
}

// ParseClock converts HH:MM to minutes after midnight.
// The second return value is false for empty or malformed input.
func ParseClock(s string) (int, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || h == "" || m == "" || !isDigits(h) || !isDigits(m) {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
