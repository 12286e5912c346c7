package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeDatePattern = regexp.MustCompile(`(?i)(\d+)\s+(second|minute|hour|day|week|month|year)s?\s+ago`)

// PostedAt converts a posted-date string into an absolute timestamp. It accepts
// ISO-8601 timestamps first, then relative expressions like "2 days ago"
// evaluated against now. Unparseable input yields nil, never an error.
func PostedAt(text string, now time.Time) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSuffix(text, "Z")); err == nil {
			return &t
		}
	}

	m := relativeDatePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}

	var d time.Duration
	switch strings.ToLower(m[2]) {
	case "second":
		d = time.Duration(amount) * time.Second
	case "minute":
		d = time.Duration(amount) * time.Minute
	case "hour":
		d = time.Duration(amount) * time.Hour
	case "day":
		d = time.Duration(amount) * 24 * time.Hour
	case "week":
		d = time.Duration(amount) * 7 * 24 * time.Hour
	case "month":
		d = time.Duration(amount) * 30 * 24 * time.Hour
	case "year":
		d = time.Duration(amount) * 365 * 24 * time.Hour
	default:
		return nil
	}

	t := now.Add(-d)
	return &t
}
