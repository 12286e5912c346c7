package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/daniel/jobscout/internal/types"
)

// salaryPattern tolerates currency symbols, "k" suffixes, ranges, and
// "per <interval>" suffixes: "$100k-$150k per year", "€80k", "120000 per month".
var salaryPattern = regexp.MustCompile(`(?i)(?P<currency>[$€£])?\s*(?P<min>\d+[k]?)\s*(?:[-–]|to)?\s*[$€£]?\s*(?P<max>\d+[k]?)?\s*(?P<interval>per\s+\w+)?`)

// Salary extracts structured salary information from free text. Missing or
// unparseable text yields a zero-value Salary, never an error.
func Salary(text string) types.Salary {
	var out types.Salary
	if strings.TrimSpace(text) == "" {
		return out
	}

	m := salaryPattern.FindStringSubmatch(strings.ReplaceAll(text, ",", ""))
	if m == nil {
		return out
	}

	groups := map[string]string{}
	for i, name := range salaryPattern.SubexpNames() {
		if name != "" && i < len(m) {
			groups[name] = m[i]
		}
	}

	minVal := salaryNumber(groups["min"])
	if minVal == nil {
		return out
	}
	maxVal := salaryNumber(groups["max"])
	if maxVal == nil {
		maxVal = minVal
	}

	out.Min = minVal
	out.Max = maxVal
	out.Currency = groups["currency"]
	if interval := groups["interval"]; interval != "" {
		fields := strings.Fields(interval)
		out.Interval = strings.ToLower(fields[len(fields)-1])
	}
	return out
}

// salaryNumber parses "100k" or "120000" into a float, nil on failure.
func salaryNumber(s string) *float64 {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(strings.ToLower(s), "k", "000")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
