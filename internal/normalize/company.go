// Package normalize provides the deterministic post-processing applied to every
// model-drafted job: field cleanup, salary and date parsing, tag and skill
// extraction, fingerprinting, and hard validation. Nothing in this package
// depends on the LLM; every invariant enforced here is re-checked after any
// model-produced field.
package normalize

import (
	"regexp"
	"strings"
)

// companySuffixes are trailing corporate suffixes dropped token-wise from
// company names ("Acme Inc." -> "Acme").
var companySuffixes = map[string]bool{
	"inc":         true,
	"llc":         true,
	"ltd":         true,
	"corp":        true,
	"corporation": true,
	"co":          true,
}

var trailingPunct = regexp.MustCompile(`[,.]+$`)

// CompanyName trims whitespace, strips trailing punctuation, and drops common
// corporate suffixes from the end of a company name.
func CompanyName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	name = trailingPunct.ReplaceAllString(name, "")

	parts := strings.Fields(name)
	for len(parts) > 0 {
		last := strings.ToLower(strings.Trim(parts[len(parts)-1], "."))
		if !companySuffixes[last] {
			break
		}
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, " ")
}

var wrappingBrackets = regexp.MustCompile(`^[\[\(]+|[\]\)]+$`)

// Title trims whitespace and strips wrapping brackets or parentheses from a
// job title ("[Senior Engineer]" -> "Senior Engineer").
func Title(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return title
	}
	return wrappingBrackets.ReplaceAllString(title, "")
}
