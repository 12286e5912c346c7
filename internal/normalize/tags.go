package normalize

import (
	"regexp"
	"strings"

	"github.com/daniel/jobscout/internal/types"
)

// seniorityKeywords maps title/description keywords to a seniority tag.
// Order matters: the first match wins.
var seniorityKeywords = []struct {
	keyword string
	tag     string
}{
	{"junior", "junior"},
	{"entry", "junior"},
	{"mid", "mid"},
	{"senior", "senior"},
	{"sr", "senior"},
	{"lead", "lead"},
	{"principal", "lead"},
	{"staff", "lead"},
}

// techKeywords is the fixed technology vocabulary scanned for tag derivation.
var techKeywords = []string{
	"python", "javascript", "react", "fastapi", "aws", "docker",
	"kubernetes", "sql", "mongodb", "typescript", "java", "c++", "go", "ruby",
}

// Tags derives the tag set for a job from its title, description, remote flag,
// and employment type.
func Tags(job *types.Job) []string {
	var tags []string
	title := strings.ToLower(job.Title)
	description := strings.ToLower(job.Description)

	for _, s := range seniorityKeywords {
		if strings.Contains(title, s.keyword) || strings.Contains(description, s.keyword) {
			tags = append(tags, s.tag)
			break
		}
	}

	for _, tech := range techKeywords {
		if strings.Contains(title, tech) || strings.Contains(description, tech) {
			tags = append(tags, tech)
		}
	}

	if job.Remote {
		tags = append(tags, "remote")
	}
	if job.EmploymentType != "" {
		tags = append(tags, strings.ToLower(job.EmploymentType))
	}
	return tags
}

var skillDelimiters = regexp.MustCompile(`[,/\n]+`)

// Skills derives a deduplicated skill list by splitting description text on
// commas, slashes, and newlines, trimming, and title-casing each part.
func Skills(description string) []string {
	if strings.TrimSpace(description) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var skills []string
	for _, part := range skillDelimiters.Split(description, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		skill := titleCase(part)
		if !seen[skill] {
			seen[skill] = true
			skills = append(skills, skill)
		}
	}
	return skills
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
