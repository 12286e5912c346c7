package normalize

import (
	"testing"

	"github.com/daniel/jobscout/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestTagsSeniority(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"Junior", "Junior Developer", "junior"},
		{"Entry maps to junior", "Entry Level Analyst", "junior"},
		{"Mid", "Mid-level Engineer", "mid"},
		{"Senior", "Software Engineer, Senior", "senior"},
		{"Sr abbreviation", "Sr Backend Developer", "senior"},
		{"Lead", "Tech Lead", "lead"},
		{"Principal maps to lead", "Principal Architect", "lead"},
		{"Staff maps to lead", "Staff Engineer", "lead"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := Tags(&types.Job{Title: tt.title})
			assert.Contains(t, tags, tt.expected)
		})
	}
}

func TestTagsFirstSeniorityMatchWins(t *testing.T) {
	// "junior" appears before "senior" in the priority order.
	tags := Tags(&types.Job{Title: "Junior Engineer", Description: "will work with senior staff"})
	assert.Contains(t, tags, "junior")
	assert.NotContains(t, tags, "senior")
	assert.NotContains(t, tags, "lead")
}

func TestTagsTechRemoteAndEmployment(t *testing.T) {
	job := &types.Job{
		Title:          "Backend Engineer",
		Description:    "Work with Python, Docker and AWS",
		Remote:         true,
		EmploymentType: "Full-time",
	}
	tags := Tags(job)

	assert.Contains(t, tags, "python")
	assert.Contains(t, tags, "docker")
	assert.Contains(t, tags, "aws")
	assert.Contains(t, tags, "remote")
	assert.Contains(t, tags, "full-time")
	assert.NotContains(t, tags, "ruby")
}

func TestSkills(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Commas and slashes",
			input:    "python, react/typescript",
			expected: []string{"Python", "React", "Typescript"},
		},
		{
			name:     "Newlines and dedupe",
			input:    "Go\ngo\nKubernetes",
			expected: []string{"Go", "Kubernetes"},
		},
		{
			name:     "Trims whitespace",
			input:    "  sql ,  aws  ",
			expected: []string{"Sql", "Aws"},
		},
		{
			name:     "Empty description",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Skills(tt.input))
		})
	}
}
