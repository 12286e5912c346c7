// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JobBatch", "MatchScore")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint as it should appear in the prompt
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "\"string\""
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the input, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// JobBatchSchema returns the extraction schema used by the Normalizer to map a
// batch of raw postings into draft normalized jobs. Deterministic validation
// happens after extraction; the model output is never trusted directly.
func JobBatchSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JobBatch",
		Description: `You are an expert job posting normalizer. Map each raw job posting in the input
array into the canonical job schema. COPY values from the raw data - do not invent URLs, salaries,
or dates that are not present. Put a posting you cannot map into the discard count with a short reason.`,
		Fields: []SchemaField{
			{
				Name:        "normalized_jobs",
				Type:        `[{"source_id": "string", "title": "string", "company": "string", "company_logo": "string", "location": "string", "remote": bool, "employment_type": "string", "salary": "string", "posted_at": "string", "description": "string", "listing_url": "string", "apply_url": "string"}]`,
				Description: "one entry per mappable raw posting, fields copied verbatim where present",
				Required:    true,
			},
			{
				Name:        "discarded_count",
				Type:        "number",
				Description: "count of raw postings that could not be mapped",
				Required:    true,
			},
			{
				Name:        "discard_reasons",
				Type:        `["string"]`,
				Description: "one short reason per discarded posting",
				Required:    false,
			},
		},
	}
}

// MatchScoreSchema returns the extraction schema used by the Matcher to score
// one job against the candidate profile.
func MatchScoreSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "MatchScore",
		Description: `You are an expert technical recruiter. Evaluate how well the job fits the candidate
profile. Consider required skills, seniority, location and remote preferences, and role focus.
Score 0.0 (no fit) to 1.0 (perfect fit).`,
		Fields: []SchemaField{
			{
				Name:        "match_score",
				Type:        "number",
				Description: "fit score between 0.0 and 1.0",
				Required:    true,
			},
			{
				Name:        "match_reasoning",
				Type:        "\"string\"",
				Description: "two or three sentences explaining the score",
				Required:    true,
			},
			{
				Name:        "missing_skills",
				Type:        `["string"]`,
				Description: "required skills the candidate lacks",
				Required:    true,
			},
		},
	}
}
