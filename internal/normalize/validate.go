package normalize

// Discard reasons recorded when a job fails hard validation.
const (
	ReasonMissingURL    = "missing_url"
	ReasonMissingTitle  = "missing_title"
	ReasonLLMParseError = "llm_parse_error"
)

// Validate applies the hard validation rules: a job is invalid when it lacks
// both a listing URL and an apply URL, or lacks a non-empty title. No other
// field absence invalidates a job. This check is deterministic and is never
// delegated to the model.
func Validate(title, listingURL, applyURL string) (bool, string) {
	if listingURL == "" && applyURL == "" {
		return false, ReasonMissingURL
	}
	if title == "" {
		return false, ReasonMissingTitle
	}
	return true, ""
}
