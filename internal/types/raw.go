package types

// RawPosting is the untyped shape of whatever fields a source returned.
// It carries no invariants; any field may be missing. The Normalizer is the
// single chokepoint that turns raw postings into strongly typed Jobs, so no
// downstream stage should ever see this type.
type RawPosting map[string]any

// Str returns the string value for key, tolerating missing or mistyped fields.
func (r RawPosting) Str(key string) string {
	if r == nil {
		return ""
	}
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Bool returns the boolean value for key, defaulting to false.
func (r RawPosting) Bool(key string) bool {
	if r == nil {
		return false
	}
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}
