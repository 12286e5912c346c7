package types

// Profile is the candidate profile used to build search queries and score jobs.
// It is a read-only input to the pipeline; profile storage lives outside the core.
type Profile struct {
	UserID          string   `json:"user_id"`
	Skills          []string `json:"skills,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	Roles           []string `json:"roles,omitempty"`
	ExperienceYears int      `json:"experience_years,omitempty"`
	Location        string   `json:"location,omitempty"`
	RemoteOnly      bool     `json:"remote_only"`
}

// SearchKeywords returns the profile's explicit keywords, falling back to its
// skills list when no keywords are set.
func (p *Profile) SearchKeywords() []string {
	if len(p.Keywords) > 0 {
		return p.Keywords
	}
	return p.Skills
}
