package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/daniel/jobscout/internal/types"
)

// -----------------------------------------------------------------------------
// Profile Methods
// -----------------------------------------------------------------------------

// GetProfile retrieves the candidate profile for an owner. Returns nil when
// no profile has been stored.
func (db *DB) GetProfile(ctx context.Context, userID string) (*types.Profile, error) {
	var p types.Profile
	var skillsJSON, keywordsJSON, rolesJSON []byte
	var location *string

	err := db.pool.QueryRow(ctx,
		`SELECT user_id, skills, keywords, roles, experience_years, location, remote_only
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &skillsJSON, &keywordsJSON, &rolesJSON,
		&p.ExperienceYears, &location, &p.RemoteOnly)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &p.Skills)
	}
	if keywordsJSON != nil {
		_ = json.Unmarshal(keywordsJSON, &p.Keywords)
	}
	if rolesJSON != nil {
		_ = json.Unmarshal(rolesJSON, &p.Roles)
	}
	if location != nil {
		p.Location = *location
	}

	return &p, nil
}

// UpsertProfile creates or replaces the candidate profile for an owner.
func (db *DB) UpsertProfile(ctx context.Context, profile *types.Profile) error {
	skillsJSON, err := json.Marshal(profile.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	keywordsJSON, err := json.Marshal(profile.Keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}
	rolesJSON, err := json.Marshal(profile.Roles)
	if err != nil {
		return fmt.Errorf("failed to marshal roles: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, skills, keywords, roles, experience_years, location, remote_only)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET
		     skills = $2,
		     keywords = $3,
		     roles = $4,
		     experience_years = $5,
		     location = $6,
		     remote_only = $7,
		     updated_at = NOW()`,
		profile.UserID, skillsJSON, keywordsJSON, rolesJSON,
		profile.ExperienceYears, nullIfEmpty(profile.Location), profile.RemoteOnly,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
