package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/daniel/jobscout/internal/llm"
	"github.com/daniel/jobscout/internal/schemas"
	"github.com/daniel/jobscout/internal/types"
)

// DefaultMatchThreshold is the inclusive score cutoff for a job to be
// considered a match.
const DefaultMatchThreshold = 0.7

// maxDescriptionChars bounds the job description sent to the model.
const maxDescriptionChars = 2000

// Matcher scores jobs against the candidate profile concurrently. A scoring
// failure leaves the job unscored and logged; it is never dropped silently.
type Matcher struct {
	llm       llm.Client
	threshold float64
	log       *zap.Logger
}

func NewMatcher(client llm.Client, threshold float64, log *zap.Logger) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{llm: client, threshold: threshold, log: log}
}

type matchDraft struct {
	MatchScore     float64  `json:"match_score"`
	MatchReasoning string   `json:"match_reasoning"`
	MissingSkills  []string `json:"missing_skills"`
}

// Match scores every job concurrently and returns the subset whose score
// meets the threshold (inclusive). Jobs below the threshold keep status new;
// rejection is a user-driven status, never a pipeline outcome.
func (m *Matcher) Match(ctx context.Context, jobs []types.Job, profile *types.Profile) MatchOutput {
	scored := make([]types.Job, len(jobs))
	copy(scored, jobs)

	g, gCtx := errgroup.WithContext(ctx)
	for i := range scored {
		i := i
		g.Go(func() error {
			draft, err := m.scoreJob(gCtx, &scored[i], profile)
			if err != nil {
				m.log.Warn("scoring failed, leaving job unscored",
					zap.String("title", scored[i].Title),
					zap.String("company", scored[i].Company),
					zap.Error(err))
				return nil
			}

			score := clampScore(draft.MatchScore)
			scored[i].MatchScore = &score
			scored[i].MatchReasoning = draft.MatchReasoning
			scored[i].MissingSkills = draft.MissingSkills
			if score >= m.threshold {
				scored[i].Status = types.StatusMatched
			}
			return nil
		})
	}
	_ = g.Wait()

	var out MatchOutput
	var sum float64
	for _, job := range scored {
		if job.MatchScore == nil {
			continue
		}
		out.Scored++
		sum += *job.MatchScore
		if *job.MatchScore >= m.threshold {
			out.Matched = append(out.Matched, job)
		}
	}
	if out.Scored > 0 {
		out.AvgScore = sum / float64(out.Scored)
	}

	m.log.Info("matcher finished",
		zap.Int("scored", out.Scored),
		zap.Int("matched", len(out.Matched)),
		zap.Float64("avg_score", out.AvgScore))

	return out
}

func (m *Matcher) scoreJob(ctx context.Context, job *types.Job, profile *types.Profile) (*matchDraft, error) {
	prompt := llm.BuildExtractionPrompt(llm.MatchScoreSchema(), scoringInput(job, profile))
	response, err := m.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONBlock(response)
	if err := schemas.ValidateMatchScore([]byte(cleaned)); err != nil {
		return nil, err
	}

	var draft matchDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// scoringInput renders the job and profile fields the model should weigh.
func scoringInput(job *types.Job, profile *types.Profile) string {
	description := job.Description
	if len(description) > maxDescriptionChars {
		description = description[:maxDescriptionChars]
	}

	var sb strings.Builder
	sb.WriteString("JOB POSTING:\n")
	fmt.Fprintf(&sb, "Title: %s\n", job.Title)
	fmt.Fprintf(&sb, "Company: %s\n", job.Company)
	fmt.Fprintf(&sb, "Location: %s\n", job.Location)
	fmt.Fprintf(&sb, "Remote: %t\n", job.Remote)
	if len(job.SkillsExtracted) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(job.SkillsExtracted, ", "))
	}
	if len(job.Tags) > 0 {
		fmt.Fprintf(&sb, "Tags: %s\n", strings.Join(job.Tags, ", "))
	}
	fmt.Fprintf(&sb, "Description: %s\n", description)

	sb.WriteString("\nCANDIDATE PROFILE:\n")
	fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(profile.SearchKeywords(), ", "))
	if len(profile.Roles) > 0 {
		fmt.Fprintf(&sb, "Target roles: %s\n", strings.Join(profile.Roles, ", "))
	}
	fmt.Fprintf(&sb, "Years of experience: %d\n", profile.ExperienceYears)
	fmt.Fprintf(&sb, "Location: %s\n", profile.Location)
	fmt.Fprintf(&sb, "Remote only: %t\n", profile.RemoteOnly)

	return sb.String()
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
