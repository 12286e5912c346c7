package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daniel/jobscout/internal/config"
	"github.com/daniel/jobscout/internal/types"
)

var profileCommand = &cobra.Command{
	Use:   "profile",
	Short: "Show or update the candidate profile",
	Long: `Without flags, prints the stored profile. With flags, creates or replaces
the profile used for search queries and match scoring.`,
	RunE: profileCmd,
}

var (
	profileConfigPath string
	profileUserID     string
	profileSkills     []string
	profileKeywords   []string
	profileRoles      []string
	profileYears      int
	profileLocation   string
	profileRemoteOnly bool
)

func init() {
	profileCommand.Flags().StringVar(&profileConfigPath, "config", "", "Path to config.json file")
	profileCommand.Flags().StringVarP(&profileUserID, "user", "u", "", "User id (defaults to JOBSCOUT_USER_ID env var)")
	profileCommand.Flags().StringSliceVar(&profileSkills, "skills", nil, "Skills, comma separated")
	profileCommand.Flags().StringSliceVar(&profileKeywords, "keywords", nil, "Search keywords (default: skills)")
	profileCommand.Flags().StringSliceVar(&profileRoles, "roles", nil, "Target roles")
	profileCommand.Flags().IntVar(&profileYears, "years", 0, "Years of experience")
	profileCommand.Flags().StringVar(&profileLocation, "location", "", "Preferred location")
	profileCommand.Flags().BoolVar(&profileRemoteOnly, "remote-only", false, "Only consider remote jobs")

	rootCmd.AddCommand(profileCommand)
}

func profileCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(profileConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("user") {
			cfg.UserID = profileUserID
		}
		if cfg.APIKey == "" && os.Getenv("GEMINI_API_KEY") == "" {
			cfg.APIKey = "unused"
		}
	})
	if err != nil {
		return err
	}

	a, cleanup, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	updating := cmd.Flags().Changed("skills") || cmd.Flags().Changed("keywords") ||
		cmd.Flags().Changed("roles") || cmd.Flags().Changed("years") ||
		cmd.Flags().Changed("location") || cmd.Flags().Changed("remote-only")

	if updating {
		profile := &types.Profile{
			UserID:          cfg.UserID,
			Skills:          profileSkills,
			Keywords:        profileKeywords,
			Roles:           profileRoles,
			ExperienceYears: profileYears,
			Location:        profileLocation,
			RemoteOnly:      profileRemoteOnly,
		}
		if err := a.store.UpsertProfile(ctx, profile); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Profile saved.")
		return nil
	}

	profile, err := a.store.GetProfile(ctx, cfg.UserID)
	if err != nil {
		return err
	}
	if profile == nil {
		fmt.Fprintln(os.Stdout, "No profile stored. Use --skills to create one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "User:        %s\n", profile.UserID)
	fmt.Fprintf(os.Stdout, "Skills:      %s\n", strings.Join(profile.Skills, ", "))
	fmt.Fprintf(os.Stdout, "Keywords:    %s\n", strings.Join(profile.SearchKeywords(), ", "))
	fmt.Fprintf(os.Stdout, "Roles:       %s\n", strings.Join(profile.Roles, ", "))
	fmt.Fprintf(os.Stdout, "Experience:  %d years\n", profile.ExperienceYears)
	fmt.Fprintf(os.Stdout, "Location:    %s\n", profile.Location)
	fmt.Fprintf(os.Stdout, "Remote only: %t\n", profile.RemoteOnly)
	return nil
}
