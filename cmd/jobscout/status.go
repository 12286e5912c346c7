package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daniel/jobscout/internal/config"
)

var statusCommand = &cobra.Command{
	Use:   "status",
	Short: "Show the current run state and recent run history",
	RunE:  statusCmd,
}

var (
	statusConfigPath string
	statusUserID     string
	statusLimit      int
)

func init() {
	statusCommand.Flags().StringVar(&statusConfigPath, "config", "", "Path to config.json file")
	statusCommand.Flags().StringVarP(&statusUserID, "user", "u", "", "User id (defaults to JOBSCOUT_USER_ID env var)")
	statusCommand.Flags().IntVar(&statusLimit, "limit", 5, "How many recent runs to show")

	rootCmd.AddCommand(statusCommand)
}

func statusCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(statusConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("user") {
			cfg.UserID = statusUserID
		}
		// Status never calls the model, but the shared bootstrap still
		// validates the key; fill a placeholder when it is absent.
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

	state, err := a.orch.Status(ctx, cfg.UserID)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "State: %s\n", state)

	runs, err := a.store.RecentRuns(ctx, cfg.UserID, statusLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs yet.")
		return nil
	}

	fmt.Fprintln(os.Stdout, "\nRecent runs:")
	for _, run := range runs {
		completed := "-"
		if run.CompletedAt != nil {
			completed = run.CompletedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(os.Stdout, "  %s  %-9s  found=%-3d matched=%-3d avg=%.2f  started=%s completed=%s\n",
			run.ID, run.Status, run.JobsFound, run.JobsMatched, run.AvgScore,
			run.StartedAt.Format("2006-01-02 15:04:05"), completed)
	}

	entries, err := a.store.RecentTimeline(ctx, cfg.UserID, statusLimit*2)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		fmt.Fprintln(os.Stdout, "\nRecent timeline:")
		for _, e := range entries {
			fmt.Fprintf(os.Stdout, "  %s  %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Step)
		}
	}
	return nil
}
