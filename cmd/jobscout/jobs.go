package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daniel/jobscout/internal/config"
	"github.com/daniel/jobscout/internal/db"
	"github.com/daniel/jobscout/internal/types"
)

var jobsCommand = &cobra.Command{
	Use:   "jobs",
	Short: "List stored jobs",
	RunE:  jobsCmd,
}

var (
	jobsConfigPath string
	jobsUserID     string
	jobsStatus     string
	jobsSource     string
	jobsMinScore   float64
	jobsLimit      int
	jobsCounts     bool
)

func init() {
	jobsCommand.Flags().StringVar(&jobsConfigPath, "config", "", "Path to config.json file")
	jobsCommand.Flags().StringVarP(&jobsUserID, "user", "u", "", "User id (defaults to JOBSCOUT_USER_ID env var)")
	jobsCommand.Flags().StringVar(&jobsStatus, "status", "", "Filter by status (new, matched, applied, rejected, interview, offer)")
	jobsCommand.Flags().StringVar(&jobsSource, "source", "", "Filter by source")
	jobsCommand.Flags().Float64Var(&jobsMinScore, "min-score", 0, "Filter by minimum match score")
	jobsCommand.Flags().IntVar(&jobsLimit, "limit", 20, "How many jobs to show")
	jobsCommand.Flags().BoolVar(&jobsCounts, "counts", false, "Show per-status and per-source counts instead of a listing")

	rootCmd.AddCommand(jobsCommand)
}

func jobsCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(jobsConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("user") {
			cfg.UserID = jobsUserID
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

	if jobsCounts {
		return printCounts(ctx, a, cfg.UserID)
	}

	opts := db.ListJobsOptions{Limit: jobsLimit}
	if jobsStatus != "" {
		status := types.JobStatus(jobsStatus)
		opts.Status = &status
	}
	if jobsSource != "" {
		opts.Source = &jobsSource
	}
	if cmd.Flags().Changed("min-score") {
		opts.MinScore = &jobsMinScore
	}

	jobs, total, err := a.store.ListJobs(ctx, cfg.UserID, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%d job(s), showing %d:\n", total, len(jobs))
	for _, job := range jobs {
		fmt.Fprintf(os.Stdout, "  [%.2f] %-9s %s at %s (%s) %s\n",
			job.Score(), job.Status, job.Title, job.Company, job.Source, job.ListingURL)
	}
	return nil
}

var setStatusCommand = &cobra.Command{
	Use:   "set-status <job-id> <status>",
	Short: "Change a stored job's status",
	Args:  cobra.ExactArgs(2),
	RunE:  setStatusCmd,
}

var (
	setStatusConfigPath string
	setStatusUserID     string
)

func init() {
	setStatusCommand.Flags().StringVar(&setStatusConfigPath, "config", "", "Path to config.json file")
	setStatusCommand.Flags().StringVarP(&setStatusUserID, "user", "u", "", "User id (defaults to JOBSCOUT_USER_ID env var)")

	jobsCommand.AddCommand(setStatusCommand)
}

func setStatusCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	status := types.JobStatus(args[1])
	switch status {
	case types.StatusNew, types.StatusMatched, types.StatusApplied,
		types.StatusRejected, types.StatusInterview, types.StatusOffer:
	default:
		return fmt.Errorf("unknown status %q", args[1])
	}

	cfg, err := loadMergedConfig(setStatusConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("user") {
			cfg.UserID = setStatusUserID
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

	updated, err := a.store.UpdateJobStatus(ctx, cfg.UserID, args[0], status)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("job %s not found", args[0])
	}

	job, err := a.store.GetJobByID(ctx, cfg.UserID, args[0])
	if err != nil {
		return err
	}
	if job != nil {
		fmt.Fprintf(os.Stdout, "%s at %s is now %s\n", job.Title, job.Company, job.Status)
	}
	return nil
}

func printCounts(ctx context.Context, a *app, userID string) error {
	byStatus, err := a.store.CountJobsByStatus(ctx, userID)
	if err != nil {
		return err
	}
	bySource, err := a.store.CountJobsBySource(ctx, userID)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "By status:")
	for status, count := range byStatus {
		fmt.Fprintf(os.Stdout, "  %-10s %d\n", status, count)
	}
	fmt.Fprintln(os.Stdout, "By source:")
	for source, count := range bySource {
		fmt.Fprintf(os.Stdout, "  %-12s %d\n", source, count)
	}
	return nil
}
