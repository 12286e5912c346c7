package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daniel/jobscout/internal/config"
	"github.com/daniel/jobscout/internal/sources"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full collection pipeline end-to-end",
	Long: `Runs Scout -> Normalizer -> Matcher -> Reviewer synchronously and prints the
run summary. Configuration can be loaded from a JSON file using --config;
command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath string
	runUserID     string
	runSources    []string
	runKeywords   []string
	runLocation   string
	runThreshold  float64
	runAPIKey     string
	runDBURL      string
	runJSONLogs   bool
	runDebug      bool
)

func init() {
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	runCommand.Flags().StringVarP(&runUserID, "user", "u", "", "User id owning the run (defaults to JOBSCOUT_USER_ID env var)")
	runCommand.Flags().StringSliceVar(&runSources, "sources", nil, "Sources to scan (default: all)")
	runCommand.Flags().StringSliceVarP(&runKeywords, "keywords", "k", nil, "Search keywords (default: profile keywords)")
	runCommand.Flags().StringVarP(&runLocation, "location", "l", "", "Search location (default: profile location)")
	runCommand.Flags().Float64Var(&runThreshold, "threshold", 0, "Match score threshold (default 0.7)")
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	runCommand.Flags().StringVar(&runDBURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	runCommand.Flags().BoolVar(&runJSONLogs, "json-logs", false, "Emit JSON logs instead of console logs")
	runCommand.Flags().BoolVarP(&runDebug, "verbose", "v", false, "Print debug logs")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(runConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("user") {
			cfg.UserID = runUserID
		}
		if cmd.Flags().Changed("sources") {
			cfg.Sources = runSources
		}
		if cmd.Flags().Changed("keywords") {
			cfg.Keywords = runKeywords
		}
		if cmd.Flags().Changed("location") {
			cfg.Location = runLocation
		}
		if cmd.Flags().Changed("threshold") {
			cfg.MatchThreshold = runThreshold
		}
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey = runAPIKey
		}
		if cmd.Flags().Changed("db-url") {
			cfg.DatabaseURL = runDBURL
		}
		cfg.JSONLogs = cfg.JSONLogs || runJSONLogs
		cfg.Debug = cfg.Debug || runDebug
	})
	if err != nil {
		return err
	}

	a, cleanup, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	query := sources.Query{Keywords: cfg.Keywords, Location: cfg.Location}
	run, err := a.orch.Run(ctx, cfg.UserID, cfg.Sources, query)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Run %s finished with status %s\n", run.ID, run.Status)
	fmt.Fprintf(os.Stdout, "  jobs found:   %d\n", run.JobsFound)
	fmt.Fprintf(os.Stdout, "  jobs matched: %d\n", run.JobsMatched)
	fmt.Fprintf(os.Stdout, "  avg score:    %.2f\n", run.AvgScore)
	for _, msg := range run.Errors {
		fmt.Fprintf(os.Stdout, "  error: %s\n", msg)
	}
	return nil
}
