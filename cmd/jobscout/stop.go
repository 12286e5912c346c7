package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daniel/jobscout/internal/config"
	"github.com/daniel/jobscout/internal/pipeline"
)

var stopCommand = &cobra.Command{
	Use:   "stop",
	Short: "Stop the active run",
	Long: `Marks the active run as stopped. In-flight source and model calls are not
cancelled; they finish on their own and their final status write may follow.`,
	RunE: stopCmd,
}

var (
	stopConfigPath string
	stopUserID     string
)

func init() {
	stopCommand.Flags().StringVar(&stopConfigPath, "config", "", "Path to config.json file")
	stopCommand.Flags().StringVarP(&stopUserID, "user", "u", "", "User id (defaults to JOBSCOUT_USER_ID env var)")

	rootCmd.AddCommand(stopCommand)
}

func stopCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadMergedConfig(stopConfigPath, func(cfg *config.Config) {
		if cmd.Flags().Changed("user") {
			cfg.UserID = stopUserID
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

	if err := a.orch.StopRun(ctx, cfg.UserID); err != nil {
		if errors.Is(err, pipeline.ErrNoActiveRun) {
			fmt.Fprintln(os.Stdout, "No active run.")
			return nil
		}
		return err
	}

	fmt.Fprintln(os.Stdout, "Run stopped.")
	return nil
}
