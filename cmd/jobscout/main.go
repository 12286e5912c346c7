// Package main provides the jobscout CLI: collect, normalize, score, and
// persist job postings for one candidate profile.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "Job posting collection and matching pipeline",
	Long: `jobscout collects job postings from multiple sources, deduplicates and
normalizes them, scores them against your profile, and stores the matches.`,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
