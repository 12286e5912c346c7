package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print the jobscout version",
	Run: func(*cobra.Command, []string) {
		fmt.Fprintf(os.Stdout, "jobscout %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCommand)
}
