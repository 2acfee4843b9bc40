package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tentor",
	Short: "Interactive LiU course exam search",
	Long: `Tentor is a terminal companion to the LiU exam archive.

It searches the course catalog with the same substring matching the web
frontend uses and resolves a course code to its exam listing route.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
