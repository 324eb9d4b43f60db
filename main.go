// Command cvmatch scores résumés against job descriptions, as a queue worker, an HTTP API
// or a one-shot CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "cvmatch",
	Short:         "Résumé/job description matching",
	Long:          "cvmatch compares a résumé with a job description and produces a similarity score and a sectioned feedback report.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
