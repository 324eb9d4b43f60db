package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/muhammadolammi/cvmatch/internal/analysis"
	"github.com/muhammadolammi/cvmatch/internal/document"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyse a single résumé against a job description",
	Long:  "Reads a résumé (PDF, DOCX or plain text) and a plain-text job description and prints the report.",
	RunE:  runAnalyze,
}

var (
	analyzeCV       string
	analyzeJob      string
	analyzeStrategy string
	analyzeJSON     bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeCV, "cv", "c", "", "Path to the résumé file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to the job description text file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeStrategy, "strategy", "s", string(analysis.StrategyLexical), "Analysis strategy: lexical or narrative")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON")

	if err := analyzeCmd.MarkFlagRequired("cv"); err != nil {
		panic(fmt.Sprintf("failed to mark cv flag as required: %v", err))
	}
	if err := analyzeCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	strategy, err := analysis.ParseStrategy(analyzeStrategy)
	if err != nil {
		return err
	}

	cvText, err := readCV(analyzeCV)
	if err != nil {
		return err
	}
	job, err := os.ReadFile(analyzeJob)
	if err != nil {
		return fmt.Errorf("failed to read job description %s: %w", analyzeJob, err)
	}

	analyzer, err := buildAnalyzer(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	report := analyzer.Analyze(cmd.Context(), cvText, string(job), analysis.Options{Strategy: strategy})
	return printReport(cmd.OutOrStdout(), report, analyzeJSON)
}

func readCV(path string) (string, error) {
	format, err := document.FormatFromFilename(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read résumé %s: %w", path, err)
	}
	return document.ExtractText(format, data)
}

func printReport(w io.Writer, report analysis.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	mode := "lexical"
	if report.UsingAI {
		mode = "narrative"
	}
	_, err := fmt.Fprintf(w, "Score: %.0f (%s)\n\n%s\n", report.SimilarityScore, mode, report.Feedback)
	return err
}
