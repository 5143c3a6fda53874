package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-match/internal/analysis"
	"github.com/jonathan/resume-match/internal/config"
	"github.com/jonathan/resume-match/internal/ingestion"
	"github.com/jonathan/resume-match/internal/logger"
	"github.com/jonathan/resume-match/internal/observability"
)

var (
	analyzeResumePath string
	analyzeJobPath    string
	analyzeConfigPath string
	analyzeCandidate  string
	analyzeJobTitle   string
	analyzeCompany    string
	analyzeVerbose    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one résumé against one job description",
	Long: `Analyze loads a résumé and a job description (plain text, PDF, or HTML),
extracts structured facts, scores the match, and prints the result as JSON.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResumePath, "resume", "", "Path to the résumé file (required)")
	analyzeCmd.Flags().StringVar(&analyzeJobPath, "job", "", "Path to the job description file (required)")
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to a JSON config file")
	analyzeCmd.Flags().StringVar(&analyzeCandidate, "candidate", "", "Candidate name for the record")
	analyzeCmd.Flags().StringVar(&analyzeJobTitle, "title", "", "Job title for the record")
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "Company name for the record")
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "Print extracted records and the score breakdown")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	loaded, err := loadConfig(analyzeConfigPath)
	if err != nil {
		return err
	}
	cfg := loaded.MergeWithDefaults(config.Config{Verbose: analyzeVerbose})

	log, err := logger.New(false, cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	resumeText, err := ingestion.LoadDocument(analyzeResumePath)
	if err != nil {
		return fmt.Errorf("failed to load resume: %w", err)
	}
	jobText, err := ingestion.LoadDocument(analyzeJobPath)
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}

	ctx := cmd.Context()
	runner, cleanup, err := buildRunner(ctx, &cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := runner.Run(ctx, analysis.Request{
		ResumeText:    resumeText,
		JobText:       jobText,
		CandidateName: analyzeCandidate,
		JobTitle:      analyzeJobTitle,
		Company:       analyzeCompany,
	})
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintResumeProfile(&result.ResumeProfile)
		printer.PrintJobRequirements(&result.JobRequirements)
		printer.PrintScoreBreakdown(&result.ScoreBreakdown)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
