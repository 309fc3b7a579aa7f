// Command insight runs the resume and interview analysis pipeline from the
// command line: it parses resume text and turns completed interview sessions
// into reports. Transport and storage belong to the embedding service.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/resumind/interview-insight/internal/adapter/ai/openrouter"
	"github.com/resumind/interview-insight/internal/adapter/observability"
	"github.com/resumind/interview-insight/internal/config"
	"github.com/resumind/interview-insight/internal/domain"
	"github.com/resumind/interview-insight/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "insight",
		Short:         "AI interview analysis pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newReportCmd(), newParseCmd())
	return root
}

func setup() (domain.AIClient, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(observability.SetupLogger(cfg))
	observability.InitMetrics()
	return openrouter.New(cfg), nil
}

func newReportCmd() *cobra.Command {
	var sessionPath, resumeTitle string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate an interview report from a session JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ai, err := setup()
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(sessionPath)
			if err != nil {
				return fmt.Errorf("read session: %w", err)
			}
			var session domain.InterviewSession
			if err := json.Unmarshal(raw, &session); err != nil {
				return fmt.Errorf("decode session: %w", err)
			}

			report, err := usecase.NewReportService(ai).GenerateReport(cmd.Context(), session, resumeTitle)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&sessionPath, "session", "", "path to the interview session JSON file")
	cmd.Flags().StringVar(&resumeTitle, "resume-title", "", "resume title shown in the report")
	_ = cmd.MarkFlagRequired("session")
	return cmd
}

func newParseCmd() *cobra.Command {
	var filePath string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse resume text into structured JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ai, err := setup()
			if err != nil {
				return err
			}

			text, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("read resume: %w", err)
			}

			content := usecase.NewResumeService(ai).Parse(cmd.Context(), string(text))
			return writeJSON(cmd.OutOrStdout(), content)
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "path to the plain-text resume")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
