package usecase

import (
	"fmt"
	"log/slog"

	"github.com/resumind/interview-insight/internal/adapter/observability"
	"github.com/resumind/interview-insight/internal/domain"
)

// generateFeedback produces the whole-interview highlight and improvement
// lists. On any failure it falls back to a templated summary built from the
// session's job position and the pair count.
func (s ReportService) generateFeedback(ctx domain.Context, pairs []domain.QAPair, session domain.InterviewSession) domain.NarrativeFeedback {
	raw, err := s.AI.ChatJSON(ctx, interviewerSystemPrompt, buildFeedbackPrompt(numberedTranscriptBlock(pairs)), 800)
	if err != nil {
		slog.Warn("narrative feedback failed, using fallback", slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("feedback").Inc()
		return feedbackFallback(session.JobPosition, len(pairs))
	}

	var parsed domain.NarrativeFeedback
	if err := decodeJSON(raw, &parsed); err != nil {
		slog.Warn("narrative feedback unparsable, using fallback", slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("feedback").Inc()
		return feedbackFallback(session.JobPosition, len(pairs))
	}
	if parsed.Highlights == nil {
		parsed.Highlights = []string{}
	}
	if parsed.Improvements == nil {
		parsed.Improvements = []string{}
	}
	return parsed
}

func feedbackFallback(jobPosition string, pairCount int) domain.NarrativeFeedback {
	if jobPosition == "" {
		jobPosition = "the target role"
	}
	return domain.NarrativeFeedback{
		Highlights: []string{
			fmt.Sprintf("Showed professional grounding when answering questions related to %s", jobPosition),
			fmt.Sprintf("Answered %d questions, demonstrating steady communication throughout", pairCount),
		},
		Improvements: []string{
			"Support technical answers with more concrete project experience and quantifiable data",
			"Use a structured situation/task/action/result approach when answering behavioral questions",
		},
	}
}
