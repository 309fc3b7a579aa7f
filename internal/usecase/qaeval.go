package usecase

import (
	"log/slog"

	"github.com/resumind/interview-insight/internal/adapter/observability"
	"github.com/resumind/interview-insight/internal/domain"
)

// evaluatePair scores and critiques one question/answer exchange. Failures
// are independent per pair: each degrades to the same fixed fallback record
// without affecting the others.
func (s ReportService) evaluatePair(ctx domain.Context, pair domain.QAPair) domain.QAFeedback {
	raw, err := s.AI.ChatJSON(ctx, assessorSystemPrompt, buildPairEvalPrompt(pair.Question, pair.Answer), 400)
	if err != nil {
		slog.Warn("per-question evaluation failed, using fallback",
			slog.Int("pair_index", pair.Index), slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("qa_eval").Inc()
		return qaFallback()
	}

	var parsed struct {
		Score           *int     `json:"score"`
		Strengths       []string `json:"strengths"`
		Suggestions     []string `json:"suggestions"`
		ReferenceAnswer *string  `json:"reference_answer"`
	}
	if err := decodeJSON(raw, &parsed); err != nil {
		slog.Warn("per-question evaluation unparsable, using fallback",
			slog.Int("pair_index", pair.Index), slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("qa_eval").Inc()
		return qaFallback()
	}

	fb := domain.QAFeedback{
		Score:           7,
		Strengths:       parsed.Strengths,
		Suggestions:     parsed.Suggestions,
		ReferenceAnswer: parsed.ReferenceAnswer,
	}
	if parsed.Score != nil {
		fb.Score = clampScore(*parsed.Score, 1, 10)
	}
	if len(fb.Strengths) == 0 {
		fb.Strengths = []string{"answer is relevant to the question"}
	}
	if len(fb.Suggestions) == 0 {
		fb.Suggestions = []string{"could provide more detail"}
	}
	return fb
}

func qaFallback() domain.QAFeedback {
	return domain.QAFeedback{
		Score:           7,
		Strengths:       []string{"answer stays on topic"},
		Suggestions:     []string{"could be more specific"},
		ReferenceAnswer: nil,
	}
}
