package usecase

import (
	"log/slog"
	"strconv"

	"github.com/resumind/interview-insight/internal/adapter/observability"
	"github.com/resumind/interview-insight/internal/domain"
)

// analyzeCompetency asks the model to rate the transcript across the five
// fixed dimensions. Any call or parse failure degrades to a deterministic
// fallback derived from the session's overall score; this path never fails.
func (s ReportService) analyzeCompetency(ctx domain.Context, pairs []domain.QAPair, session domain.InterviewSession) domain.CompetencyScores {
	raw, err := s.AI.ChatJSON(ctx, assessorSystemPrompt, buildCompetencyPrompt(transcriptBlock(pairs)), 500)
	if err != nil {
		slog.Warn("competency scoring failed, using fallback", slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("competency").Inc()
		return competencyFallback(session.OverallScore)
	}

	var parsed map[string]any
	if err := decodeJSON(raw, &parsed); err != nil {
		slog.Warn("competency response unparsable, using fallback", slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("competency").Inc()
		return competencyFallback(session.OverallScore)
	}

	return domain.CompetencyScores{
		JobFit:            clampScore(parsed["job_fit"], 0, 100),
		TechnicalDepth:    clampScore(parsed["technical_depth"], 0, 100),
		ProjectExposition: clampScore(parsed["project_exposition"], 0, 100),
		Communication:     clampScore(parsed["communication"], 0, 100),
		Behavioral:        clampScore(parsed["behavioral"], 0, 100),
	}
}

// competencyFallback derives the five scores from the existing overall score
// (75 when absent or zero), each clamped into [60,100].
func competencyFallback(overall *int) domain.CompetencyScores {
	base := 75
	if overall != nil && *overall != 0 {
		base = *overall
	}
	clamp := func(v int) int {
		if v < 60 {
			return 60
		}
		if v > 100 {
			return 100
		}
		return v
	}
	return domain.CompetencyScores{
		JobFit:            clamp(base - 5),
		TechnicalDepth:    clamp(base + 5),
		ProjectExposition: clamp(base - 10),
		Communication:     clamp(base),
		Behavioral:        clamp(base - 8),
	}
}

// clampScore coerces a decoded JSON value to an int within [lo,hi].
// Non-numeric or missing values collapse to lo.
func clampScore(v any, lo, hi int) int {
	f, ok := toFloat(v)
	if !ok {
		return lo
	}
	n := int(f)
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
