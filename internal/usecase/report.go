package usecase

import (
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resumind/interview-insight/internal/adapter/observability"
	"github.com/resumind/interview-insight/internal/domain"
)

// ReportService synthesizes the full interview report from a completed
// session: transcript reconciliation, four independent analyses, one
// evaluation per question/answer pair, and final assembly.
type ReportService struct {
	AI domain.AIClient
}

// NewReportService constructs a ReportService with its AI dependency.
func NewReportService(ai domain.AIClient) ReportService {
	return ReportService{AI: ai}
}

// GenerateReport builds the report for one session. The only fatal condition
// is an empty reconciled transcript; every analysis failure past that point
// is absorbed into the component's deterministic fallback, so a report is
// always returned once a transcript exists.
func (s ReportService) GenerateReport(ctx domain.Context, session domain.InterviewSession, resumeTitle string) (domain.Report, error) {
	pairs := ReconcileTranscript(session)
	if len(pairs) == 0 {
		observability.ReportFailuresTotal.Inc()
		return domain.Report{}, fmt.Errorf("%w: questions=%d answers=%d",
			domain.ErrNoTranscript, len(session.Questions), len(session.Answers))
	}

	slog.Info("generating interview report",
		slog.String("session_id", session.ID),
		slog.Int("pairs", len(pairs)),
		slog.Int("questions", len(session.Questions)))

	var (
		scores  domain.CompetencyScores
		fb      domain.NarrativeFeedback
		kw      domain.KeywordCoverage
		freq    []domain.WordCount
		details = make([]domain.QuestionDetail, len(pairs))
	)

	// Scatter-gather: the four analyses are independent of each other, and
	// each pair evaluation is independent of everything else. Every task
	// absorbs its own failure into a fallback, so Wait never errors.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scores = s.analyzeCompetency(gctx, pairs, session)
		return nil
	})
	g.Go(func() error {
		fb = s.generateFeedback(gctx, pairs, session)
		return nil
	})
	g.Go(func() error {
		kw = AnalyzeKeywordCoverage(pairs, session.JDContent)
		return nil
	})
	g.Go(func() error {
		freq = AnalyzeFrequentWords(pairs)
		return nil
	})
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			details[i] = domain.QuestionDetail{
				Question: pair.Question,
				Answer:   pair.Answer,
				Feedback: s.evaluatePair(gctx, pair),
			}
			return nil
		})
	}
	_ = g.Wait()

	overall := 0
	if session.OverallScore != nil {
		overall = *session.OverallScore
	}
	title := resumeTitle
	if title == "" {
		title = session.ResumeTitle
	}
	if title == "" {
		title = "Resume"
	}
	position := session.JobPosition
	if position == "" {
		position = "unspecified"
	}

	report := domain.Report{
		ID:               session.ID,
		ResumeTitle:      title,
		JobPosition:      position,
		InterviewMode:    interviewModeName(session.Mode),
		JDContent:        session.JDContent,
		OverallScore:     overall,
		PerformanceLevel: performanceLevel(overall),
		InterviewDate:    formatInterviewDate(session.CreatedAt),
		DurationMinutes:  durationMinutes(session),
		TotalQuestions:   len(session.Questions),
		CompetencyScores: scores,
		Highlights:       fb.Highlights,
		Improvements:     fb.Improvements,
		Conversation:     details,
		JDKeywords:       kw.Keywords,
		CoverageRate:     kw.CoverageRate,
		FrequentWords:    freq,
	}

	observability.ReportsGeneratedTotal.Inc()
	observability.OverallScoreHistogram.Observe(float64(overall))
	return report, nil
}

// interviewModeName maps a stored mode to its display name, defaulting to
// the comprehensive mode for unknown values.
func interviewModeName(mode string) string {
	switch mode {
	case domain.ModeTechnical:
		return "technical deep-dive"
	case domain.ModeBehavioral:
		return "behavioral interview"
	default:
		return "comprehensive interview"
	}
}

// performanceLevel maps an overall score to its tier; first match wins.
func performanceLevel(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 80:
		return "good"
	case score >= 70:
		return "average"
	case score >= 60:
		return "needs improvement"
	default:
		return "poor"
	}
}

func formatInterviewDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("January 2, 2006")
}

// durationMinutes derives the interview length: the timestamp delta when both
// timestamps exist (at least 1), otherwise 5 minutes per question, otherwise
// a flat 25.
func durationMinutes(session domain.InterviewSession) int {
	if !session.CreatedAt.IsZero() && !session.UpdatedAt.IsZero() {
		mins := int(session.UpdatedAt.Sub(session.CreatedAt) / time.Minute)
		if mins < 1 {
			mins = 1
		}
		return mins
	}
	if n := len(session.Questions); n > 0 {
		return n * 5
	}
	return 25
}
