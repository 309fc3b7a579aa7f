package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resumind/interview-insight/internal/domain"
	"github.com/resumind/interview-insight/internal/usecase"
)

func intPtr(v int) *int { return &v }

func completedSession() domain.InterviewSession {
	created := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	return domain.InterviewSession{
		ID:          "sess-1",
		JobPosition: "Backend Engineer",
		JDContent:   "We need React and 团队协作 skills",
		Mode:        domain.ModeTechnical,
		Questions: []domain.Question{
			{Question: "Q1", Type: domain.QuestionGeneral},
			{Question: "Q2", Type: domain.QuestionGeneral},
			{Question: "Q3", Type: domain.QuestionGeneral},
		},
		Answers: []domain.Answer{
			{Answer: "I have used react in production 项目 经验 丰富"},
			{Answer: "我重视 团队协作"},
		},
		OverallScore: intPtr(80),
		Status:       domain.SessionCompleted,
		CreatedAt:    created,
		UpdatedAt:    created.Add(42 * time.Minute),
	}
}

func TestGenerateReport_EmptySessionIsFatal(t *testing.T) {
	svc := usecase.NewReportService(failingAI())
	_, err := svc.GenerateReport(context.Background(), domain.InterviewSession{ID: "empty"}, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoTranscript))
	assert.Contains(t, err.Error(), "questions=0")
	assert.Contains(t, err.Error(), "answers=0")
}

func TestGenerateReport_MismatchedCountsInError(t *testing.T) {
	session := domain.InterviewSession{
		Questions: []domain.Question{{Question: "Q1"}, {Question: "Q2"}, {Question: "Q3"}},
		Answers:   []domain.Answer{{}, {}},
	}
	svc := usecase.NewReportService(failingAI())
	_, err := svc.GenerateReport(context.Background(), session, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "questions=3")
	assert.Contains(t, err.Error(), "answers=2")
}

func TestGenerateReport_HappyPath(t *testing.T) {
	ai := scriptedAI()
	svc := usecase.NewReportService(ai)

	report, err := svc.GenerateReport(context.Background(), completedSession(), "My Resume")
	require.NoError(t, err)

	assert.Equal(t, "sess-1", report.ID)
	assert.Equal(t, "My Resume", report.ResumeTitle)
	assert.Equal(t, "Backend Engineer", report.JobPosition)
	assert.Equal(t, "technical deep-dive", report.InterviewMode)
	assert.Equal(t, 80, report.OverallScore)
	assert.Equal(t, "good", report.PerformanceLevel)
	assert.Equal(t, "March 10, 2025", report.InterviewDate)
	assert.Equal(t, 42, report.DurationMinutes)
	assert.Equal(t, 3, report.TotalQuestions)

	// scripted provider returned out-of-range and non-numeric values
	assert.Equal(t, domain.CompetencyScores{
		JobFit:            85,
		TechnicalDepth:    100, // clamped down from 150
		ProjectExposition: 0,   // clamped up from -3
		Communication:     88,
		Behavioral:        0, // non-numeric defaults to 0
	}, report.CompetencyScores)

	assert.Equal(t, []string{"clear articulation", "strong ownership"}, report.Highlights)
	assert.Equal(t, []string{"quantify impact"}, report.Improvements)

	require.Len(t, report.Conversation, 2)
	for _, d := range report.Conversation {
		assert.Equal(t, 8, d.Feedback.Score)
		require.NotNil(t, d.Feedback.ReferenceAnswer)
	}

	assert.NotEmpty(t, report.JDKeywords)
	assert.GreaterOrEqual(t, report.CoverageRate, 0)
	assert.LessOrEqual(t, report.CoverageRate, 100)

	// 1 competency + 1 feedback + 2 pair evaluations
	assert.Equal(t, 4, ai.callCount())
}

func TestGenerateReport_AllFallbacksWhenProviderDown(t *testing.T) {
	svc := usecase.NewReportService(failingAI())
	session := completedSession()

	report, err := svc.GenerateReport(context.Background(), session, "")
	require.NoError(t, err)

	// competency fallback derived from overall_score=80, clamped to [60,100]
	assert.Equal(t, domain.CompetencyScores{
		JobFit:            75,
		TechnicalDepth:    85,
		ProjectExposition: 70,
		Communication:     80,
		Behavioral:        72,
	}, report.CompetencyScores)

	require.Len(t, report.Highlights, 2)
	assert.Contains(t, report.Highlights[0], "Backend Engineer")
	require.Len(t, report.Improvements, 2)

	require.Len(t, report.Conversation, 2)
	for _, d := range report.Conversation {
		assert.Equal(t, 7, d.Feedback.Score)
		assert.Equal(t, []string{"answer stays on topic"}, d.Feedback.Strengths)
		assert.Equal(t, []string{"could be more specific"}, d.Feedback.Suggestions)
		assert.Nil(t, d.Feedback.ReferenceAnswer)
	}
}

func TestGenerateReport_IdempotentWithDeterministicFallbacks(t *testing.T) {
	svc := usecase.NewReportService(failingAI())
	session := completedSession()

	first, err := svc.GenerateReport(context.Background(), session, "")
	require.NoError(t, err)
	second, err := svc.GenerateReport(context.Background(), session, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateReport_LegacySession(t *testing.T) {
	session := domain.InterviewSession{
		ID:      "legacy-1",
		Answers: []domain.Answer{},
		Feedback: &domain.SessionFeedback{
			Conversation: []domain.ConversationTurn{{Question: "Q1", Answer: "A1"}},
		},
	}
	svc := usecase.NewReportService(failingAI())
	report, err := svc.GenerateReport(context.Background(), session, "")
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalQuestions)
	require.Len(t, report.Conversation, 1)
	assert.Equal(t, "Q1", report.Conversation[0].Question)
	assert.Equal(t, "unspecified", report.JobPosition)
	assert.Equal(t, "comprehensive interview", report.InterviewMode)
	assert.Equal(t, 0, report.OverallScore)
	assert.Equal(t, "poor", report.PerformanceLevel)
	assert.Equal(t, "unknown", report.InterviewDate)
	assert.Equal(t, 25, report.DurationMinutes)
}

func TestGenerateReport_DefaultResumeTitle(t *testing.T) {
	svc := usecase.NewReportService(failingAI())
	report, err := svc.GenerateReport(context.Background(), completedSession(), "")
	require.NoError(t, err)
	assert.Equal(t, "Resume", report.ResumeTitle)
}
