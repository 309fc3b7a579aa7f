package usecase

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/resumind/interview-insight/internal/adapter/observability"
	"github.com/resumind/interview-insight/internal/domain"
)

// InterviewService drives the live interview flow: question generation,
// follow-up questions once scripted ones run out, and per-answer evaluation.
// Sessions it creates are ephemeral; persistence belongs to the caller.
type InterviewService struct {
	AI domain.AIClient
}

// NewInterviewService constructs an InterviewService with its AI dependency.
func NewInterviewService(ai domain.AIClient) InterviewService {
	return InterviewService{AI: ai}
}

// StartSession generates the opening question set and returns a new active
// session. Unlike the analyses, starting an interview without questions is
// not useful, so generation failures propagate.
func (s InterviewService) StartSession(ctx domain.Context, resume domain.ResumeContent, jdContent, mode, jobPosition string) (domain.InterviewSession, error) {
	switch mode {
	case domain.ModeComprehensive, domain.ModeTechnical, domain.ModeBehavioral:
	case "":
		mode = domain.ModeComprehensive
	default:
		return domain.InterviewSession{}, fmt.Errorf("%w: unknown interview mode %q", domain.ErrInvalidArgument, mode)
	}

	questions, err := s.generateQuestions(ctx, resume, jdContent, mode)
	if err != nil {
		return domain.InterviewSession{}, err
	}

	now := time.Now().UTC()
	return domain.InterviewSession{
		ID:          uuid.NewString(),
		JobPosition: jobPosition,
		JDContent:   jdContent,
		Mode:        mode,
		Questions:   questions,
		Answers:     []domain.Answer{},
		Status:      domain.SessionActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (s InterviewService) generateQuestions(ctx domain.Context, resume domain.ResumeContent, jdContent, mode string) ([]domain.Question, error) {
	raw, err := s.AI.ChatJSON(ctx, interviewerSystemPrompt, buildQuestionsPrompt(resume, jdContent, mode), 1200)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	var parsed struct {
		Questions []domain.Question `json:"questions"`
	}
	if err := decodeJSON(raw, &parsed); err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	questions := make([]domain.Question, 0, len(parsed.Questions))
	for _, q := range parsed.Questions {
		if q.Question == "" {
			continue
		}
		if q.Type == "" {
			q.Type = domain.QuestionGeneral
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: provider returned no questions", domain.ErrSchemaInvalid)
	}
	return questions, nil
}

// NextQuestion returns the next scripted question, or generates a follow-up
// from the conversation history once the script is exhausted.
func (s InterviewService) NextQuestion(ctx domain.Context, session domain.InterviewSession, resume domain.ResumeContent) (domain.Question, error) {
	idx := len(session.Answers)
	if idx < len(session.Questions) {
		return session.Questions[idx], nil
	}

	raw, err := s.AI.ChatJSON(ctx, interviewerSystemPrompt, buildFollowUpPrompt(ReconcileTranscript(session), resume), 400)
	if err != nil {
		return domain.Question{}, fmt.Errorf("follow-up question: %w", err)
	}
	var q domain.Question
	if err := decodeJSON(raw, &q); err != nil {
		return domain.Question{}, fmt.Errorf("follow-up question: %w", err)
	}
	if q.Question == "" {
		return domain.Question{}, fmt.Errorf("%w: empty follow-up question", domain.ErrSchemaInvalid)
	}
	q.Type = domain.QuestionFollowUp
	return q, nil
}

// EvaluateAnswer scores one live answer in [0,100] with short feedback.
// It never fails: unavailability degrades to a neutral deterministic record
// so the interview can continue.
func (s InterviewService) EvaluateAnswer(ctx domain.Context, question, answer string, resume domain.ResumeContent) domain.AnswerEvaluation {
	raw, err := s.AI.ChatJSON(ctx, assessorSystemPrompt, buildAnswerEvalPrompt(question, answer, resume), 600)
	if err != nil {
		slog.Warn("live answer evaluation failed, using fallback", slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("answer_eval").Inc()
		return answerEvalFallback()
	}
	var parsed domain.AnswerEvaluation
	if err := decodeJSON(raw, &parsed); err != nil {
		slog.Warn("live answer evaluation unparsable, using fallback", slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("answer_eval").Inc()
		return answerEvalFallback()
	}
	parsed.Score = clampScore(parsed.Score, 0, 100)
	if parsed.Suggestions == nil {
		parsed.Suggestions = []string{}
	}
	return parsed
}

func answerEvalFallback() domain.AnswerEvaluation {
	return domain.AnswerEvaluation{
		Score:       70,
		Feedback:    "The answer addresses the question. Detailed evaluation was unavailable, so a neutral score was recorded.",
		Suggestions: []string{"add concrete examples", "quantify the outcome where possible"},
	}
}

// EndSession returns a completed copy of the session. The overall score is
// the rounded mean of the per-answer evaluation scores when any exist.
func (s InterviewService) EndSession(session domain.InterviewSession) domain.InterviewSession {
	total, n := 0, 0
	for _, a := range session.Answers {
		if a.Evaluation != nil {
			total += a.Evaluation.Score
			n++
		}
	}
	if n > 0 {
		mean := int(math.Round(float64(total) / float64(n)))
		session.OverallScore = &mean
	}
	session.Status = domain.SessionCompleted
	session.UpdatedAt = time.Now().UTC()
	return session
}
