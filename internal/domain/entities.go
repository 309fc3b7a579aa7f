// Package domain holds the core entities and ports of the interview-insight
// pipeline. It stays free of transport and storage concerns; callers own both.
package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoTranscript is the single fatal condition of report generation:
	// the session yielded no usable question/answer pairs.
	ErrNoTranscript    = errors.New("no usable transcript")
	ErrSchemaInvalid   = errors.New("schema invalid")
	ErrUpstreamTimeout = errors.New("upstream timeout")
	ErrInternal        = errors.New("internal error")
)

// Interview modes
const (
	ModeComprehensive = "comprehensive"
	ModeTechnical     = "technical"
	ModeBehavioral    = "behavioral"
)

// Session statuses
const (
	SessionActive    = "active"
	SessionCompleted = "completed"
)

// Question types
const (
	QuestionGeneral  = "general"
	QuestionFollowUp = "follow_up"
)

// Question is one scripted or generated interview question. Older payloads
// store questions as bare strings; both shapes decode to the same struct.
type Question struct {
	Question string `json:"question"`
	Type     string `json:"type,omitempty"`
}

// UnmarshalJSON accepts either a plain string or an object with a
// "question" field.
func (q *Question) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		q.Question = s
		return nil
	}
	type alias Question
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*q = Question(a)
	return nil
}

// AnswerEvaluation is the live per-answer assessment attached when the
// candidate responds during the interview.
type AnswerEvaluation struct {
	Score       int      `json:"score"`
	Feedback    string   `json:"feedback"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Answer is one candidate answer slot. Slots skipped during the interview are
// stored as empty objects; older payloads store answers as bare strings.
type Answer struct {
	Answer        string            `json:"answer"`
	Evaluation    *AnswerEvaluation `json:"evaluation,omitempty"`
	QuestionIndex int               `json:"question_index"`
}

// UnmarshalJSON accepts either a plain string or an object with an
// "answer" field.
func (a *Answer) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		a.Answer = s
		return nil
	}
	type alias Answer
	var aa alias
	if err := json.Unmarshal(b, &aa); err != nil {
		return err
	}
	*a = Answer(aa)
	return nil
}

// ConversationTurn is one question/answer item of the legacy transcript shape.
type ConversationTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SessionFeedback carries the legacy transcript location: old sessions stored
// the whole conversation under feedback.conversation instead of answers.
type SessionFeedback struct {
	Conversation []ConversationTurn `json:"conversation,omitempty"`
}

// InterviewSession is one interview attempt. The report pipeline reads it and
// never writes it back; mutation belongs to the session endpoints upstream.
type InterviewSession struct {
	ID           string           `json:"id"`
	ResumeID     string           `json:"resume_id,omitempty"`
	ResumeTitle  string           `json:"resume_title,omitempty"`
	JobPosition  string           `json:"job_position,omitempty"`
	JDContent    string           `json:"jd_content,omitempty"`
	Mode         string           `json:"interview_mode,omitempty"`
	Questions    []Question       `json:"questions"`
	Answers      []Answer         `json:"answers"`
	Feedback     *SessionFeedback `json:"feedback,omitempty"`
	OverallScore *int             `json:"overall_score,omitempty"`
	Status       string           `json:"status,omitempty"`
	CreatedAt    time.Time        `json:"created_at,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at,omitempty"`
}

// QAPair is the canonical question/answer unit every analyzer consumes.
// Index is the original question slot on the aligned path and the read order
// on the legacy path, which carries no slot numbers.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Index    int    `json:"index"`
}

// CompetencyScores holds the five fixed evaluation dimensions, each in [0,100].
type CompetencyScores struct {
	JobFit            int `json:"job_fit"`
	TechnicalDepth    int `json:"technical_depth"`
	ProjectExposition int `json:"project_exposition"`
	Communication     int `json:"communication"`
	Behavioral        int `json:"behavioral"`
}

// NarrativeFeedback is the whole-interview highlight/improvement summary.
type NarrativeFeedback struct {
	Highlights   []string `json:"highlights"`
	Improvements []string `json:"improvements"`
}

// QAFeedback is the per-question assessment inside the report.
type QAFeedback struct {
	Score           int      `json:"score"`
	Strengths       []string `json:"strengths"`
	Suggestions     []string `json:"suggestions"`
	ReferenceAnswer *string  `json:"reference_answer"`
}

// QuestionDetail pairs one transcript entry with its assessment.
type QuestionDetail struct {
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
	Feedback QAFeedback `json:"ai_feedback"`
}

// KeywordHit reports one job-description keyword and its presence in the
// candidate's answers.
type KeywordHit struct {
	Keyword   string `json:"keyword"`
	Mentioned bool   `json:"mentioned"`
	Frequency int    `json:"frequency"`
}

// KeywordCoverage is the keyword analysis result. CoverageRate is the rounded
// percentage of keywords mentioned at least once.
type KeywordCoverage struct {
	Keywords     []KeywordHit `json:"keywords"`
	CoverageRate int          `json:"coverage_rate"`
}

// WordCount is one ranked frequent term from the candidate's answers.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Report is the assembled interview report. It is owned by the caller; the
// pipeline does not persist it.
type Report struct {
	ID               string           `json:"id"`
	ResumeTitle      string           `json:"resume_title"`
	JobPosition      string           `json:"job_position"`
	InterviewMode    string           `json:"interview_mode"`
	JDContent        string           `json:"jd_content"`
	OverallScore     int              `json:"overall_score"`
	PerformanceLevel string           `json:"performance_level"`
	InterviewDate    string           `json:"interview_date"`
	DurationMinutes  int              `json:"duration_minutes"`
	TotalQuestions   int              `json:"total_questions"`
	CompetencyScores CompetencyScores `json:"competency_scores"`
	Highlights       []string         `json:"ai_highlights"`
	Improvements     []string         `json:"ai_improvements"`
	Conversation     []QuestionDetail `json:"conversation"`
	JDKeywords       []KeywordHit     `json:"jd_keywords"`
	CoverageRate     int              `json:"coverage_rate"`
	FrequentWords    []WordCount      `json:"frequent_words"`
}

// PersonalInfo groups the contact block of a parsed resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Education is one education entry of a parsed resume.
type Education struct {
	School      string `json:"school"`
	Major       string `json:"major"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

// Experience is one work-experience entry of a parsed resume.
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Skill is one skill entry of a parsed resume.
type Skill struct {
	Name     string `json:"name"`
	Level    string `json:"level"`
	Category string `json:"category"`
}

// Project is one project entry of a parsed resume.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Role         string   `json:"role"`
	Duration     string   `json:"duration,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// ResumeContent is the structured form of a resume produced by the parser.
// RawText always carries the original input so nothing is lost on fallback.
type ResumeContent struct {
	PersonalInfo   PersonalInfo `json:"personal_info"`
	Education      []Education  `json:"education"`
	WorkExperience []Experience `json:"work_experience"`
	Skills         []Skill      `json:"skills"`
	Projects       []Project    `json:"projects"`
	RawText        string       `json:"raw_text,omitempty"`
}

// AIClient (port)
//
// ChatJSON sends a system/user prompt pair to a chat-completion provider and
// returns the completion text. The content is expected to contain JSON but may
// be wrapped in prose; callers must extract it.
type AIClient interface {
	ChatJSON(ctx Context, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// Context aliases context.Context so adapters and usecases pass it through
// without the domain importing anything beyond the stdlib.
type Context = context.Context
