package usecase

import (
	"log/slog"

	"github.com/resumind/interview-insight/internal/adapter/observability"
	"github.com/resumind/interview-insight/internal/domain"
	"github.com/resumind/interview-insight/pkg/textx"
)

// ResumeService turns plain resume text into structured fields via the model.
type ResumeService struct {
	AI domain.AIClient
}

// NewResumeService constructs a ResumeService with its AI dependency.
func NewResumeService(ai domain.AIClient) ResumeService {
	return ResumeService{AI: ai}
}

// Parse extracts structured resume content from text. It never fails: any
// call or parse error degrades to a shell that keeps the raw text so the
// caller loses nothing.
func (s ResumeService) Parse(ctx domain.Context, text string) domain.ResumeContent {
	text = textx.SanitizeText(text)
	raw, err := s.AI.ChatJSON(ctx, resumeParserSystemPrompt, buildResumeParsePrompt(text), 4000)
	if err != nil {
		slog.Warn("resume parse failed, returning raw shell", slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("resume_parse").Inc()
		return fallbackResume(text)
	}

	var content domain.ResumeContent
	if err := decodeJSON(raw, &content); err != nil {
		slog.Warn("resume parse response unparsable, returning raw shell", slog.Any("error", err))
		observability.AnalysisFallbacksTotal.WithLabelValues("resume_parse").Inc()
		return fallbackResume(text)
	}

	content.RawText = text
	normalizeResume(&content)
	return content
}

// normalizeResume fills defaults and drops entries without a name, mirroring
// the tolerant validation applied to model output elsewhere in the pipeline.
func normalizeResume(c *domain.ResumeContent) {
	skills := c.Skills[:0]
	for _, s := range c.Skills {
		if s.Name == "" {
			continue
		}
		if s.Level == "" {
			s.Level = "proficient"
		}
		if s.Category == "" {
			s.Category = "other"
		}
		skills = append(skills, s)
	}
	c.Skills = skills

	projects := c.Projects[:0]
	for _, p := range c.Projects {
		if p.Name == "" {
			continue
		}
		if p.Technologies == nil {
			p.Technologies = []string{}
		}
		projects = append(projects, p)
	}
	c.Projects = projects

	if c.Education == nil {
		c.Education = []domain.Education{}
	}
	if c.WorkExperience == nil {
		c.WorkExperience = []domain.Experience{}
	}
	if c.Skills == nil {
		c.Skills = []domain.Skill{}
	}
	if c.Projects == nil {
		c.Projects = []domain.Project{}
	}
}

func fallbackResume(text string) domain.ResumeContent {
	return domain.ResumeContent{
		Education:      []domain.Education{},
		WorkExperience: []domain.Experience{},
		Skills:         []domain.Skill{},
		Projects:       []domain.Project{},
		RawText:        text,
	}
}
