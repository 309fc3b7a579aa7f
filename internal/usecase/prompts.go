package usecase

import (
	"fmt"
	"strings"

	"github.com/resumind/interview-insight/internal/domain"
)

// System prompts per LLM-backed step.
const (
	assessorSystemPrompt = "You are a professional interview assessor who evaluates candidates objectively and accurately."

	interviewerSystemPrompt = "You are an experienced interviewer who gives professional, constructive interview feedback."

	resumeParserSystemPrompt = "You are a resume parsing assistant that converts resume text into well-structured JSON data."

	chatSystemPrompt = "You are a senior resume coach with fifteen years of hiring experience. " +
		"You are direct and candid, but every critique comes with a warm, actionable suggestion. " +
		"Answer questions about the candidate's resume using the resume context provided."
)

// transcriptBlock renders pairs as a plain question/answer text block.
func transcriptBlock(pairs []domain.QAPair) string {
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "Question: %s\nAnswer: %s\n", p.Question, p.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

// numberedTranscriptBlock renders pairs with 1-based numbering.
func numberedTranscriptBlock(pairs []domain.QAPair) string {
	var b strings.Builder
	for i, p := range pairs {
		fmt.Fprintf(&b, "Question %d: %s\nAnswer %d: %s\n", i+1, p.Question, i+1, p.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildCompetencyPrompt(transcript string) string {
	return fmt.Sprintf(`Based on the interview transcript below, rate the candidate on five dimensions, each scored 0-100:

Transcript:
%s

Dimensions:
1. job_fit: how well the candidate's experience and skills match the target position
2. technical_depth: depth and breadth of technical understanding and problem solving
3. project_exposition: clarity and impact of project experience descriptions
4. communication: logic, clarity and professionalism of expression
5. behavioral: soft skills such as teamwork, learning ability and attitude

Return only a JSON object with the scores, for example:
{"job_fit": 85, "technical_depth": 90, "project_exposition": 80, "communication": 88, "behavioral": 82}`, transcript)
}

func buildFeedbackPrompt(transcript string) string {
	return fmt.Sprintf(`Based on the full interview transcript below, produce professional feedback:

%s

Produce:
1. 2-3 concrete highlights of the candidate's performance
2. 2-3 constructive improvement suggestions

Requirements: each point is specific, actionable, grounded in the actual answers, and at most 100 characters.

Return JSON:
{"highlights": ["...", "..."], "improvements": ["...", "..."]}`, transcript)
}

func buildPairEvalPrompt(question, answer string) string {
	return fmt.Sprintf(`Evaluate the following interview exchange:

Question: %s
Answer: %s

Assess:
1. a score from 1 to 10
2. 2-3 strengths of the answer
3. 2-3 improvement suggestions
4. optionally, a brief reference answer

Return JSON:
{"score": 8, "strengths": ["...", "..."], "suggestions": ["...", "..."], "reference_answer": "..."}`, question, answer)
}

func buildResumeParsePrompt(text string) string {
	return fmt.Sprintf(`Parse the resume below into JSON.

Resume text:
%s

Output JSON shape:
{
  "personal_info": {"name": "", "email": "", "phone": "", "position": "", "github": "", "linkedin": "", "website": "", "address": ""},
  "education": [{"school": "", "major": "", "degree": "", "duration": "", "description": ""}],
  "work_experience": [{"company": "", "position": "", "duration": "", "description": ""}],
  "skills": [{"name": "", "level": "", "category": ""}],
  "projects": [{"name": "", "description": "", "technologies": [], "role": "", "duration": "", "achievements": []}]
}

Requirements:
1. Extract every project accurately
2. Group skills by category (language, framework, tooling, ...)
3. Keep the JSON valid
4. Normalize date formats`, text)
}

func buildQuestionsPrompt(resume domain.ResumeContent, jdContent, mode string) string {
	var focus string
	switch mode {
	case domain.ModeTechnical:
		focus = "Focus on technical depth: architecture decisions, trade-offs, debugging and scaling."
	case domain.ModeBehavioral:
		focus = "Focus on behavioral signals: teamwork, conflict, ownership and learning."
	default:
		focus = "Mix technical, project and behavioral questions."
	}
	jdBlock := ""
	if strings.TrimSpace(jdContent) != "" {
		jdBlock = "\nTarget job description:\n" + jdContent + "\n"
	}
	return fmt.Sprintf(`Generate 5-8 interview questions for the candidate below.
%s
Candidate resume:
%s
%s
Return JSON:
{"questions": [{"question": "...", "type": "general"}]}`, focus, formatResumeContext(resume), jdBlock)
}

func buildFollowUpPrompt(history []domain.QAPair, resume domain.ResumeContent) string {
	return fmt.Sprintf(`The scripted questions are exhausted. Based on the conversation so far and the candidate's resume, generate one follow-up question that digs deeper into something the candidate said.

Conversation so far:
%s

Candidate resume:
%s

Return JSON:
{"question": "...", "type": "follow_up"}`, numberedTranscriptBlock(history), formatResumeContext(resume))
}

func buildAnswerEvalPrompt(question, answer string, resume domain.ResumeContent) string {
	return fmt.Sprintf(`Evaluate this live interview answer against the candidate's background:

Question: %s
Answer: %s

Candidate resume:
%s

Return JSON:
{"score": 80, "feedback": "...", "suggestions": ["...", "..."]}

score is 0-100, feedback is 1-2 sentences, suggestions are 1-3 short items.`, question, answer, formatResumeContext(resume))
}

// formatResumeContext renders the structured resume into the compact context
// block shared by the chat and interview prompts.
func formatResumeContext(resume domain.ResumeContent) string {
	var b strings.Builder

	name := orUnknown(resume.PersonalInfo.Name)
	position := orUnknown(resume.PersonalInfo.Position)
	fmt.Fprintf(&b, "Name: %s\nTarget position: %s\n", name, position)
	if resume.PersonalInfo.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", resume.PersonalInfo.Email)
	}

	b.WriteString("\nSkills:\n")
	if len(resume.Skills) == 0 {
		b.WriteString("  (none listed)\n")
	}
	for _, s := range resume.Skills {
		fmt.Fprintf(&b, "  - %s", s.Name)
		if s.Level != "" {
			fmt.Fprintf(&b, " (%s)", s.Level)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nWork experience:\n")
	if len(resume.WorkExperience) == 0 {
		b.WriteString("  (none listed)\n")
	}
	for _, e := range resume.WorkExperience {
		fmt.Fprintf(&b, "  - %s, %s (%s): %s\n", e.Company, e.Position, e.Duration, e.Description)
	}

	b.WriteString("\nProjects:\n")
	if len(resume.Projects) == 0 {
		b.WriteString("  (none listed)\n")
	}
	for _, p := range resume.Projects {
		fmt.Fprintf(&b, "  - %s", p.Name)
		if p.Role != "" {
			fmt.Fprintf(&b, " (%s)", p.Role)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, ": %s", p.Description)
		}
		if len(p.Technologies) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(p.Technologies, ", "))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func orUnknown(s string) string {
	if s == "" {
		return "not provided"
	}
	return s
}
