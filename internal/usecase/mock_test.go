package usecase_test

import (
	"errors"
	"strings"
	"sync"

	"github.com/resumind/interview-insight/internal/domain"
)

// fakeAI is a scripted stand-in for domain.AIClient. Respond inspects the
// prompts and returns a canned completion; calls are recorded for assertions.
type fakeAI struct {
	mu      sync.Mutex
	calls   []fakeCall
	Respond func(systemPrompt, userPrompt string) (string, error)
}

type fakeCall struct {
	System string
	User   string
}

func (f *fakeAI) ChatJSON(_ domain.Context, systemPrompt, userPrompt string, _ int) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{System: systemPrompt, User: userPrompt})
	f.mu.Unlock()
	return f.Respond(systemPrompt, userPrompt)
}

func (f *fakeAI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeAI) lastCall() fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

// failingAI simulates an unreachable provider: every analysis must degrade
// to its deterministic fallback.
func failingAI() *fakeAI {
	return &fakeAI{Respond: func(_, _ string) (string, error) {
		return "", errors.New("provider unavailable")
	}}
}

// scriptedAI answers each pipeline prompt with well-formed JSON, routed by
// distinctive prompt content.
func scriptedAI() *fakeAI {
	return &fakeAI{Respond: func(_, user string) (string, error) {
		switch {
		case strings.Contains(user, `"job_fit"`):
			return `{"job_fit": 85, "technical_depth": 150, "project_exposition": -3, "communication": 88, "behavioral": "not a number"}`, nil
		case strings.Contains(user, `"highlights"`):
			return "Here you go:\n```json\n{\"highlights\":[\"clear articulation\",\"strong ownership\"],\"improvements\":[\"quantify impact\"]}\n```", nil
		case strings.Contains(user, "Evaluate the following interview exchange"):
			return `{"score": 8, "strengths": ["specific"], "suggestions": ["mention metrics"], "reference_answer": "A stronger answer would cite numbers."}`, nil
		default:
			return "", errors.New("unexpected prompt")
		}
	}}
}
