package usecase

import (
	"fmt"
	"strings"

	"github.com/resumind/interview-insight/internal/domain"
	"github.com/resumind/interview-insight/pkg/textx"
)

// ChatMessage is one turn of the resume-assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatService answers free-form questions about a parsed resume.
type ChatService struct {
	AI domain.AIClient
}

// NewChatService constructs a ChatService with its AI dependency.
func NewChatService(ai domain.AIClient) ChatService {
	return ChatService{AI: ai}
}

// maxChatHistory bounds how many prior turns are replayed into the prompt.
const maxChatHistory = 10

// Reply answers one user message in the context of the resume and the recent
// conversation. Chat has no meaningful fallback, so failures propagate.
func (s ChatService) Reply(ctx domain.Context, resume domain.ResumeContent, history []ChatMessage, message string) (string, error) {
	message = textx.SanitizeText(message)
	if message == "" {
		return "", fmt.Errorf("%w: empty message", domain.ErrInvalidArgument)
	}

	system := chatSystemPrompt + "\n\nResume context:\n" + formatResumeContext(resume)

	if len(history) > maxChatHistory {
		history = history[len(history)-maxChatHistory:]
	}
	var b strings.Builder
	for _, m := range history {
		role := "User"
		if m.Role == "assistant" {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, m.Content)
	}
	fmt.Fprintf(&b, "User: %s", message)

	reply, err := s.AI.ChatJSON(ctx, system, b.String(), 1000)
	if err != nil {
		return "", fmt.Errorf("resume chat: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
