// Package usecase contains the application services: transcript analysis,
// report synthesis, resume parsing, interview flow, and resume chat.
package usecase

import (
	"github.com/resumind/interview-insight/internal/domain"
)

// ReconcileTranscript normalizes a session's stored questions and answers
// into the canonical ordered QAPair sequence.
//
// Two shapes are supported. Current sessions pair questions[i] with
// answers[i]; pairs whose question or answer text is empty are dropped while
// keeping their original slot index. Legacy sessions with an empty answers
// list may carry the whole conversation under feedback.conversation; those
// pairs are numbered in read order since the legacy shape has no slots.
//
// An empty result is not an error here; the report assembler treats it as the
// fatal condition for the whole pipeline.
func ReconcileTranscript(session domain.InterviewSession) []domain.QAPair {
	if len(session.Answers) == 0 && session.Feedback != nil && len(session.Feedback.Conversation) > 0 {
		pairs := make([]domain.QAPair, 0, len(session.Feedback.Conversation))
		for _, turn := range session.Feedback.Conversation {
			if turn.Question == "" || turn.Answer == "" {
				continue
			}
			pairs = append(pairs, domain.QAPair{
				Question: turn.Question,
				Answer:   turn.Answer,
				Index:    len(pairs),
			})
		}
		return pairs
	}

	n := min(len(session.Questions), len(session.Answers))
	pairs := make([]domain.QAPair, 0, n)
	for i := 0; i < n; i++ {
		q := session.Questions[i].Question
		a := session.Answers[i].Answer
		if q == "" || a == "" {
			continue
		}
		pairs = append(pairs, domain.QAPair{Question: q, Answer: a, Index: i})
	}
	return pairs
}
