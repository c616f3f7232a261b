// Package genai wraps an opaque text-generation service used as a fallback
// when no FAQ matches. The matching engine never depends on it.
package genai

import (
	"context"
	"fmt"
	"strings"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// maxTranscriptTurns bounds how many chat turns are replayed into a prompt.
const maxTranscriptTurns = 10

// turn is one user or assistant message in a chat transcript.
type turn struct {
	role string // "user" or "assistant"
	text string
}

// BuildPrompt assembles a single-shot prompt. A non-empty persona is
// prefixed as a SYSTEM line.
func BuildPrompt(persona, question string) string {
	if persona == "" {
		return question
	}
	return fmt.Sprintf("SYSTEM: %s\n\nUSER: %s", persona, question)
}

// buildChatPrompt assembles a chat-style prompt from the persona and the
// most recent transcript turns, ending with an open assistant slot.
func buildChatPrompt(persona string, transcript []turn) string {
	var convo []string
	if persona != "" {
		convo = append(convo, "SYSTEM: "+persona)
	}
	start := 0
	if len(transcript) > maxTranscriptTurns {
		start = len(transcript) - maxTranscriptTurns
	}
	for _, t := range transcript[start:] {
		prefix := "USER"
		if t.role == "assistant" {
			prefix = "ASSISTANT"
		}
		convo = append(convo, prefix+": "+t.text)
	}
	convo = append(convo, "ASSISTANT:")
	return strings.Join(convo, "\n\n")
}
