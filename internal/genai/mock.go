package genai

import "context"

// Static is a Generator that always returns the same reply. Used in tests
// and as a stand-in when no model is configured.
type Static struct {
	Reply string
	// Prompts records every prompt passed to Generate.
	Prompts []string
}

// Generate records the prompt and returns the static reply.
func (s *Static) Generate(_ context.Context, prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	return s.Reply, nil
}
