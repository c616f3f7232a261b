package genai

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/hyperjump/kotae/internal/config"
)

// Client is a Generator backed by a Gemini chat model. It optionally
// carries a persona and a short in-memory chat transcript. Client is not
// safe for concurrent use.
type Client struct {
	model      model.BaseChatModel
	persona    string
	transcript []turn
}

// NewClient creates a Gemini-backed client from cfg. The API key is read
// from the environment variable named by cfg.APIKeyEnv.
func NewClient(ctx context.Context, cfg config.LLMConfig) (*Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("no API key: set %s in the environment", cfg.APIKeyEnv)
	}
	// The Gemini extension reads the key from the environment.
	_ = os.Setenv("GOOGLE_API_KEY", apiKey)
	_ = os.Setenv("GEMINI_API_KEY", apiKey)

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Model: cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}
	return &Client{model: chatModel, persona: cfg.Persona}, nil
}

// SetPersona sets a persona description used as a SYSTEM prefix for prompts.
func (c *Client) SetPersona(persona string) {
	c.persona = persona
}

// Generate produces text for a single prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []*schema.Message{
		schema.UserMessage(BuildPrompt(c.persona, prompt)),
	}
	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return resp.Content, nil
}

// Chat sends a message in a chat-style interaction that maintains a short
// in-memory transcript.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	c.transcript = append(c.transcript, turn{role: "user", text: message})
	messages := []*schema.Message{
		schema.UserMessage(buildChatPrompt(c.persona, c.transcript)),
	}
	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	c.transcript = append(c.transcript, turn{role: "assistant", text: resp.Content})
	return resp.Content, nil
}

// ClearHistory drops the chat transcript.
func (c *Client) ClearHistory() {
	c.transcript = nil
}
