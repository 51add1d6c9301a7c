package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/johnquangdev/interview-assistant/pkg/config"
)

// DefaultChatPrompt keeps generated replies on the hiring process
const DefaultChatPrompt = "You answer questions from job candidates about the interview process. " +
	"Reply in at most three sentences. Never reveal interview questions or their expected answers. " +
	"If you do not know, say the recruiting team will follow up."

// ChatResponder answers free-form questions through an OpenAI-compatible
// /v1/chat/completions endpoint
type ChatResponder struct {
	apiKey     string
	baseURL    string
	model      string
	prompt     string
	maxElapsed time.Duration
	client     *http.Client
}

// NewChatResponder creates a chat responder from the NLP config.
// Pass a nil config to fall back to environment variables.
func NewChatResponder(cfg *config.NLPConfig) *ChatResponder {
	var apiKey, base, model string
	timeout := 30 * time.Second
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.ChatURL
		model = cfg.ChatModel
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("NLP_API_KEY")
	}
	if base == "" {
		base = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &ChatResponder{
		apiKey:     apiKey,
		baseURL:    base,
		model:      model,
		prompt:     DefaultChatPrompt,
		maxElapsed: 2 * timeout,
		client:     &http.Client{Timeout: timeout},
	}
}

// ChatMessage is one message of a chat completion request
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Respond sends the question and returns the assistant content
func (c *ChatResponder) Respond(ctx context.Context, question string) (string, error) {
	body, err := json.Marshal(ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: c.prompt},
			{Role: "user", Content: question},
		},
		Temperature: 0.2,
		MaxTokens:   300,
	})
	if err != nil {
		return "", err
	}

	var out ChatResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/v1/chat/completions", c.apiKey, body, &out, c.maxElapsed); err != nil {
		return "", fmt.Errorf("chat service: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat service returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
