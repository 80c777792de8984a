// Package llm wraps the external chat-completion service behind a small
// Completer interface so the service layer never touches the SDK directly.
//
// Each call sends exactly one user-role message (no system prompt, no prior
// turns) and awaits the full completion; streaming is out of scope. Failures
// are reported as typed errors rather than a nil sentinel so callers cannot
// mistake "no result" for an empty-but-successful completion. Callers must
// treat every error as "service unavailable" and must not retry.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/tbourn/go-faq-backend/internal/config"
)

var (
	// ErrNoChoices is returned when the upstream responds without any choices.
	ErrNoChoices = errors.New("completion returned no choices")

	// ErrEmptyCompletion is returned when the first choice carries no text.
	ErrEmptyCompletion = errors.New("completion returned empty content")
)

// Completer produces a single-turn text completion for a user message.
//
// Implementations must honor the context for cancellation and return a typed
// error on any failure; they never return ("", nil).
type Completer interface {
	Complete(ctx context.Context, message string) (string, error)
}

// Client is the OpenAI-backed Completer used in production.
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewClient builds a Client from configuration. The API key falls back to the
// SDK's own environment lookup when unset; BaseURL overrides the default API
// host (e.g. for a proxy).
func NewClient(cfg config.OpenAIConfig) *Client {
	var opts []option.RequestOption
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: timeout,
	}
}

// Complete requests one completion for message. The call is bounded by the
// configured timeout regardless of the caller's context, since the library
// default is effectively unbounded.
func (c *Client) Complete(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(message),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", ErrNoChoices
	}
	content := res.Choices[0].Message.Content
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
