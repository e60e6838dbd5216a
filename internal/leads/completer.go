package leads

import (
	"context"

	"github.com/sells-group/leadscout/pkg/anthropic"
	"github.com/sells-group/leadscout/pkg/perplexity"
)

// completionMaxTokens bounds the size of one lead-search completion.
const completionMaxTokens = 4096

// completionTemperature keeps lead extraction close to deterministic.
var completionTemperature = 0.2

// Completer is one (provider, model) pair in the completion priority chain.
// Implementations perform exactly one upstream call and never retry.
type Completer interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type anthropicCompleter struct {
	client anthropic.Client
	model  string
}

// NewAnthropicCompleter wraps an Anthropic client as a chain entry for one
// model identifier.
func NewAnthropicCompleter(client anthropic.Client, model string) Completer {
	return &anthropicCompleter{client: client, model: model}
}

func (c *anthropicCompleter) Name() string {
	return "anthropic/" + c.model
}

func (c *anthropicCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       c.model,
		MaxTokens:   completionMaxTokens,
		System:      system,
		Messages:    []anthropic.Message{{Role: "user", Content: prompt}},
		Temperature: &completionTemperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

type perplexityCompleter struct {
	client perplexity.Client
	model  string
}

// NewPerplexityCompleter wraps a Perplexity client as a chain entry.
func NewPerplexityCompleter(client perplexity.Client, model string) Completer {
	return &perplexityCompleter{client: client, model: model}
}

func (c *perplexityCompleter) Name() string {
	if c.model == "" {
		return "perplexity"
	}
	return "perplexity/" + c.model
}

func (c *perplexityCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	maxTokens := completionMaxTokens
	resp, err := c.client.ChatCompletion(ctx, perplexity.ChatCompletionRequest{
		Model: c.model,
		Messages: []perplexity.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		Temperature: &completionTemperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", err
	}
	return resp.Content(), nil
}
