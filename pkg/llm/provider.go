package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "model", "system"
	Content string
}

// Attachment carries raw file bytes (base64) for providers that accept
// inline data, e.g. a PDF handed to the classifier.
type Attachment struct {
	MimeType string
	Base64   string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature    float64
	MaxTokens      int
	Model          string // Override default model
	ResponseSchema map[string]interface{}
	ThinkingBudget *int
	Attachments    []Attachment
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithResponseSchema forces a JSON response matching the given schema on
// providers that support structured output.
func WithResponseSchema(schema map[string]interface{}) Option {
	return func(o *Options) {
		o.ResponseSchema = schema
	}
}

// WithThinkingBudget caps (or disables, with 0) the model's thinking tokens.
func WithThinkingBudget(budget int) Option {
	return func(o *Options) {
		o.ThinkingBudget = &budget
	}
}

func WithAttachments(attachments ...Attachment) Option {
	return func(o *Options) {
		o.Attachments = append(o.Attachments, attachments...)
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
