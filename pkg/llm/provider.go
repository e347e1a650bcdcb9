package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for the generation backend
type LLMProvider interface {
	// Chat sends a system instruction and exchange history, returning the
	// complete response in one shot
	Chat(ctx context.Context, system string, history []Message, options ...Option) (string, error)

	// ChatStream is the streaming variant. Fragments arrive on the first
	// channel in order; a request or mid-stream failure arrives on the
	// second. Both channels are closed when the stream ends. The stream
	// is finite and not restartable.
	ChatStream(ctx context.Context, system string, history []Message, options ...Option) (<-chan string, <-chan error)

	// GenerateWithBlob sends a binary document (e.g. a PDF) together with
	// a text instruction, returning the complete response
	GenerateWithBlob(ctx context.Context, system, mimeType string, blob []byte, instruction string, options ...Option) (string, error)
}
