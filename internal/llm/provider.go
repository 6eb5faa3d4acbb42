package llm

import (
	"context"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the raw completion text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the assistant reply.
	// The reply is returned verbatim; callers are responsible for parsing
	// any structure out of it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use
	// when a Request does not name one.
	ModelID() string
}

// Pinger is implemented by providers that can cheaply verify connectivity
// and credentials without generating anything.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. For quiz generation this
	// contains one user message.
	Messages []Message

	// Model overrides the provider's configured model for this request.
	// Empty means ModelID().
	Model string

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the LLM's output.
type Response struct {
	// Text is the assistant message content exactly as returned.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int

	// Reported is false when the endpoint omitted usage information.
	// Token counts are zero in that case.
	Reported bool
}

// modelFor returns the model a request should be served by.
func modelFor(req Request, fallback string, models map[string]string) string {
	if req.Model != "" {
		return resolveModel(req.Model, models)
	}
	return fallback
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}

// Unwrapper is implemented by provider decorators.
type Unwrapper interface {
	Unwrap() Provider
}

// AsPinger walks a decorator chain looking for a provider that implements
// Pinger.
func AsPinger(p Provider) (Pinger, bool) {
	for p != nil {
		if pg, ok := p.(Pinger); ok {
			return pg, true
		}
		u, ok := p.(Unwrapper)
		if !ok {
			return nil, false
		}
		p = u.Unwrap()
	}
	return nil, false
}
