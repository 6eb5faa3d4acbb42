package llm

import (
	"context"
	"errors"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Text  string
	Usage Usage
	Err   error
}

// MockProvider is a deterministic Provider for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrTransport if the queue is
// empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrTransport{Err: errors.New("mock: no canned responses left")}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	model := req.Model
	if model == "" {
		model = "mock"
	}

	return &Response{
		Text:       resp.Text,
		Usage:      resp.Usage,
		Model:      model,
		StopReason: "end",
	}, nil
}

// sampleQuiz is the reply of the provider built by NewSampleProvider.
const sampleQuiz = "```json\n" + `{
  "title": "Sample Quiz: The Water Cycle",
  "questions": [
    {
      "id": 1,
      "type": "multiple-choice",
      "question": "Which process turns liquid water into water vapour?",
      "options": ["A) Condensation", "B) Evaporation", "C) Precipitation", "D) Infiltration"],
      "correct": 1,
      "explanation": "Heat from the sun evaporates surface water."
    },
    {
      "id": 2,
      "type": "true-false",
      "question": "Clouds form when water vapour condenses.",
      "options": ["True", "False"],
      "correct": 0,
      "explanation": "Cooling vapour condenses into droplets that make up clouds."
    },
    {
      "id": 3,
      "type": "fill-blank",
      "question": "Rain, snow and hail are forms of ___.",
      "correct": "precipitation",
      "explanation": "Any water falling from clouds is precipitation."
    }
  ]
}` + "\n```"

// NewSampleProvider returns a MockProvider that answers one request with a
// fixed three-question quiz. It backs the "mock" provider for offline demos.
func NewSampleProvider() *MockProvider {
	return NewMockProvider(MockResponse{
		Text: sampleQuiz,
		Usage: Usage{
			InputTokens:  350,
			OutputTokens: 250,
			TotalTokens:  600,
			Reported:     true,
		},
	})
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
