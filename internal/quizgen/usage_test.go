package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/abhisek/quizcraft/internal/event"
	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/logger"
	"github.com/abhisek/quizcraft/internal/usage"
)

// servedModelServer answers chat completions the way the OpenAI endpoint
// does: the reported model is a dated snapshot of the requested one.
func servedModelServer(t *testing.T, served string, totalTokens int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   served,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": photosynthesisQuiz},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{
				"prompt_tokens":     totalTokens / 4,
				"completion_tokens": totalTokens - totalTokens/4,
				"total_tokens":      totalTokens,
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate_PricesDatedServedModel(t *testing.T) {
	tests := []struct {
		requested string
		served    string
		pricedAs  string
		cost      string
	}{
		{"gpt-4o", "gpt-4o-2024-08-06", "gpt-4o-2024-08-06", "0.0025"},
		{"gpt-4o-mini", "gpt-4o-mini-2024-07-18", "gpt-4o-mini-2024-07-18", "0.00015"},
		{"gpt-4.1", "gpt-4.1-2025-04-14", "gpt-4.1", "0.002"},
	}

	for _, tt := range tests {
		t.Run(tt.served, func(t *testing.T) {
			srv := servedModelServer(t, tt.served, 1000)
			provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
				APIKey:  "sk-test-key-0123456789",
				Model:   tt.requested,
				BaseURL: srv.URL + "/v1",
			}, 0)
			if err != nil {
				t.Fatalf("NewOpenAIProvider: %v", err)
			}

			tracker := usage.NewTracker(llm.DefaultPricing, nil)
			rec := &event.Recorder{}
			gen := New(provider, tracker, DefaultConfig(), WithSink(rec))

			s, err := gen.Generate(context.Background(), photosynthesisParams(t, tt.requested))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Info().Model != tt.served {
				t.Errorf("session model = %q, want %q", s.Info().Model, tt.served)
			}

			var charge usage.Charge
			for _, e := range rec.Events() {
				if done, ok := e.(GenerationSucceeded); ok {
					charge = done.Charge
				}
			}
			if charge.PricingFallback {
				t.Errorf("served model %q fell back to default pricing", tt.served)
			}
			if charge.PricedAs != tt.pricedAs {
				t.Errorf("priced as %q, want %q", charge.PricedAs, tt.pricedAs)
			}
			if !charge.Cost.Equal(decimal.RequireFromString(tt.cost)) {
				t.Errorf("cost = %s, want %s", charge.Cost, tt.cost)
			}
			if !tracker.Snapshot().SessionCost.Equal(decimal.RequireFromString(tt.cost)) {
				t.Errorf("session cost = %s, want %s", tracker.Snapshot().SessionCost, tt.cost)
			}
		})
	}
}

func TestGenerate_LogsUsageRecordError(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(logger.Options{Output: &buf})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	prev := logger.Default()
	logger.SetDefault(l)
	t.Cleanup(func() { logger.SetDefault(prev) })

	mock := llm.NewMockProvider(llm.MockResponse{
		Text:  photosynthesisQuiz,
		Usage: llm.Usage{TotalTokens: -5, Reported: true},
	})
	tracker := usage.NewTracker(llm.DefaultPricing, nil)

	if _, err := New(mock, tracker, DefaultConfig()).Generate(context.Background(), photosynthesisParams(t, "gpt-4o-mini")); err != nil {
		t.Fatalf("usage errors must not fail generation: %v", err)
	}
	if !strings.Contains(buf.String(), "could not record usage") {
		t.Errorf("expected a usage warning, got %q", buf.String())
	}
	if got := tracker.Snapshot().SessionTokens; got != 0 {
		t.Errorf("session tokens = %d, want 0", got)
	}
}
