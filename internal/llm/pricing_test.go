package llm

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPricingTable_Cost(t *testing.T) {
	tests := []struct {
		name         string
		tokens       int
		model        string
		want         string
		wantFallback bool
	}{
		{"gpt-4o-mini 1000", 1000, "gpt-4o-mini", "0.00015", false},
		{"gpt-4o-mini 2000", 2000, "gpt-4o-mini", "0.0003", false},
		{"gpt-4o 500", 500, "gpt-4o", "0.00125", false},
		{"zero tokens", 0, "gpt-4", "0", false},
		{"dated snapshot in table", 1000, "gpt-4o-2024-05-13", "0.005", false},
		{"dated snapshot priced as base", 1000, "gpt-4o-2099-01-01", "0.0025", false},
		{"compact date suffix", 1000, "claude-sonnet-4-5-20250929", "0.003", false},
		{"vendor prefix", 1000, "openai/gpt-4o", "0.0025", false},
		{"unknown model falls back", 1000, "my-local-llama", "0.00015", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fallback := DefaultPricing.Cost(tt.tokens, tt.model)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("cost = %s, want %s", got, tt.want)
			}
			if fallback != tt.wantFallback {
				t.Errorf("fallback = %v, want %v", fallback, tt.wantFallback)
			}
		})
	}
}

func TestPricingTable_Price(t *testing.T) {
	_, pricedAs, fallback := DefaultPricing.Price("claude-sonnet-4-20250514")
	if fallback || pricedAs != "claude-sonnet-4-20250514" {
		t.Errorf("known model: pricedAs=%q fallback=%v", pricedAs, fallback)
	}

	_, pricedAs, fallback = DefaultPricing.Price("unknown")
	if !fallback || pricedAs != DefaultPricingModel {
		t.Errorf("unknown model: pricedAs=%q fallback=%v", pricedAs, fallback)
	}
}

func TestDefaultPricing_HasDefaultEntry(t *testing.T) {
	if _, ok := DefaultPricing[DefaultPricingModel]; !ok {
		t.Fatalf("pricing table missing %q", DefaultPricingModel)
	}
}

func TestBaseModel(t *testing.T) {
	tests := map[string]string{
		"gpt-4o-mini-2024-07-18":     "gpt-4o-mini",
		"claude-3-haiku-20240307":    "claude-3-haiku",
		"openai/gpt-4o-mini":         "gpt-4o-mini",
		"anthropic/claude-haiku-4-5": "claude-haiku-4-5",
		"gpt-4.1":                    "gpt-4.1",
		"o3-mini":                    "o3-mini",
	}
	for in, want := range tests {
		if got := BaseModel(in); got != want {
			t.Errorf("BaseModel(%q) = %q, want %q", in, got, want)
		}
	}
}
