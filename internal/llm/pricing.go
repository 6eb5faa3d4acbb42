package llm

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPricingModel is the pricing entry used for models missing from the
// table. Lookups that land here report fallback=true so callers can flag the
// estimate.
const DefaultPricingModel = "gpt-4o-mini"

// PricingTable maps a model ID to its USD price per 1000 tokens.
type PricingTable map[string]decimal.Decimal

// snapshotSuffix matches the date endpoints append to served model IDs,
// as in gpt-4o-mini-2024-07-18 or claude-3-haiku-20240307.
var snapshotSuffix = regexp.MustCompile(`-(\d{4}-\d{2}-\d{2}|\d{8})$`)

// BaseModel strips a vendor prefix ("openai/gpt-4o") and a snapshot date
// suffix from a served model ID.
func BaseModel(model string) string {
	if i := strings.LastIndex(model, "/"); i >= 0 {
		model = model[i+1:]
	}
	return snapshotSuffix.ReplaceAllString(model, "")
}

// Price returns the per-1000-token price for model. An exact entry wins;
// otherwise the BaseModel entry is used. pricedAs is the table entry
// actually used; fallback is true when neither was found and the
// DefaultPricingModel entry was substituted.
func (t PricingTable) Price(model string) (price decimal.Decimal, pricedAs string, fallback bool) {
	if p, ok := t[model]; ok {
		return p, model, false
	}
	if base := BaseModel(model); base != model {
		if p, ok := t[base]; ok {
			return p, base, false
		}
	}
	return t[DefaultPricingModel], DefaultPricingModel, true
}

// Cost returns the USD cost of tokens at the model's price, plus the
// fallback indicator from Price.
func (t PricingTable) Cost(tokens int, model string) (decimal.Decimal, bool) {
	price, _, fallback := t.Price(model)
	return price.Mul(decimal.NewFromInt(int64(tokens))).Div(thousand), fallback
}

var thousand = decimal.NewFromInt(1000)

func perK(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultPricing is the embedded blended price table.
// Prices are the input-token rate from models.dev expressed per 1K tokens.
// Last updated: 2026-02-15.
var DefaultPricing = PricingTable{
	// OpenAI
	"gpt-3.5-turbo":          perK("0.0005"),
	"gpt-4":                  perK("0.03"),
	"gpt-4-turbo":            perK("0.01"),
	"gpt-4.1":                perK("0.002"),
	"gpt-4.1-mini":           perK("0.0004"),
	"gpt-4.1-nano":           perK("0.0001"),
	"gpt-4o":                 perK("0.0025"),
	"gpt-4o-2024-05-13":      perK("0.005"),
	"gpt-4o-2024-08-06":      perK("0.0025"),
	"gpt-4o-2024-11-20":      perK("0.0025"),
	"gpt-4o-mini":            perK("0.00015"),
	"gpt-4o-mini-2024-07-18": perK("0.00015"),
	"gpt-5":                  perK("0.00125"),
	"gpt-5-mini":             perK("0.00025"),
	"gpt-5-nano":             perK("0.00005"),
	"o1":                     perK("0.015"),
	"o1-mini":                perK("0.0011"),
	"o3":                     perK("0.002"),
	"o3-mini":                perK("0.0011"),
	"o4-mini":                perK("0.0011"),

	// Anthropic
	"claude-3-5-haiku-20241022":  perK("0.0008"),
	"claude-3-5-haiku-latest":    perK("0.0008"),
	"claude-3-5-sonnet-20241022": perK("0.003"),
	"claude-3-7-sonnet-20250219": perK("0.003"),
	"claude-3-7-sonnet-latest":   perK("0.003"),
	"claude-3-haiku-20240307":    perK("0.00025"),
	"claude-haiku-4-5":           perK("0.001"),
	"claude-haiku-4-5-20251001":  perK("0.001"),
	"claude-opus-4-1":            perK("0.015"),
	"claude-sonnet-4-20250514":   perK("0.003"),
	"claude-sonnet-4-5":          perK("0.003"),

	// Google (Gemini)
	"gemini-1.5-flash":      perK("0.000075"),
	"gemini-1.5-pro":        perK("0.00125"),
	"gemini-2.0-flash":      perK("0.0001"),
	"gemini-2.0-flash-lite": perK("0.000075"),
	"gemini-2.5-flash":      perK("0.0003"),
	"gemini-2.5-flash-lite": perK("0.0001"),
	"gemini-2.5-pro":        perK("0.00125"),
}
