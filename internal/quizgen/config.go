package quizgen

// Purpose labels LLM requests made by the generator in the request log.
const Purpose = "quiz-gen"

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// FallbackModel is requested once when the chosen model stays rate
	// limited after the provider's own retries. Empty disables the
	// downgrade. No downgrade happens when the request already used it.
	FallbackModel string

	// ValidateDocuments runs quiz.Validate on every extracted document.
	ValidateDocuments bool
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         3000,
		Temperature:       0.7,
		FallbackModel:     "gpt-4o-mini",
		ValidateDocuments: true,
	}
}
