package llm

import "strings"

// MinAPIKeyLength is the shortest key accepted by ValidateAPIKey.
const MinAPIKeyLength = 20

// keyPrefixes lists the prefix every key for a provider starts with.
var keyPrefixes = map[string]string{
	"openai":     "sk-",
	"openrouter": "sk-",
	"anthropic":  "sk-ant-",
	"gemini":     "AIza",
}

// ValidateAPIKey checks the shape of an API key without contacting the
// provider. Providers without a known prefix only get the length check.
func ValidateAPIKey(provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return &ErrInvalidCredentialFormat{Provider: provider, Reason: "no API key configured"}
	}
	if prefix, ok := keyPrefixes[provider]; ok && !strings.HasPrefix(key, prefix) {
		return &ErrInvalidCredentialFormat{Provider: provider, Reason: "key must start with " + prefix}
	}
	if len(key) < MinAPIKeyLength {
		return &ErrInvalidCredentialFormat{Provider: provider, Reason: "key is too short"}
	}
	return nil
}

// MaskAPIKey returns key with everything but its prefix and last four
// characters hidden.
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + strings.Repeat("*", len(key)-7) + key[len(key)-4:]
}
