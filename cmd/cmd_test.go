package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizcraft/internal/store"
)

// clearLLMEnv removes every variable resolveLLMConfig reads.
func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"QUIZCRAFT_LLM_PROVIDER",
		"QUIZCRAFT_OPENAI_API_KEY", "QUIZCRAFT_OPENAI_MODEL", "QUIZCRAFT_OPENAI_BASE_URL",
		"QUIZCRAFT_ANTHROPIC_API_KEY", "QUIZCRAFT_ANTHROPIC_MODEL",
		"QUIZCRAFT_GEMINI_API_KEY", "QUIZCRAFT_GEMINI_MODEL",
		"QUIZCRAFT_OPENROUTER_API_KEY", "QUIZCRAFT_OPENROUTER_MODEL",
		"QUIZCRAFT_LLM_TIMEOUT",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func openTestSettings(t *testing.T) store.SettingsRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "cmd.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.SettingsRepo()
}

func TestResolveLLMConfigDefaults(t *testing.T) {
	clearLLMEnv(t)
	settings := openTestSettings(t)

	cfg, err := resolveLLMConfig(context.Background(), settings, "")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "", cfg.APIKey())
	assert.Equal(t, "gpt-4o-mini", cfg.Model())
}

func TestResolveLLMConfigStoredSettings(t *testing.T) {
	clearLLMEnv(t)
	settings := openTestSettings(t)
	ctx := context.Background()

	require.NoError(t, settings.Set(ctx, store.SettingAPIKey, "sk-stored-key-0123456789"))
	require.NoError(t, settings.Set(ctx, store.SettingDefaultModel, "gpt-4o"))

	cfg, err := resolveLLMConfig(ctx, settings, "")
	require.NoError(t, err)
	assert.Equal(t, "sk-stored-key-0123456789", cfg.APIKey())
	assert.Equal(t, "gpt-4o", cfg.Model())
}

func TestResolveLLMConfigEnvWins(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("QUIZCRAFT_OPENAI_API_KEY", "sk-env-key-0123456789abc")
	t.Setenv("QUIZCRAFT_OPENAI_MODEL", "gpt-4.1-mini")
	settings := openTestSettings(t)
	ctx := context.Background()

	require.NoError(t, settings.Set(ctx, store.SettingAPIKey, "sk-stored-key-0123456789"))
	require.NoError(t, settings.Set(ctx, store.SettingDefaultModel, "gpt-4o"))

	cfg, err := resolveLLMConfig(ctx, settings, "")
	require.NoError(t, err)
	assert.Equal(t, "sk-env-key-0123456789abc", cfg.APIKey())
	assert.Equal(t, "gpt-4.1-mini", cfg.Model())
}

func TestResolveLLMConfigDiscovery(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-REDACTED")
	settings := openTestSettings(t)

	cfg, err := resolveLLMConfig(context.Background(), settings, "")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "sk-ant-REDACTED", cfg.APIKey())
}

func TestResolveLLMConfigProviderFlag(t *testing.T) {
	clearLLMEnv(t)
	settings := openTestSettings(t)
	require.NoError(t, settings.Set(context.Background(), store.SettingProvider, "gemini"))

	cfg, err := resolveLLMConfig(context.Background(), settings, "mock")
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.Provider)
}

func runCLI(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--db", dbPath}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigCommands(t *testing.T) {
	clearLLMEnv(t)
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := runCLI(t, db, "config", "set", "theme", "light")
	require.NoError(t, err)

	out, err := runCLI(t, db, "config", "get", "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	_, err = runCLI(t, db, "config", "set", "theme", "neon")
	assert.Error(t, err)

	_, err = runCLI(t, db, "config", "set", "api_key", "not-a-key")
	assert.Error(t, err, "malformed key must be rejected")

	out, err = runCLI(t, db, "config", "set", "api_key", "sk-proj-abcdef1234567890")
	require.NoError(t, err)
	assert.NotContains(t, out, "abcdef1234567890")

	out, err = runCLI(t, db, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "api_key")
	assert.Contains(t, out, "7890")
	assert.Contains(t, out, "theme")

	_, err = runCLI(t, db, "config", "set", "colour", "x")
	assert.Error(t, err)
}

func TestGenerateReportsActionableError(t *testing.T) {
	clearLLMEnv(t)
	db := filepath.Join(t.TempDir(), "cli.db")

	// A closed server refuses the connection.
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	t.Setenv("QUIZCRAFT_OPENAI_API_KEY", "sk-test-key-0123456789")
	t.Setenv("QUIZCRAFT_OPENAI_BASE_URL", srv.URL+"/v1")

	_, err := runCLI(t, db, "generate", "--provider", "openai", "--topic", "Photosynthesis", "--print")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Could not reach the AI service")
}

func TestGenerateWithSampleProvider(t *testing.T) {
	clearLLMEnv(t)
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := runCLI(t, db, "generate", "--provider", "mock", "--topic", "Water", "--count", "3", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "Sample Quiz: The Water Cycle")
	assert.Contains(t, out, `"precipitation"`)

	out, err = runCLI(t, db, "usage")
	require.NoError(t, err)
	assert.Contains(t, out, "600")
}

func TestGenerateRejectsBadParameters(t *testing.T) {
	clearLLMEnv(t)
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := runCLI(t, db, "generate", "--provider", "mock", "--topic", "x", "--count", "99", "--print")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")
}

func TestResetRequiresTarget(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := runCLI(t, db, "reset")
	assert.Error(t, err)

	out, err := runCLI(t, db, "reset", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 0 quiz records.")
}

func TestStatsEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := runCLI(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Quizzes taken:  0")
}
