package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/store"
	"github.com/abhisek/quizcraft/internal/ui/theme"
)

// resolveLLMConfig layers provider configuration: the --provider flag,
// then QUIZCRAFT_* environment variables, then stored settings, then the
// provider's standard key variable (OPENAI_API_KEY, ...).
func resolveLLMConfig(ctx context.Context, settings store.SettingsRepo, providerFlag string) (llm.Config, error) {
	cfg := llm.ConfigFromEnv()

	stored, err := settings.All(ctx)
	if err != nil {
		return llm.Config{}, err
	}

	switch {
	case providerFlag != "":
		cfg.Provider = providerFlag
	case os.Getenv("QUIZCRAFT_LLM_PROVIDER") != "":
	case stored[store.SettingProvider] != "":
		cfg.Provider = stored[store.SettingProvider]
	default:
		if d, ok := llm.DiscoverConfig(); ok {
			cfg.Provider = d.Provider
		}
	}

	if cfg.APIKey() == "" {
		if k := stored[store.SettingAPIKey]; k != "" {
			cfg.SetAPIKey(k)
		} else if d, ok := llm.DiscoverConfig(); ok && d.Provider == cfg.Provider {
			cfg.SetAPIKey(d.APIKey())
		}
	}

	envModel := "QUIZCRAFT_" + strings.ToUpper(cfg.Provider) + "_MODEL"
	if m := stored[store.SettingDefaultModel]; m != "" && os.Getenv(envModel) == "" {
		cfg.SetModel(m)
	}

	return cfg, nil
}

// settingValidators check a value before it is stored.
var settingValidators = map[string]func(string) error{
	store.SettingTheme: func(v string) error {
		_, err := theme.Lookup(v)
		return err
	},
	store.SettingProvider: func(v string) error {
		switch v {
		case "openai", "anthropic", "gemini", "openrouter", "mock":
			return nil
		}
		return fmt.Errorf("unknown LLM provider: %q", v)
	},
	store.SettingDefaultModel: func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("model must not be empty")
		}
		return nil
	},
}

func knownSettings() []string {
	keys := []string{store.SettingAPIKey}
	for k := range settingValidators {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func displayValue(key, value string) string {
	if key == store.SettingAPIKey {
		return llm.MaskAPIKey(value)
	}
	return value
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored settings (api_key, provider, default_model, theme)",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], strings.TrimSpace(args[1])
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		settings := s.SettingsRepo()

		if key == store.SettingAPIKey {
			cfg, err := resolveLLMConfig(ctx, settings, "")
			if err != nil {
				return err
			}
			if err := llm.ValidateAPIKey(cfg.Provider, value); err != nil {
				return err
			}
		} else if validate, ok := settingValidators[key]; ok {
			if err := validate(value); err != nil {
				return err
			}
		} else {
			return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(knownSettings(), ", "))
		}

		if err := settings.Set(ctx, key, value); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, displayValue(key, value))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reveal, _ := cmd.Flags().GetBool("reveal")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		v, ok, err := s.SettingsRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not set", args[0])
		}
		if !reveal {
			v = displayValue(args[0], v)
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		all, err := s.SettingsRepo().All(cmd.Context())
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No settings stored.")
			return nil
		}

		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", k, displayValue(k, all[k]))
		}
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a stored setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.SettingsRepo().Delete(cmd.Context(), args[0])
	},
}

func init() {
	configGetCmd.Flags().Bool("reveal", false, "Print the API key unmasked")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configUnsetCmd)
}
