package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/quizgen"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the configured API key can reach the LLM endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		providerName, _ := cmd.Flags().GetString("provider")
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		cfg, err := resolveLLMConfig(ctx, s.SettingsRepo(), providerName)
		if err != nil {
			return err
		}
		provider, err := llm.NewProvider(ctx, cfg, nil)
		if err != nil {
			return userError(quizgen.NewError(quizgen.StageRequest, cfg.Model(), err))
		}

		pinger, ok := llm.AsPinger(provider)
		if !ok {
			return fmt.Errorf("the %s provider does not support a connection test", cfg.Provider)
		}

		start := time.Now()
		if err := pinger.Ping(ctx); err != nil {
			return userError(quizgen.NewError(quizgen.StageRequest, cfg.Model(), err))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s with key %s (%dms)\n",
			cfg.Provider, llm.MaskAPIKey(cfg.APIKey()), time.Since(start).Milliseconds())
		return nil
	},
}

func init() {
	pingCmd.Flags().String("provider", "", "LLM provider to test (defaults to the configured provider)")
}
