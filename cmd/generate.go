package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizcraft/internal/event"
	"github.com/abhisek/quizcraft/internal/history"
	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/logger"
	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/quizgen"
	"github.com/abhisek/quizcraft/internal/store"
	"github.com/abhisek/quizcraft/internal/ui/theme"
	"github.com/abhisek/quizcraft/internal/usage"
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a quiz from study material and take it",
	Long: `Generate a quiz from study material and take it in the terminal.

The material comes from --topic, --file, the positional argument, or stdin
(stdin requires --print, since answers are read from stdin while playing).`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringP("topic", "t", "", "Topic or study material")
	f.StringP("file", "f", "", "Read study material from a file")
	f.IntP("count", "n", 5, fmt.Sprintf("Number of questions (1-%d)", quiz.MaxQuestions))
	f.StringP("difficulty", "d", string(quiz.Medium), "Difficulty: easy, medium, hard")
	f.String("types", "multiple-choice,true-false", "Comma-separated question types: multiple-choice (mc), true-false (tf), fill-blank (fill)")
	f.String("focus", "", "Optional focus area within the material")
	f.StringP("model", "m", "", "Model to request (defaults to the configured model)")
	f.String("provider", "", "LLM provider: openai, anthropic, gemini, openrouter, mock (offline sample quiz)")
	f.Bool("print", false, "Print the quiz as JSON instead of playing it")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	f := cmd.Flags()

	printOnly, _ := f.GetBool("print")
	material, fromStdin, err := readMaterial(cmd, args)
	if err != nil {
		return err
	}
	if fromStdin && !printOnly {
		return errors.New("material read from stdin can only be used with --print; use --file to play")
	}

	count, _ := f.GetInt("count")
	difficulty, _ := f.GetString("difficulty")
	typeList, _ := f.GetString("types")
	focus, _ := f.GetString("focus")
	model, _ := f.GetString("model")
	providerName, _ := f.GetString("provider")

	types, err := quiz.ParseQuestionTypes(typeList)
	if err != nil {
		return userError(quizgen.NewError(quizgen.StageParameters, model, err))
	}
	params, err := quiz.NewParameters(material, count, quiz.Difficulty(strings.ToLower(difficulty)), types, focus, model)
	if err != nil {
		return userError(quizgen.NewError(quizgen.StageParameters, model, err))
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	settings := s.SettingsRepo()

	cfg, err := resolveLLMConfig(ctx, settings, providerName)
	if err != nil {
		return err
	}
	provider, err := llm.NewProvider(ctx, cfg, s.EventRepo())
	if err != nil {
		return userError(quizgen.NewError(quizgen.StageRequest, cfg.Model(), err))
	}

	tracker, err := usage.Load(ctx, s.UsageRepo(), llm.DefaultPricing)
	if err != nil {
		return err
	}

	th := loadTheme(ctx, settings)

	qcfg := quizgen.DefaultConfig()
	qcfg.FallbackModel = cfg.FallbackModel()
	gen := quizgen.New(provider, tracker, qcfg, quizgen.WithSink(event.Multi(
		history.NewRecorder(s.HistoryRepo()),
		generationNotices(out, th),
	)))

	stats := quiz.ContentStats(material)
	lipgloss.Fprintln(out, th.Subtitle.Render(fmt.Sprintf("Material: %d characters, %d words", stats.Characters, stats.Words)))
	lipgloss.Fprintln(out, th.Subtitle.Render(fmt.Sprintf("Generating %d %s questions with %s...", params.QuestionCount, params.Difficulty, modelLabel(params, provider))))

	sess, err := gen.Generate(ctx, params)
	if err != nil {
		return userError(err)
	}

	if printOnly {
		data, err := json.MarshalIndent(sess.Document(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if err := playQuiz(ctx, cmd.InOrStdin(), out, th, sess); err != nil {
		return err
	}

	snap := tracker.Snapshot()
	lipgloss.Fprintln(out, th.Hint.Render(fmt.Sprintf("Tokens this session: %d (%s)", snap.SessionTokens, formatCost(snap.SessionCost))))
	return nil
}

// generationNotices reports a model downgrade and estimated pricing to the
// learner while a quiz is generated.
func generationNotices(out io.Writer, th theme.Theme) event.Sink {
	return event.SinkFunc(func(_ context.Context, e event.Event) {
		switch e := e.(type) {
		case quizgen.ModelDowngraded:
			lipgloss.Fprintln(out, th.Hint.Render(fmt.Sprintf("%s is rate limited, trying %s...", e.From, e.To)))
		case quizgen.GenerationSucceeded:
			if e.Charge.PricingFallback {
				lipgloss.Fprintln(out, th.Hint.Render(fmt.Sprintf("No price known for %s; cost estimated at %s rates.", e.Charge.Model, e.Charge.PricedAs)))
			}
		}
	})
}

// readMaterial picks the study material source. fromStdin reports whether
// it was read from stdin.
func readMaterial(cmd *cobra.Command, args []string) (material string, fromStdin bool, err error) {
	topic, _ := cmd.Flags().GetString("topic")
	file, _ := cmd.Flags().GetString("file")

	switch {
	case topic != "":
		return topic, false, nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", false, fmt.Errorf("read material: %w", err)
		}
		return string(data), false, nil
	case len(args) > 0:
		return strings.Join(args, " "), false, nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", true, fmt.Errorf("read material from stdin: %w", err)
	}
	return string(data), true, nil
}

// userError replaces a generation failure with its actionable message.
// The full error is logged.
func userError(err error) error {
	var gerr *quizgen.Error
	if !errors.As(err, &gerr) {
		return err
	}
	logger.Default().WithError(gerr.Err).WithField("kind", gerr.Kind).Debug("generation error detail")
	return errors.New(gerr.UserMessage())
}

func modelLabel(p quiz.Parameters, provider llm.Provider) string {
	if p.Model != "" {
		return p.Model
	}
	return provider.ModelID()
}

// loadTheme returns the stored theme, falling back to the default one.
func loadTheme(ctx context.Context, settings store.SettingsRepo) theme.Theme {
	name, _, err := settings.Get(ctx, store.SettingTheme)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Warn("could not read theme setting")
	}
	th, err := theme.Lookup(name)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Warn("ignoring stored theme")
		th, _ = theme.Lookup(theme.Default)
	}
	return th
}
