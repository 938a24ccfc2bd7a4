package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mkravets/voicehire/internal/ai"
	"github.com/mkravets/voicehire/internal/catalog"
	"github.com/mkravets/voicehire/internal/filtering"
	"github.com/mkravets/voicehire/internal/intent"
	"github.com/mkravets/voicehire/internal/logger"
	"github.com/mkravets/voicehire/internal/pipeline"
	"github.com/mkravets/voicehire/internal/scoring"
	"github.com/mkravets/voicehire/internal/secrets"
)

const (
	PromptAnotherCommand = "Run another command"
	PromptDumpToFile     = "Dump results to file"
	PromptExit           = "Exit"
)

var errExit = errors.New("exit requested")

var resultPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptAnotherCommand, PromptDumpToFile, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run [transcript]",
	Short: "Run a voice command against the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("interactive", "i", false, "start an interactive command session")
	runCmd.Flags().StringP("catalog-file", "c", "", "catalog snapshot exported by the persistence layer")
	runCmd.Flags().StringP("mode", "m", "", "scoring mode: rule_based or ai_assisted")
	runCmd.Flags().String("exclude-file", "", "a file with talents and opportunities excluded from matching")

	viper.BindPFlag("catalog-file", runCmd.Flags().Lookup("catalog-file"))
	viper.BindPFlag("scoring.mode", runCmd.Flags().Lookup("mode"))
	viper.BindPFlag("exclude-file", runCmd.Flags().Lookup("exclude-file"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting voicehire", zap.String("version", version))

	if config == nil {
		config = &Config{}
	}

	catalogFile := strings.TrimSpace(viper.GetString("catalog-file"))
	if catalogFile == "" {
		logger.Fatal("catalog file is required",
			zap.String("hint", "set the --catalog-file flag, the catalog-file config key or VOICEHIRE_CATALOG_FILE"),
		)
	}

	snapshot, err := catalog.LoadSnapshot(catalogFile)
	if err != nil {
		logger.Fatal("loading catalog snapshot", zap.Error(err))
	}

	filters := []filtering.Filter{
		filtering.NewDuplicates(),
		filtering.NewExcludeFile(viper.GetString("exclude-file")),
	}
	if err := filtering.Run(ctx, logger, filters, snapshot); err != nil {
		logger.Fatal("filtering catalog snapshot", zap.Error(err))
	}

	logger.Info("catalog snapshot loaded",
		zap.String("file", catalogFile),
		zap.Int("talents", snapshot.Talents.Len()),
		zap.Int("opportunities", snapshot.Opportunities.Len()),
		zap.Int("open_opportunities", snapshot.Opportunities.Open().Len()),
	)

	engine := buildPipeline(ctx, config, logger)

	interactive := strings.EqualFold(cmd.Flag("interactive").Value.String(), "true")
	if !interactive {
		transcript := strings.TrimSpace(strings.Join(args, " "))
		if transcript == "" {
			logger.Fatal("transcript is required", zap.String("hint", "pass the command text as arguments or use --interactive"))
		}

		result, err := engine.Run(ctx, transcript, snapshot)
		if err != nil {
			logger.Fatal("command failed", zap.Error(err))
		}
		reportResult(logger, result)
		return
	}

	runInteractive(ctx, engine, snapshot, logger)
}

func runInteractive(ctx context.Context, engine *pipeline.Pipeline, snapshot *catalog.Snapshot, logger *zap.Logger) {
	for {
		commandPrompt := promptui.Prompt{Label: "Command"}
		transcript, err := commandPrompt.Run()
		if err != nil {
			logger.Info("exiting", zap.Error(err))
			return
		}

		result, err := engine.Run(ctx, transcript, snapshot)
		if err != nil {
			if errors.Is(err, pipeline.ErrUnrecognizedCommand) {
				logger.Warn("command not understood", zap.String("transcript", transcript))
				continue
			}
			logger.Warn("command failed", zap.Error(err))
			continue
		}

		reportResult(logger, result)

		if err := handleResultAction(logger, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Warn("action failed", zap.Error(err))
		}
	}
}

func handleResultAction(logger *zap.Logger, result *pipeline.Result) error {
	_, action, err := resultPrompt.Run()
	if err != nil {
		return errExit
	}

	switch action {
	case PromptAnotherCommand:
		return nil
	case PromptDumpToFile:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func reportResult(logger *zap.Logger, result *pipeline.Result) {
	logger.Info("ranked results",
		zap.String("kind", string(result.Kind)),
		zap.Int("count", result.Len()),
		zap.String("message", result.Message),
	)

	for i, match := range result.Matches {
		name := ""
		switch {
		case match.Talent != nil:
			name = match.Talent.Name
		case match.Opportunity != nil:
			name = match.Opportunity.Title
		}
		logger.Info(fmt.Sprintf("%2d. %s", i+1, name),
			zap.Int("score", match.Score),
			zap.String("explanation", match.Explanation),
		)
	}

	if result.Stats != nil {
		pretty, _ := json.MarshalIndent(result.Stats, "", "  ")
		logger.Info(fmt.Sprintf("catalog stats: \n%s", pretty))
	}
}

// buildPipeline assembles the resolver and scorer chains. The rule-based
// strategies are always present; the AI provider is layered on top when
// enabled and falls back to them on failure.
func buildPipeline(ctx context.Context, config *Config, logger *zap.Logger) *pipeline.Pipeline {
	ruleResolver := intent.NewRuleResolver(logger)
	ruleScorer := scoring.NewRuleScorer()

	var resolver intent.Resolver = ruleResolver
	var scorer scoring.Scorer = ruleScorer

	mode := scoring.ModeRuleBased
	if config.Scoring != nil && strings.TrimSpace(config.Scoring.Mode) != "" {
		mode = scoring.Mode(strings.TrimSpace(config.Scoring.Mode))
	}

	if config.AI != nil && config.AI.Enabled {
		assistant, err := newAssistant(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("ai provider unavailable, using rule-based strategies only", zap.Error(err))
		} else {
			resolver = intent.NewFallbackResolver(assistant.Classifier, ruleResolver, logger)
			if mode == scoring.ModeAIAssisted {
				scorer = scoring.NewFallback(assistant.Scorer, ruleScorer, logger)
			}
		}
	} else if mode == scoring.ModeAIAssisted {
		logger.Warn("ai_assisted scoring requested but ai is disabled, using rule-based scoring")
	}

	timeout := pipeline.DefaultTimeout
	if config.Pipeline != nil && config.Pipeline.TimeoutSeconds > 0 {
		timeout = time.Duration(config.Pipeline.TimeoutSeconds) * time.Second
	}

	return pipeline.New(resolver, scorer, timeout, logger)
}

func newAssistant(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*ai.Assistant, error) {
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key or ai.gemini.api-key-file)", err)
	}

	return ai.New(ctx, &ai.Config{
		Provider: cfg.Provider,
		Gemini: &ai.GeminiConfig{
			APIKey:       apiKey,
			Model:        cfg.Gemini.Model,
			MaxRetries:   cfg.Gemini.MaxRetries,
			MaxLogLength: cfg.Gemini.MaxLogLength,
		},
	}, logger)
}
