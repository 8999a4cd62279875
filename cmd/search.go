package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/ai"
	"github.com/spigell/hr-scout/internal/ai/gemini"
	"github.com/spigell/hr-scout/internal/ai/openai"
	"github.com/spigell/hr-scout/internal/filtering"
	"github.com/spigell/hr-scout/internal/google"
	"github.com/spigell/hr-scout/internal/history"
	"github.com/spigell/hr-scout/internal/logger"
	"github.com/spigell/hr-scout/internal/render"
	"github.com/spigell/hr-scout/internal/scout"
	"github.com/spigell/hr-scout/internal/secrets"
	"github.com/spigell/hr-scout/internal/talent"
)

const (
	providerOpenAI = "openai"
	providerGemini = "gemini"
)

var searchCmd = &cobra.Command{
	Use:   "search [brief]",
	Short: "Search candidates matching a job brief",
	Long: `Search candidates matching a job brief.

The brief is taken from the arguments or from --brief-file ("-" reads stdin).
Without Google Search and completion API keys demo candidates are returned.`,
	Run: func(cmd *cobra.Command, args []string) {
		search(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("brief-file", "f", "", "read the brief from a file, - for stdin")
	searchCmd.Flags().StringP("locale", "l", "", "language of prompts, messages and demo data: pl or en")
	searchCmd.Flags().StringP("scope", "s", "", "platform scope: linkedin or multi")
	searchCmd.Flags().StringP("output", "o", "", "output format: table, json or yaml")
	searchCmd.Flags().StringP("exclude-file", "e", "", "special file with profiles to exclude. Default is unset.")
	searchCmd.Flags().Int("min-score", 0, "drop candidates scored below this value")
	searchCmd.Flags().BoolP("interactive", "i", false, "review candidates interactively")
	searchCmd.Flags().StringSlice("skip-filter", nil, "filters to disable: duplicates, min_score, exclude_file")
	searchCmd.Flags().Bool("no-history", false, "do not record this search in the history database")

	viper.BindPFlag("locale", searchCmd.Flags().Lookup("locale"))
	viper.BindPFlag("scope", searchCmd.Flags().Lookup("scope"))
	viper.BindPFlag("output", searchCmd.Flags().Lookup("output"))
	viper.BindPFlag("exclude-file", searchCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("min-score", searchCmd.Flags().Lookup("min-score"))
}

// search is the main command for the cli.
func search(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	locale, err := talent.ParseLocale(config.Locale)
	if err != nil {
		logger.Fatal("parsing locale", zap.Error(err))
	}
	scope, err := talent.ParseScope(config.Scope)
	if err != nil {
		logger.Fatal("parsing scope", zap.Error(err))
	}
	format, err := render.ParseFormat(config.Output)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	briefFile, _ := cmd.Flags().GetString("brief-file")
	brief, err := readBrief(args, briefFile, cmd.InOrStdin())
	if err != nil {
		logger.Fatal("reading the brief", zap.Error(err))
	}
	if strings.TrimSpace(brief) == "" {
		logger.Warn("the brief is empty, a generic query will be used")
	}

	logger.Info("starting the hr-scout", zap.String("version", version))

	store, err := newStore(ctx, config, locale, scope, logger)
	if err != nil {
		logger.Fatal("preparing the search", zap.Error(err))
	}

	cancel := store.Subscribe(func(st scout.State) {
		logger.Debug("state changed",
			zap.Bool("loading", st.Loading),
			zap.Int("candidates", len(st.Candidates)),
			zap.String("error", st.Error),
		)
	})
	defer cancel()

	store.SetBrief(brief)
	found := store.SearchCandidates(ctx)
	state := store.State()

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory {
		recordRun(ctx, config, logger, newRun(store, brief, state.Error, found))
	}

	if state.Error != "" {
		render.Error(cmd.ErrOrStderr(), state.Error)
		logger.Fatal("exiting", zap.String("reason", "search failed"))
	}

	if !store.HasCredentials() {
		logger.Warn("showing demo candidates",
			zap.String("hint", "set GOOGLE_API_KEY, GOOGLE_SEARCH_ENGINE_ID and OPENAI_API_KEY (or GEMINI_API_KEY) to search for real"),
		)
	}

	filters := filtering.Default()
	skipped, _ := cmd.Flags().GetStringSlice("skip-filter")
	for _, name := range skipped {
		filtering.DisableByName(filters, strings.TrimSpace(name), "disabled via flag")
	}
	filtered, err := filtering.Run(ctx, &filtering.Config{
		MinScore:    config.MinScore,
		ExcludeFile: config.ExcludeFile,
	}, filtering.Deps{Logger: logger}, filters, found)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	for _, status := range filtering.Describe(filters) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.Any("details", status.Details),
		)
	}

	if len(filtered) == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		if err := review(cmd.OutOrStdout(), logger, config.ExcludeFile, filtered); err != nil && !errors.Is(err, errExit) {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	if err := render.Candidates(cmd.OutOrStdout(), format, filtered); err != nil {
		logger.Fatal("writing candidates", zap.Error(err))
	}
}

// newStore resolves credentials and wires the search and completion clients into a store.
// Clients are only built when both keys are present; otherwise the store serves demo data.
func newStore(ctx context.Context, config *Config, locale talent.Locale, scope talent.Scope, logger *zap.Logger) (*scout.Store, error) {
	searchKey, err := secrets.Load(secrets.Source{
		Name:     "google search api key",
		Value:    config.Search.APIKey,
		File:     config.Search.APIKeyFile,
		Optional: true,
	})
	if err != nil {
		return nil, err
	}

	provider := strings.ToLower(strings.TrimSpace(config.Completion.Provider))
	if provider == "" {
		provider = providerOpenAI
	}

	var completionKey, model string
	switch provider {
	case providerOpenAI:
		model = config.Completion.OpenAI.Model
		completionKey, err = secrets.Load(secrets.Source{
			Name:     "openai api key",
			Value:    config.Completion.OpenAI.APIKey,
			File:     config.Completion.OpenAI.APIKeyFile,
			Optional: true,
		})
	case providerGemini:
		model = config.Completion.Gemini.Model
		if strings.TrimSpace(model) == "" {
			model = gemini.DefaultModel
		}
		completionKey, err = secrets.Load(secrets.Source{
			Name:     "gemini api key",
			Value:    config.Completion.Gemini.APIKey,
			File:     config.Completion.Gemini.APIKeyFile,
			Optional: true,
		})
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", config.Completion.Provider)
	}
	if err != nil {
		return nil, err
	}

	cfg := scout.Config{
		SearchAPIKey:     searchKey,
		SearchEngineID:   strings.TrimSpace(config.Search.EngineID),
		CompletionAPIKey: completionKey,
		CompletionModel:  model,
		Locale:           locale,
		Scope:            scope,
	}
	deps := scout.Deps{Logger: logger}

	if searchKey == "" || completionKey == "" {
		return scout.New(cfg, deps), nil
	}

	if cfg.SearchEngineID == "" {
		logger.Warn("google search engine id is not configured",
			zap.String("hint", "set GOOGLE_SEARCH_ENGINE_ID or search.engine-id"),
		)
	}

	completer, err := newCompleter(ctx, provider, config, completionKey, model, logger)
	if err != nil {
		return nil, fmt.Errorf("building completion client: %w", err)
	}

	deps.Searcher = google.New(logger, searchKey, cfg.SearchEngineID, config.HTTPTimeout)
	deps.Extractor = ai.NewExtractor(completer, locale, scope, logger, config.Completion.MaxLogLength)

	return scout.New(cfg, deps), nil
}

func newCompleter(ctx context.Context, provider string, config *Config, apiKey, model string, logger *zap.Logger) (ai.Completer, error) {
	if provider == providerGemini {
		return gemini.NewGenerator(ctx, logger, apiKey, model)
	}
	return openai.New(logger, config.Completion.OpenAI.BaseURL, apiKey, model, config.HTTPTimeout)
}

// newRun describes a finished search for the history database. Demo runs never send a
// query, so none is recorded for them.
func newRun(store *scout.Store, brief, searchErr string, found []talent.Candidate) history.Run {
	cfg := store.Config()
	run := history.Run{
		Locale:     cfg.Locale,
		Scope:      cfg.Scope,
		Brief:      brief,
		Demo:       !store.HasCredentials(),
		Error:      searchErr,
		Candidates: found,
	}
	if !run.Demo {
		run.Query = scout.GenerateSearchQuery(brief, cfg.Scope)
	}
	return run
}

// recordRun stores the search in the history database when one is configured.
// History failures never fail the search itself.
func recordRun(ctx context.Context, config *Config, logger *zap.Logger, run history.Run) {
	path := strings.TrimSpace(config.History.Path)
	if path == "" {
		return
	}

	store, err := history.NewSQLiteStore(path)
	if err != nil {
		logger.Warn("opening history database", zap.String("path", path), zap.Error(err))
		return
	}
	defer store.Close()

	recorded, err := store.Record(ctx, run)
	if err != nil {
		logger.Warn("recording search run", zap.Error(err))
		return
	}
	logger.Debug("search run recorded", zap.String("id", recorded.ID))
}

// readBrief returns the brief from a file (- for stdin) or joins the positional arguments.
func readBrief(args []string, file string, stdin io.Reader) (string, error) {
	file = strings.TrimSpace(file)
	if file != "" && len(args) > 0 {
		return "", errors.New("brief must be given either as arguments or with --brief-file, not both")
	}

	switch file {
	case "":
		return strings.Join(args, " "), nil
	case "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading brief file: %w", err)
		}
		return string(data), nil
	}
}
