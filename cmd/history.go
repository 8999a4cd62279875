package cmd

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/history"
	"github.com/spigell/hr-scout/internal/logger"
	"github.com/spigell/hr-scout/internal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded searches",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded searches, newest first",
	Run: func(cmd *cobra.Command, _ []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		withHistory(cmd, func(ctx context.Context, store *history.SQLiteStore, format render.Format) error {
			runs, err := store.List(ctx, limit)
			if err != nil {
				return err
			}
			return render.Runs(cmd.OutOrStdout(), format, runs)
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recorded search with its candidates",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withHistory(cmd, func(ctx context.Context, store *history.SQLiteStore, format render.Format) error {
			run, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			return render.Run(cmd.OutOrStdout(), format, run)
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd)

	historyCmd.PersistentFlags().StringP("output", "o", "", "output format: table, json or yaml")
	historyListCmd.Flags().IntP("limit", "n", 20, "maximum number of searches to list, 0 for all")
}

func withHistory(cmd *cobra.Command, fn func(ctx context.Context, store *history.SQLiteStore, format render.Format) error) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	value := config.Output
	if cmd.Flags().Changed("output") {
		value, _ = cmd.Flags().GetString("output")
	}
	format, err := render.ParseFormat(value)
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	path := strings.TrimSpace(config.History.Path)
	if path == "" {
		logger.Fatal("history database is not configured",
			zap.String("hint", "set history.path in the config file or HR_SCOUT_HISTORY environment variable"),
		)
	}

	store, err := history.NewSQLiteStore(path)
	if err != nil {
		logger.Fatal("opening history database", zap.Error(err))
	}
	defer store.Close()

	if err := fn(cmd.Context(), store, format); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			logger.Fatal("no such search", zap.Error(err))
		}
		logger.Fatal("reading history", zap.Error(err))
	}
}
