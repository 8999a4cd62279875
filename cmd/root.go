package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "hr-scout"

	defaultEnvFile = ".env"
)

type Config struct {
	Locale      string        `mapstructure:"locale"`
	Scope       string        `mapstructure:"scope"`
	Output      string        `mapstructure:"output"`
	ExcludeFile string        `mapstructure:"exclude-file"`
	MinScore    int           `mapstructure:"min-score"`
	HTTPTimeout time.Duration `mapstructure:"http-timeout"`

	Search     *SearchConfig     `mapstructure:"search"`
	Completion *CompletionConfig `mapstructure:"completion"`
	History    *HistoryConfig    `mapstructure:"history"`
}

type SearchConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	EngineID   string `mapstructure:"engine-id"`
}

type CompletionConfig struct {
	Provider     string        `mapstructure:"provider"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	OpenAI       *OpenAIConfig `mapstructure:"openai"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// Both the plain names and the VITE_ prefixed ones used by the web front-end are accepted.
var envBindings = map[string][]string{
	"search.api-key":                 {"GOOGLE_API_KEY", "VITE_GOOGLE_API_KEY"},
	"search.api-key-file":            {"GOOGLE_API_KEY_FILE"},
	"search.engine-id":               {"GOOGLE_SEARCH_ENGINE_ID", "VITE_GOOGLE_SEARCH_ENGINE_ID"},
	"completion.provider":            {"HR_SCOUT_COMPLETION_PROVIDER"},
	"completion.openai.api-key":      {"OPENAI_API_KEY", "VITE_OPENAI_API_KEY"},
	"completion.openai.model":        {"OPENAI_MODEL", "VITE_OPENAI_MODEL"},
	"completion.openai.base-url":     {"OPENAI_BASE_URL"},
	"completion.openai.api-key-file": {"OPENAI_API_KEY_FILE"},
	"completion.gemini.api-key":      {"GEMINI_API_KEY"},
	"completion.gemini.api-key-file": {"GEMINI_API_KEY_FILE"},
	"completion.gemini.model":        {"GEMINI_MODEL"},
	"history.path":                   {"HR_SCOUT_HISTORY"},
}

var (
	// Used for flags.
	cfgFile string
	envFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hr-scout finds job candidates for a free-text brief using web search and a language model",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, envs := range envBindings {
		if err := viper.BindEnv(append([]string{key}, envs...)...); err != nil {
			log.Fatalf("binding environment variables for %s: %v", key, err)
		}
	}

	viper.SetDefault("locale", "pl")
	viper.SetDefault("scope", "linkedin")
	viper.SetDefault("output", "table")
	viper.SetDefault("completion.provider", "openai")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hr-scout.yaml in current directory)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "a dotenv file with API credentials (default is .env in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// The version command works without any configuration.
	if versionCmd.CalledAs() != "" {
		return
	}

	if err := loadEnvFile(envFile); err != nil {
		log.Fatal(err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without an explicit --config a missing file is fine: everything can come from the environment.
	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

// loadEnvFile exports variables from a dotenv file without overriding the real environment.
// The default file is optional, an explicitly given one is not.
func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(defaultEnvFile); err != nil {
			return nil
		}
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	if config.Completion == nil {
		config.Completion = &CompletionConfig{}
	}
	if config.Completion.OpenAI == nil {
		config.Completion.OpenAI = &OpenAIConfig{}
	}
	if config.Completion.Gemini == nil {
		config.Completion.Gemini = &GeminiConfig{}
	}
	if config.History == nil {
		config.History = &HistoryConfig{}
	}

	return config, nil
}
