package cmd

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/smartcv/jobfinder/internal/analyze"
	"github.com/smartcv/jobfinder/internal/jobsearch"
	"github.com/smartcv/jobfinder/internal/profile"
	"github.com/smartcv/jobfinder/internal/secrets"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "smartcv"
)

type Config struct {
	DefaultLocation string          `mapstructure:"default-location"`
	Listen          string          `mapstructure:"listen"`
	CORSOrigins     string          `mapstructure:"cors-origins"`
	Adzuna          *AdzunaConfig   `mapstructure:"adzuna"`
	Analysis        *AnalysisConfig `mapstructure:"analysis"`
	Lexicon         *LexiconConfig  `mapstructure:"lexicon"`
}

type AdzunaConfig struct {
	AppID   string `mapstructure:"app-id"`
	AppKey  string `mapstructure:"app-key"`
	Country string `mapstructure:"country"`
}

type AnalysisConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type LexiconConfig struct {
	ExtraSkills []string `mapstructure:"extra-skills"`
	ExtraTitles []string `mapstructure:"extra-titles"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "smartcv analyzes CVs and finds matching job postings across public boards",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// best effort, a missing .env file is fine
	_ = godotenv.Load()

	if err := viper.BindEnv("default-location", "DEFAULT_JOB_LOCATION"); err != nil {
		log.Fatalf("binding DEFAULT_JOB_LOCATION environment variable: %v", err)
	}
	if err := viper.BindEnv("cors-origins", "CORS_ORIGINS"); err != nil {
		log.Fatalf("binding CORS_ORIGINS environment variable: %v", err)
	}
	if err := viper.BindEnv("adzuna.country", "ADZUNA_COUNTRY"); err != nil {
		log.Fatalf("binding ADZUNA_COUNTRY environment variable: %v", err)
	}
	if err := viper.BindEnv("listen", "LISTEN_ADDR"); err != nil {
		log.Fatalf("binding LISTEN_ADDR environment variable: %v", err)
	}

	viper.SetDefault("default-location", "Remote")
	viper.SetDefault("adzuna.country", "gb")
	viper.SetDefault("listen", ":8000")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is smartcv.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly requested config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// The default config file is optional; env variables alone are enough.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
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
	if config.Adzuna == nil {
		config.Adzuna = &AdzunaConfig{}
	}

	return config, nil
}

// newAnalyzer picks the analysis backend: Gemini when a key resolves,
// otherwise the rule-based extractor.
func newAnalyzer(ctx context.Context, config *Config, logger *zap.Logger) analyze.Analyzer {
	lexicon := profile.DefaultLexicon()
	if config.Lexicon != nil {
		lexicon.Extend(config.Lexicon.ExtraSkills, config.Lexicon.ExtraTitles)
	}

	offline := analyze.NewOffline(profile.NewExtractor(lexicon, logger))

	gemini := config.geminiConfig()
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Env:   "GEMINI_API_KEY",
		File:  gemini.APIKeyFile,
		Value: gemini.APIKey,
	})
	if err != nil {
		logger.Info("using rule-based analysis",
			zap.String("reason", "no gemini api key configured"),
		)
		return offline
	}

	generator, err := analyze.NewGenerator(ctx, apiKey, gemini.Model)
	if err != nil {
		logger.Warn("creating gemini client failed, using rule-based analysis", zap.Error(err))
		return offline
	}

	logger.Info("using gemini analysis", zap.String("model", generator.Model()))

	return analyze.NewExternal(
		generator,
		logger.With(zap.String("provider", "gemini")),
		gemini.MaxLogLength,
	)
}

func newFinder(config *Config, logger *zap.Logger) *jobsearch.Finder {
	appID, _ := secrets.Load(secrets.Source{
		Name:  "adzuna app id",
		Env:   "ADZUNA_APP_ID",
		Value: config.Adzuna.AppID,
	})
	appKey, _ := secrets.Load(secrets.Source{
		Name:  "adzuna app key",
		Env:   "ADZUNA_APP_KEY",
		Value: config.Adzuna.AppKey,
	})

	providers := jobsearch.DefaultProviders(jobsearch.ProviderConfig{
		AdzunaAppID:     appID,
		AdzunaAppKey:    appKey,
		AdzunaCountry:   config.Adzuna.Country,
		DefaultLocation: config.DefaultLocation,
	}, logger)

	return jobsearch.NewFinder(providers, config.DefaultLocation, logger)
}

func (c *Config) geminiConfig() *GeminiConfig {
	if c.Analysis == nil || c.Analysis.Gemini == nil {
		return &GeminiConfig{}
	}
	return c.Analysis.Gemini
}

// corsOrigins splits the comma-separated origins list; empty means allow all.
func corsOrigins(config *Config) []string {
	raw := strings.TrimSpace(config.CORSOrigins)
	if raw == "" || raw == "*" {
		return nil
	}

	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	return origins
}
