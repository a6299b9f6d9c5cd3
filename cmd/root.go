package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wandermatch/matchengine/internal/embedder"
	"github.com/wandermatch/matchengine/internal/matcher"
	"github.com/wandermatch/matchengine/internal/scorer"
)

const (
	app = "matchengine"
)

// Config is the full engine configuration, read from matchengine.yaml,
// environment and flags.
type Config struct {
	PoolFile   string `mapstructure:"pool-file"`
	SurveyDir  string `mapstructure:"survey-dir"`
	ResultsDir string `mapstructure:"results-dir"`

	Cache     *CacheConfig     `mapstructure:"cache"`
	Embedding *embedder.Config `mapstructure:"embedding"`
	Scoring   *scorer.Config   `mapstructure:"scoring"`
	Matching  *matcher.Config  `mapstructure:"matching"`
}

// CacheConfig selects the embedding cache backend.
type CacheConfig struct {
	Backend string `mapstructure:"backend"` // file or sqlite
	Path    string `mapstructure:"path"`    // cache dir (file) or database path (sqlite)
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "matchengine pairs travelers with compatible companions from a survey candidate pool",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("embedding.api-key", "OPENAI_API_KEY"); err != nil {
		log.Fatalf("binding OPENAI_API_KEY environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is matchengine.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	viper.SetDefault("pool-file", "user_pool.csv")
	viper.SetDefault("survey-dir", "survey_results")
	viper.SetDefault("results-dir", "results")
	viper.SetDefault("cache.backend", "file")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine; defaults and flags cover a bare run.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
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

	return config, nil
}
