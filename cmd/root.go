package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "voicehire"
)

type Config struct {
	CatalogFile string          `mapstructure:"catalog-file"`
	Scoring     *ScoringConfig  `mapstructure:"scoring"`
	Pipeline    *PipelineConfig `mapstructure:"pipeline"`
	AI          *AIConfig       `mapstructure:"ai"`
}

type ScoringConfig struct {
	Mode string `mapstructure:"mode"`
}

type PipelineConfig struct {
	TimeoutSeconds int `mapstructure:"timeout-seconds"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "voicehire is a cli for running voice commands against a talent/opportunity catalog",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("catalog-file", "VOICEHIRE_CATALOG_FILE"); err != nil {
		log.Fatalf("binding VOICEHIRE_CATALOG_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is voicehire.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// We can't proceed if an explicitly requested config file parsed with error.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")
	viper.SetConfigType("yaml")

	// The run command can operate on flags and env alone.
	_ = viper.ReadInConfig()
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
