package cli

import (
	"fmt"
	"os"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimlens",
	Short: "Claimlens - Claim extraction and source scoring for social media posts",
	Long: `Claimlens finds check-worthy factual claims in post text and ranks
web sources for each claim by domain credibility and semantic relevance.

It does not determine whether a claim is true.

Claimlens segments text into clauses, classifies which clauses assert
checkable facts, searches the web for each claim, and scores every
result by how reputable its domain is and how closely its title matches
the claim.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Claimlens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimlens v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.claimlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.claimlens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CLAIMLENS_*
	viper.SetEnvPrefix("CLAIMLENS")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the effective configuration from defaults, the
// config file, environment variables, and shared flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetDuration("http.timeout"); v > 0 {
		cfg.HTTP.Timeout = v
	}
	if v := viper.GetString("http.user_agent"); v != "" {
		cfg.HTTP.UserAgent = v
	}
	if v := viper.GetInt64("http.max_body_bytes"); v > 0 {
		cfg.HTTP.MaxBodyBytes = v
	}
	if v := viper.GetString("search.base_url"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v := viper.GetFloat64("search.requests_per_second"); v > 0 {
		cfg.Search.RequestsPerSecond = v
	}
	if v := viper.GetInt("search.burst"); v > 0 {
		cfg.Search.Burst = v
	}
	if v := viper.GetInt("search.max_results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if v := viper.GetString("embedding.provider"); v != "" {
		cfg.Embedding.Provider = v
	}
	if v := viper.GetString("embedding.model"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := viper.GetString("embedding.base_url"); v != "" {
		cfg.Embedding.BaseURL = v
	}
	if v := viper.GetDuration("embedding.timeout"); v > 0 {
		cfg.Embedding.Timeout = v
	}
	if v := viper.GetDuration("embedding.cache_ttl"); v > 0 {
		cfg.Embedding.CacheTTL = v
	}
	if v := viper.GetString("classifier.weights_path"); v != "" {
		cfg.Classifier.WeightsPath = v
	}
	if v := viper.GetString("credibility.dataset_path"); v != "" {
		cfg.Credibility.DatasetPath = v
	}
	if v := viper.GetInt("concurrency.score_workers"); v > 0 {
		cfg.Concurrency.ScoreWorkers = v
	}
	if v := viper.GetInt("concurrency.check_workers"); v > 0 {
		cfg.Concurrency.CheckWorkers = v
	}
	if v := viper.GetInt("concurrency.batch_workers"); v > 0 {
		cfg.Concurrency.BatchWorkers = v
	}
	if viper.IsSet("output.include_footer") {
		cfg.Output.IncludeFooter = viper.GetBool("output.include_footer")
	}

	// API keys come from the environment, never from the config file
	cfg.Search.APIKey = os.Getenv("BRAVE_API_KEY")
	switch cfg.Embedding.Provider {
	case "openai":
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Embedding.BaseURL = baseURL
		}
	}

	cfg.Output.Verbose = verbose
	return cfg
}
