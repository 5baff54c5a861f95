package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ghamerly/problem-style-check/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "problemcheck",
	Short: "Style and consistency checks for problem packages",
	Long: `problemcheck audits competitive-programming problem packages for the
style issues that slip past the judge's structural verification: misspelled
words and numbers outside math mode in statements, metadata that strays from
the defaults, missing submission coverage, oversized statement images, and
problem names that collide with already-published problems.

Configuration precedence (highest to lowest):
  1. Command-line flags (--dictionaries, --workers, ...)
  2. Environment variables with the PROBLEMCHECK_ prefix
  3. Configuration file (.problemcheck.yml in the working directory)
  4. Plain environment variables (DICTIONARIES_DIR, NAME_SERVICE_URL, ...)`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .problemcheck.yml)")
	rootCmd.PersistentFlags().String("dictionaries", "", "dictionary directory (one subdirectory per language)")
	rootCmd.PersistentFlags().Int("workers", 0, "number of problems to audit concurrently")
	viper.BindPFlag("dictionaries", rootCmd.PersistentFlags().Lookup("dictionaries"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".problemcheck")
	}

	viper.SetEnvPrefix("PROBLEMCHECK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// A missing config file is fine; flags and env still apply.
	_ = viper.ReadInConfig()
}

// loadConfig builds the effective configuration: environment defaults from
// config.Load, overridden by any viper-managed value (file, env, flag).
func loadConfig() config.Config {
	cfg := config.Load()

	if v := viper.GetString("dictionaries"); v != "" {
		cfg.DictionariesDir = v
	}
	if v := viper.GetInt("workers"); v > 0 {
		cfg.WorkerCount = v
	}
	if v := viper.GetString("name_service_url"); v != "" {
		cfg.NameServiceURL = v
	}
	if v := viper.GetString("name_service_key"); v != "" {
		cfg.NameServiceKey = v
	}
	if v := viper.GetString("name_db"); v != "" {
		cfg.NameDB = v
	}
	if v := viper.GetString("name_list_url"); v != "" {
		cfg.NameListURL = v
	}
	if v := viper.GetString("name_cache_file"); v != "" {
		cfg.NameCacheFile = v
	}
	if viper.IsSet("warn_redundant_defaults") {
		cfg.WarnRedundantDefaults = viper.GetBool("warn_redundant_defaults")
	}
	if v := viper.GetInt64("max_image_kb"); v > 0 {
		cfg.MaxImageKB = v
	}
	if v := viper.GetString("port"); v != "" {
		cfg.Port = v
	}
	if v := viper.GetString("api_key"); v != "" {
		cfg.APIKey = v
	}
	return cfg
}
