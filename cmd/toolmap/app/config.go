package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from config files,
// environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Catalog configuration
	DataDir string

	// Cloud backend (Supabase)
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string

	// Enrichment
	GeminiAPIKey string

	// News feed
	NewsFeedURL string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (~/.toolmap.yaml)
//  5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files before Viper env binding.
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	bindEnvKeys()

	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.AddConfigPath(".")
			viper.SetConfigType("yaml")
			viper.SetConfigName(".toolmap")
		}
	}

	// A missing config file is fine.
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		DataDir: viper.GetString("data_dir"),

		SupabaseURL:        viper.GetString("SUPABASE_URL"),
		SupabaseAnonKey:    viper.GetString("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: viper.GetString("SUPABASE_SERVICE_KEY"),

		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),

		NewsFeedURL: viper.GetString("NEWS_FEED_URL"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.DataDir == "" {
		config.DataDir = defaultDataDir()
	}

	return config, nil
}

// UpdateFromFlags applies parsed command flags, which take precedence over
// config file and environment values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// defaultDataDir places the catalog under the user's home directory,
// falling back to the working directory when home is unavailable.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".toolmap"
	}
	return filepath.Join(home, ".toolmap")
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// bindEnvKeys explicitly binds the credential environment variables so they
// resolve even when only present in .env files.
func bindEnvKeys() {
	keys := []string{
		"SUPABASE_URL",
		"SUPABASE_ANON_KEY",
		"SUPABASE_SERVICE_KEY",
		"GEMINI_API_KEY",
		"NEWS_FEED_URL",
	}
	for _, key := range keys {
		_ = viper.BindEnv(key)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
