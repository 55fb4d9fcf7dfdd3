package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config maps the entire application configuration. Values come from
// ./configs/config.yaml with environment variable overrides (dots replaced
// by underscores, e.g. DATABASE_DSN overrides database.dsn).
type Config struct {
	Server struct {
		Port int `mapstructure:"port"` // HTTP server port
		// BaseURL is the public storefront address used to build referral
		// links (<base_url>?ref=<code>).
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"server"`

	Database struct {
		// Driver selects the gorm driver: "sqlite" for local development
		// and tests, "postgres" for the hosted store.
		Driver string `mapstructure:"driver"`
		// DSN is the connection string for postgres. Supply it via the
		// DATABASE_DSN environment variable in hosted environments.
		DSN string `mapstructure:"dsn"`
		// Name is the sqlite database file when driver is "sqlite".
		Name string `mapstructure:"name"`
	} `mapstructure:"database"`

	// Analytics configures the asynchronous click tracking pipeline.
	Analytics struct {
		BufferSize  int `mapstructure:"buffer_size"`
		WorkerCount int `mapstructure:"worker_count"`
	} `mapstructure:"analytics"`

	// Monitor configures the periodic stock monitor.
	Monitor struct {
		IntervalMinutes int `mapstructure:"interval_minutes"`
	} `mapstructure:"monitor"`

	Referral struct {
		// CodeSuffixLength is the number of random characters appended to
		// the username-derived prefix of generated referral codes.
		CodeSuffixLength int `mapstructure:"code_suffix_length"`
	} `mapstructure:"referral"`
}

// LoadConfig loads the application configuration using Viper. A missing
// config file is not an error; defaults and environment variables apply.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.base_url", "https://dondigital.vercel.app")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "")
	viper.SetDefault("database.name", "storefront.db")
	viper.SetDefault("analytics.buffer_size", 1000)
	viper.SetDefault("analytics.worker_count", 5)
	viper.SetDefault("monitor.interval_minutes", 5)
	viper.SetDefault("referral.code_suffix_length", 6)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using default values")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	log.Printf("Configuration loaded: Server Port=%d, DB Driver=%s, Analytics Buffer=%d, Monitor Interval=%dmin",
		cfg.Server.Port, cfg.Database.Driver, cfg.Analytics.BufferSize, cfg.Monitor.IntervalMinutes)

	return &cfg, nil
}
