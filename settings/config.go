// Package settings loads pipeline configuration from file and environment.
package settings

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// DefaultUniverse is the symbol set analyzed when no symbols are configured.
var DefaultUniverse = []string{
	// Large cap growth
	"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA", "NVDA", "META",
	// Diversified sectors
	"JPM", "JNJ", "PG", "HD", "BA", "XOM",
	// Growth and innovation
	"PLTR", "SNOW", "CRWD", "ZS", "DDOG", "MDB",
	// ETFs
	"SPY", "QQQ", "IWM", "VTI", "ARKK", "ICLN",
	// Defensive
	"BRK.B", "WMT", "KO", "PFE", "VZ", "T",
}

// DatabaseConfig points the bar loader at a Postgres candle store.
type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	DSN      string `mapstructure:"dsn"`
	Interval string `mapstructure:"interval"`
}

// InfluxConfig points the result recorder at an InfluxDB endpoint.
type InfluxConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// Config is the full pipeline configuration.
type Config struct {
	Symbols     []string       `mapstructure:"symbols"`
	DataDir     string         `mapstructure:"data_dir"`
	OutputDir   string         `mapstructure:"output_dir"`
	MinHistory  int            `mapstructure:"min_history"`
	TradingDays int            `mapstructure:"trading_days"`
	Workers     int            `mapstructure:"workers"`
	LogLevel    string         `mapstructure:"log_level"`
	Database    DatabaseConfig `mapstructure:"database"`
	Influx      InfluxConfig   `mapstructure:"influx"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Symbols:     DefaultUniverse,
		DataDir:     "data",
		OutputDir:   "output",
		MinHistory:  252,
		TradingDays: 252,
		Workers:     4,
		LogLevel:    "info",
		Database:    DatabaseConfig{Interval: "1d"},
		Influx:      InfluxConfig{Database: "vela"},
	}
}

// Load reads configuration from the given file (YAML), layered over Default
// and overridable through VELA_* environment variables. A missing file is not
// an error when no explicit path was given.
func Load(path string) (Config, error) {
	defaults := Default()

	v := viper.New()
	v.SetDefault("symbols", defaults.Symbols)
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("min_history", defaults.MinHistory)
	v.SetDefault("trading_days", defaults.TradingDays)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("database.enabled", defaults.Database.Enabled)
	v.SetDefault("database.dsn", defaults.Database.DSN)
	v.SetDefault("database.interval", defaults.Database.Interval)
	v.SetDefault("influx.enabled", defaults.Influx.Enabled)
	v.SetDefault("influx.url", defaults.Influx.URL)
	v.SetDefault("influx.username", defaults.Influx.Username)
	v.SetDefault("influx.password", defaults.Influx.Password)
	v.SetDefault("influx.database", defaults.Influx.Database)

	v.SetEnvPrefix("VELA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
