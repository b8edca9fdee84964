// Package config loads the server's TOML configuration via viper.
// Secrets may be given as ${ENV_VAR} references; they are expanded from the
// process environment at load time.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/iakhil/phronesis/internal/bot"
	"github.com/iakhil/phronesis/internal/daily"
	"github.com/iakhil/phronesis/internal/gemini"
)

type ServerConfig struct {
	Listen        string `mapstructure:"listen"`
	StaticDir     string `mapstructure:"static_dir"`
	MeetingDomain string `mapstructure:"meeting_domain"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Color bool   `mapstructure:"color"`
}

type StoreConfig struct {
	DSN string `mapstructure:"dsn"` // empty disables content caching
}

type Config struct {
	Server ServerConfig  `mapstructure:"server"`
	Log    LogConfig     `mapstructure:"log"`
	Daily  daily.Config  `mapstructure:"daily"`
	Gemini gemini.Config `mapstructure:"gemini"`
	Bot    bot.Config    `mapstructure:"bot"`
	Store  StoreConfig   `mapstructure:"store"`
}

// Default returns the configuration used when no file is given. API keys
// fall back to the conventional environment variables.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:        ":7860",
			MeetingDomain: "https://phronesis.daily.co",
		},
		Log:    LogConfig{Level: "info"},
		Daily:  daily.Config{APIKey: os.Getenv("DAILY_API_KEY"), APIBase: daily.DefaultAPIBase},
		Gemini: gemini.Config{APIKey: os.Getenv("GEMINI_API_KEY"), APIBase: gemini.DefaultAPIBase, Model: gemini.DefaultModel},
	}
}

// Load reads a TOML config file, layering it over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	expandSecrets(cfg)
	return cfg, nil
}

func expandSecrets(cfg *Config) {
	cfg.Daily.APIKey = os.ExpandEnv(cfg.Daily.APIKey)
	cfg.Gemini.APIKey = os.ExpandEnv(cfg.Gemini.APIKey)
	cfg.Store.DSN = os.ExpandEnv(cfg.Store.DSN)
}
