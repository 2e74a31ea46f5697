package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Presentation PresentationConfig
	UI           UIConfig
	Log          LogConfig
}

// PresentationConfig holds navigation settings.
type PresentationConfig struct {
	BlackOnEnd    bool   `mapstructure:"black_on_end"`
	JumpSize      int    `mapstructure:"jump_size"`
	SkipFile      string `mapstructure:"skip_file"`
	WatchSkipFile bool   `mapstructure:"watch_skip_file"`
	HistoryMax    int    `mapstructure:"history_max"`
}

// UIConfig holds rendering settings.
type UIConfig struct {
	Style    string
	WordWrap int `mapstructure:"word_wrap"`
}

// LogConfig holds diagnostics settings. An empty File discards logs.
type LogConfig struct {
	File string
}

// Load reads configuration from file and env. Env var overrides use prefix NAVIDECK_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("presentation.black_on_end", false)
	v.SetDefault("presentation.jump_size", 10)
	v.SetDefault("presentation.skip_file", "")
	v.SetDefault("presentation.watch_skip_file", true)
	v.SetDefault("presentation.history_max", 50)
	v.SetDefault("ui.style", "dark")
	v.SetDefault("ui.word_wrap", 80)
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("NAVIDECK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "navideck"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("NAVIDECK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default config file is fine, a broken or missing explicit one is not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgPath != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
