// Package config loads application settings from an optional config file and
// the environment. Environment variables win over file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is used when no --config flag is given; a missing file at
	// this path is not an error.
	DefaultPath = "config/config.json"
	envPrefix   = "EDUFORGE"
)

type Config struct {
	ServerAddr string       `mapstructure:"server_addr"`
	LogLevel   string       `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat  string       `mapstructure:"log_format" validate:"oneof=text json"`
	LLM        LLMConfig    `mapstructure:"llm"`
	Export     ExportConfig `mapstructure:"export"`
}

type LLMConfig struct {
	Provider       string `mapstructure:"provider" validate:"required,oneof=gemini openai deepseek mock"`
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key" validate:"required_unless=Provider mock"`
	BaseURL        string `mapstructure:"base_url" validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

type ExportConfig struct {
	EnginePath     string `mapstructure:"engine_path" validate:"required"`
	PageSize       string `mapstructure:"page_size" validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c ExportConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout_seconds", 60)
	v.SetDefault("export.engine_path", "wkhtmltopdf")
	v.SetDefault("export.page_size", "A4")
	v.SetDefault("export.timeout_seconds", 60)
}

// Load reads path (JSON or YAML, by extension) when it exists, then overlays
// EDUFORGE_* environment variables. The provider key may also come from
// GEMINI_API_KEY or OPENAI_API_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil || path != DefaultPath {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", path, err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = providerKey(cfg.LLM.Provider)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func providerKey(provider string) string {
	switch provider {
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "deepseek":
		return os.Getenv("DEEPSEEK_API_KEY")
	}
	return ""
}
