package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/xxxsen/common/logger"
)

const (
	DefaultFormat          = "markdown"
	DefaultListIndentWidth = 4
	DefaultImageAlt        = "Image"
)

type Config struct {
	LogConfig logger.LogConfig `json:"log_config" toml:"log_config"`
	Render    RenderConfig     `json:"render" toml:"render"`
}

type RenderConfig struct {
	Format          string            `json:"format" toml:"format"`
	ListIndentWidth int               `json:"list_indent_width" toml:"list_indent_width"`
	ImageAlt        string            `json:"image_alt" toml:"image_alt"`
	KeyAliases      map[string]string `json:"key_aliases" toml:"key_aliases"`
}

func Default() *Config {
	cfg := &Config{
		LogConfig: logger.LogConfig{Console: true},
	}
	_ = applyDefaults(cfg)
	return cfg
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	cfg := &Config{LogConfig: logger.LogConfig{Console: true}}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "warn"
	}
	cfg.Render.Format = strings.ToLower(strings.TrimSpace(cfg.Render.Format))
	if cfg.Render.Format == "" {
		cfg.Render.Format = DefaultFormat
	}
	if cfg.Render.ListIndentWidth == 0 {
		cfg.Render.ListIndentWidth = DefaultListIndentWidth
	}
	if cfg.Render.ListIndentWidth < 1 || cfg.Render.ListIndentWidth > 8 {
		return fmt.Errorf("render.list_indent_width must be between 1 and 8")
	}
	if cfg.Render.ImageAlt == "" {
		cfg.Render.ImageAlt = DefaultImageAlt
	}
	for alias, key := range cfg.Render.KeyAliases {
		if strings.TrimSpace(alias) == "" || strings.TrimSpace(key) == "" {
			return fmt.Errorf("render.key_aliases entries must be non-empty")
		}
	}
	return nil
}
