package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/digitalhaute/internal/common"
	"github.com/Veraticus/digitalhaute/internal/labelscan"
)

// DefaultDatabasePath is where the catalog lives when database.path is unset.
const DefaultDatabasePath = "$HOME/.local/share/haute/haute.db"

// Config is the resolved application configuration.
type Config struct {
	DatabasePath   string
	ServerAddr     string
	ShopifyBaseURL string
	CloudinaryURL  string
	LogLevel       string
	LogFormat      string
	Scan           labelscan.Config
}

// SetDefaults registers default values for every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("server.addr", "localhost:8787")
	v.SetDefault("scan.provider", "openai")
	v.SetDefault("scan.timeout", 30*time.Second)
	v.SetDefault("scan.cache_ttl", 24*time.Hour)
	v.SetDefault("scan.rate_limit", 30)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads the configuration from the global viper instance.
func Load() (Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v.
func LoadFrom(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	cfg := Config{
		DatabasePath:   ExpandPath(v.GetString("database.path")),
		ServerAddr:     v.GetString("server.addr"),
		ShopifyBaseURL: v.GetString("shopify.base_url"),
		CloudinaryURL:  v.GetString("cloudinary.url"),
		LogLevel:       v.GetString("logging.level"),
		LogFormat:      v.GetString("logging.format"),
		Scan: labelscan.Config{
			Provider:  v.GetString("scan.provider"),
			APIKey:    v.GetString("scan.api_key"),
			BaseURL:   v.GetString("scan.base_url"),
			Model:     v.GetString("scan.model"),
			Timeout:   v.GetDuration("scan.timeout"),
			CacheTTL:  v.GetDuration("scan.cache_ttl"),
			RateLimit: v.GetInt("scan.rate_limit"),
		},
	}

	if _, err := common.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, cfg.LogFormat)
	}
	if cfg.Scan.Timeout < 0 {
		return Config{}, fmt.Errorf("%w: scan.timeout cannot be negative", common.ErrInvalidConfig)
	}
	if cfg.Scan.RateLimit < 0 {
		return Config{}, fmt.Errorf("%w: scan.rate_limit cannot be negative", common.ErrInvalidConfig)
	}

	return cfg, nil
}
