// Package config loads runtime settings from the environment (and an
// optional .env file loaded by the caller) with defaults for local use.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	NewsAPIKey     string
	NewsAPIBaseURL string
	DatabaseURL    string
	RedisURL       string
	Port           int
	HTTPTimeout    time.Duration
	CORSOrigins    []string
	LogLevel       string
	LogFormat      string
	DebugRoot      string
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads configuration from environment variables such as NEWS_API_KEY
// and DATABASE_URL.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	timeout := v.GetDuration("http_timeout")
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT %q", v.GetString("http_timeout"))
	}

	port := v.GetInt("port")
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", v.GetString("port"))
	}

	cfg := &Config{
		NewsAPIKey:     v.GetString("news_api_key"),
		NewsAPIBaseURL: v.GetString("news_api_base_url"),
		DatabaseURL:    v.GetString("database_url"),
		RedisURL:       v.GetString("redis_url"),
		Port:           port,
		HTTPTimeout:    timeout,
		CORSOrigins:    splitList(v.GetString("cors_origins")),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),
		DebugRoot:      v.GetString("debug_root"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("news_api_key", "")
	v.SetDefault("news_api_base_url", "https://newsapi.org")
	v.SetDefault("database_url", "sqlite:///./news.db")
	v.SetDefault("redis_url", "")
	v.SetDefault("port", 8080)
	v.SetDefault("http_timeout", "30s")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("debug_root", ".")
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
