// README: Config loader; defaults, optional railmate.yaml, then environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AIConfig struct {
	Provider      string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiKey     string
	GeminiModel   string
	Temperature   float64
	MaxTokens     int
	Timeout       time.Duration
}

type Config struct {
	Env string
	Log struct {
		Level string
	}
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Cache struct {
		TTL time.Duration
	}
	RateLimit struct {
		PerMinute int
		Burst     int
	}
	CORS struct {
		AllowedOrigins []string
	}
	AI AIConfig
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

var defaults = map[string]any{
	"RAILMATE_ENV":                "development",
	"RAILMATE_LOG_LEVEL":          "info",
	"RAILMATE_HTTP_ADDR":          ":8080",
	"RAILMATE_DB_DSN":             "",
	"RAILMATE_REDIS_ADDR":         "",
	"RAILMATE_REDIS_PASSWORD":     "",
	"RAILMATE_REDIS_DB":           0,
	"RAILMATE_CACHE_TTL":          "6h",
	"RAILMATE_RATE_LIMIT_PER_MIN": 30,
	"RAILMATE_RATE_LIMIT_BURST":   5,
	"RAILMATE_CORS_ORIGINS":       "*",
	"RAILMATE_AI_PROVIDER":        "openai",
	"RAILMATE_AI_TEMPERATURE":     0.7,
	"RAILMATE_AI_MAX_TOKENS":      3000,
	"RAILMATE_AI_TIMEOUT":         "60s",
	"OPENAI_API_KEY":              "",
	"OPENAI_BASE_URL":             "https://api.openai.com/v1",
	"OPENAI_MODEL":                "gpt-4",
	"GEMINI_API_KEY":              "",
	"GEMINI_MODEL":                "gemini-2.0-flash",
}

// Load reads configuration. A missing provider credential is not an error:
// the analyze endpoint reports it to callers instead.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("railmate")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	cfg.Env = v.GetString("RAILMATE_ENV")
	cfg.Log.Level = v.GetString("RAILMATE_LOG_LEVEL")
	cfg.HTTP.Addr = v.GetString("RAILMATE_HTTP_ADDR")
	cfg.DB.DSN = v.GetString("RAILMATE_DB_DSN")
	cfg.Redis.Addr = v.GetString("RAILMATE_REDIS_ADDR")
	cfg.Redis.Password = v.GetString("RAILMATE_REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("RAILMATE_REDIS_DB")
	cfg.Cache.TTL = v.GetDuration("RAILMATE_CACHE_TTL")
	cfg.RateLimit.PerMinute = v.GetInt("RAILMATE_RATE_LIMIT_PER_MIN")
	cfg.RateLimit.Burst = v.GetInt("RAILMATE_RATE_LIMIT_BURST")
	cfg.CORS.AllowedOrigins = splitList(v.GetString("RAILMATE_CORS_ORIGINS"))

	cfg.AI = AIConfig{
		Provider:      strings.ToLower(strings.TrimSpace(v.GetString("RAILMATE_AI_PROVIDER"))),
		OpenAIKey:     strings.TrimSpace(v.GetString("OPENAI_API_KEY")),
		OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
		OpenAIModel:   v.GetString("OPENAI_MODEL"),
		GeminiKey:     strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		Temperature:   v.GetFloat64("RAILMATE_AI_TEMPERATURE"),
		MaxTokens:     v.GetInt("RAILMATE_AI_MAX_TOKENS"),
		Timeout:       v.GetDuration("RAILMATE_AI_TIMEOUT"),
	}

	switch cfg.AI.Provider {
	case "openai", "gemini":
	default:
		return Config{}, fmt.Errorf("RAILMATE_AI_PROVIDER must be openai or gemini, got %q", cfg.AI.Provider)
	}
	if cfg.AI.Temperature <= 0 || cfg.AI.Temperature > 2 {
		return Config{}, fmt.Errorf("RAILMATE_AI_TEMPERATURE must be in (0, 2], got %v", cfg.AI.Temperature)
	}
	if cfg.AI.Timeout <= 0 {
		return Config{}, fmt.Errorf("RAILMATE_AI_TIMEOUT must be positive")
	}
	if cfg.RateLimit.PerMinute < 0 || cfg.RateLimit.Burst < 0 {
		return Config{}, fmt.Errorf("rate limit settings must not be negative")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
