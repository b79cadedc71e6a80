package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Validation errors returned by Load.
var (
	ErrMissingNewsAPIKey   = errors.New("NEWSAPI_KEY is required unless NEWSAPI_FIXTURE is set")
	ErrMissingOpenAIKey    = errors.New("OPENAI_API_KEY is required for the openai provider")
	ErrMissingAnthropicKey = errors.New("ANTHROPIC_API_KEY is required for the anthropic provider")
	ErrMissingGeocodingKey = errors.New("GOOGLE_MAPS_API_KEY is required")
	ErrUnknownProvider     = errors.New("LLM_PROVIDER must be one of: openai, anthropic")
	ErrInvalidWorkers      = errors.New("PIPELINE_WORKERS must be at least 1")
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Server    ServerConfig
	NewsAPI   NewsAPIConfig
	LLM       LLMConfig
	Geocoding GeocodingConfig
	Redis     RedisConfig
	Pipeline  PipelineConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	StaticDir      string
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type NewsAPIConfig struct {
	APIKey   string
	BaseURL  string
	Country  string
	Language string
	PageSize int
	// Fixture points at a JSON file of raw articles used instead of the network.
	Fixture string
}

type LLMConfig struct {
	Provider         string
	OpenAIKey        string
	OpenAIBaseURL    string
	Model            string
	AnthropicKey     string
	AnthropicBaseURL string
	AnthropicModel   string
	MaxTokens        int
	Temperature      float64
}

type GeocodingConfig struct {
	APIKey  string
	BaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type PipelineConfig struct {
	Workers        int
	CallTimeout    time.Duration
	RequestTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the configuration from the environment, seeding it from a .env
// file in the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "3000"),
			ReadTimeout:    getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("WRITE_TIMEOUT", 120*time.Second),
			IdleTimeout:    getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
			StaticDir:      getEnv("STATIC_DIR", "client/build"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 2),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 5),
		},
		NewsAPI: NewsAPIConfig{
			APIKey:   getEnv("NEWSAPI_KEY", ""),
			BaseURL:  getEnv("NEWSAPI_BASE_URL", "https://newsapi.org"),
			Country:  getEnv("NEWSAPI_COUNTRY", "ca"),
			Language: getEnv("NEWSAPI_LANGUAGE", "en"),
			PageSize: getEnvAsInt("NEWSAPI_PAGE_SIZE", 0),
			Fixture:  getEnv("NEWSAPI_FIXTURE", ""),
		},
		LLM: LLMConfig{
			Provider:         strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI)),
			OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
			Model:            getEnv("LLM_MODEL", "gpt-3.5-turbo"),
			AnthropicKey:     getEnv("ANTHROPIC_API_KEY", ""),
			AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
			AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
			MaxTokens:        getEnvAsInt("LLM_MAX_TOKENS", 150),
			Temperature:      getEnvAsFloat("LLM_TEMPERATURE", 0.7),
		},
		Geocoding: GeocodingConfig{
			APIKey:  getEnv("GOOGLE_MAPS_API_KEY", ""),
			BaseURL: getEnv("GEOCODING_BASE_URL", "https://maps.googleapis.com"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		},
		Pipeline: PipelineConfig{
			Workers:        getEnvAsInt("PIPELINE_WORKERS", 1),
			CallTimeout:    getEnvAsDuration("UPSTREAM_CALL_TIMEOUT", 15*time.Second),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 90*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the credentials for every active upstream are present.
func (c *Config) Validate() error {
	if c.NewsAPI.APIKey == "" && c.NewsAPI.Fixture == "" {
		return ErrMissingNewsAPIKey
	}

	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIKey == "" {
			return ErrMissingOpenAIKey
		}
	case ProviderAnthropic:
		if c.LLM.AnthropicKey == "" {
			return ErrMissingAnthropicKey
		}
	default:
		return ErrUnknownProvider
	}

	if c.Geocoding.APIKey == "" {
		return ErrMissingGeocodingKey
	}

	if c.Pipeline.Workers < 1 {
		return ErrInvalidWorkers
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
