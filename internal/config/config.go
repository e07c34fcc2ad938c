package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config is read from the environment. Backend credentials are optional at
// load time; a missing one is reported per request instead.
type Config struct {
	Port       string `env:"PORT" env-default:"3000"`
	Env        string `env:"ENV" env-default:"development"`
	AppVersion string `env:"APP_VERSION" env-default:"dev"`

	DatabaseURL      string `env:"DATABASE_URL"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" env-default:"10"`

	// Usage limiting is disabled when RedisAddr is empty.
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	UserTokenLimit int    `env:"USER_TOKEN_LIMIT" env-default:"200000"`

	// HS256 secret used to verify caller tokens.
	JWTSecret string `env:"AUTH_JWT_SECRET"`

	Generation GenerationConfig
}

type GenerationConfig struct {
	Provider        string `env:"GENERATION_PROVIDER" env-default:"openai"`
	MaxOutputTokens int    `env:"GENERATION_MAX_OUTPUT_TOKENS" env-default:"1400"`

	OpenAIAPIKey          string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL         string `env:"OPENAI_BASE_URL"`
	OpenAIModel           string `env:"OPENAI_MODEL" env-default:"gpt-5-nano"`
	OpenAIReasoningEffort string `env:"OPENAI_REASONING_EFFORT" env-default:"minimal"`

	GeminiAPIKey        string `env:"GEMINI_API_KEY"`
	GoogleCloudProject  string `env:"GOOGLE_CLOUD_PROJECT"`
	GoogleCloudLocation string `env:"GOOGLE_CLOUD_LOCATION" env-default:"us-central1"`
	GeminiModel         string `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
}

// Load seeds the environment from envFile when it exists and parses it.
// It returns whether envFile was found so the caller can mention it.
func Load(envFile string) (*Config, bool, error) {
	found := godotenv.Load(envFile) == nil

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, found, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, found, err
	}
	return &cfg, found, nil
}

func (c *Config) validate() error {
	switch c.Generation.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("unknown GENERATION_PROVIDER %q (want %s or %s)",
			c.Generation.Provider, ProviderOpenAI, ProviderGemini)
	}
	if c.Generation.MaxOutputTokens <= 0 {
		return fmt.Errorf("GENERATION_MAX_OUTPUT_TOKENS must be positive")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}
