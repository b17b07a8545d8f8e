package guide

import (
	"github.com/caarlos0/env/v11"
)

// Config controls the remote guidance endpoint.
type Config struct {
	APIKey     string `env:"KARMAVERSE_API_KEY"`
	APIURL     string `env:"KARMAVERSE_API_URL"     envDefault:"https://openrouter.ai/api/v1/chat/completions"`
	Model      string `env:"KARMAVERSE_MODEL"       envDefault:"meta-llama/llama-3.1-8b-instruct:free"`
	MaxTokens  int    `env:"KARMAVERSE_MAX_TOKENS"  envDefault:"300"`
	DailyLimit int    `env:"KARMAVERSE_DAILY_LIMIT" envDefault:"50"`
}

// LoadConfigFromEnv returns guidance configuration with defaults.
// An empty APIKey disables the remote endpoint entirely.
func LoadConfigFromEnv() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{
			APIURL:     "https://openrouter.ai/api/v1/chat/completions",
			Model:      "meta-llama/llama-3.1-8b-instruct:free",
			MaxTokens:  300,
			DailyLimit: 50,
		}
	}
	return cfg
}
