package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, read from the environment. Only
// PORT has a hard default; provider credentials are optional here and
// validated where they are used, so the heuristic endpoint stays reachable
// on a credential-less deployment.
type Config struct {
	Port string

	Provider     string
	Model        string
	GeminiKey    string
	OpenAIKey    string
	AnthropicKey string

	SearchKey        string
	SearchEngineID   string
	SearchMaxResults int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the environment, honoring a .env file when present.
func Load() Config {
	_ = godotenv.Load()

	maxResults, err := strconv.Atoi(getenv("SEARCH_MAX_RESULTS", "5"))
	if err != nil || maxResults <= 0 {
		maxResults = 5
	}

	return Config{
		Port:             getenv("PORT", "8080"),
		Provider:         getenv("AI_PROVIDER", "gemini"),
		Model:            os.Getenv("AI_MODEL"),
		GeminiKey:        os.Getenv("GEMINI_API_KEY"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:     os.Getenv("ANTHROPIC_API_KEY"),
		SearchKey:        os.Getenv("SEARCH_API_KEY"),
		SearchEngineID:   os.Getenv("SEARCH_ENGINE_ID"),
		SearchMaxResults: maxResults,
	}
}
