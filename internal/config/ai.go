package config

import (
	"os"
	"strconv"
	"strings"
)

// Built-in fallback models tried after the configured chain is exhausted
var DefaultFallbackModels = []string{"gpt-4o-mini", "gpt-3.5-turbo"}

// Sampling holds the generation parameters sent with every completion
type Sampling struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	FrequencyPenalty float64 `json:"frequencyPenalty"`
	PresencePenalty  float64 `json:"presencePenalty"`
	MaxTokens        int     `json:"maxTokens"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey         string   `json:"-"` // Never serialize
	BaseURL        string   `json:"baseUrl"`
	PrimaryModel   string   `json:"primaryModel"`
	FallbackModels []string `json:"fallbackModels"`
	Sampling       Sampling `json:"sampling"`
	TimeoutMS      int      `json:"timeoutMs"` // Per attempt
	MaxAttempts    int      `json:"maxAttempts"`
	BackoffMS      int      `json:"backoffMs"` // Linear: attempt * BackoffMS
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:         os.Getenv("LLM_API_KEY"),
		BaseURL:        getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		PrimaryModel:   getEnvOrDefault("LLM_MODEL", "gpt-4o"),
		FallbackModels: splitList(os.Getenv("LLM_FALLBACK_MODELS")),
		Sampling: Sampling{
			Temperature:      0.7,
			TopP:             0.9,
			FrequencyPenalty: 0.2,
			PresencePenalty:  0.1,
			MaxTokens:        1200,
		},
		TimeoutMS:   getEnvInt("LLM_TIMEOUT_MS", 10000),
		MaxAttempts: getEnvInt("LLM_MAX_ATTEMPTS", 3),
		BackoffMS:   getEnvInt("LLM_BACKOFF_MS", 500),
	}
}

// IsEnabled returns true if the AI API is configured. Without a key the
// report service goes straight to the deterministic fallback, no
// network call.
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelChain returns the ordered, de-duplicated list of candidate
// models: primary, configured fallbacks, built-in defaults.
func (c *AIConfig) ModelChain() []string {
	seen := make(map[string]bool)
	var chain []string
	add := func(m string) {
		if m != "" && !seen[m] {
			seen[m] = true
			chain = append(chain, m)
		}
	}
	add(c.PrimaryModel)
	for _, m := range c.FallbackModels {
		add(m)
	}
	for _, m := range DefaultFallbackModels {
		add(m)
	}
	return chain
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
