package config

import "os"

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// Question is for per-turn question generation (needs to be fast)
	Question string `json:"question"`

	// Report is for final risk report synthesis (quality over speed)
	Report string `json:"report"`
}

// GenerationParams are passed on every generateContent call
type GenerationParams struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// AIConfig holds all generation-client configuration. The API key comes
// from the environment only, never from source.
type AIConfig struct {
	APIKey    string           `json:"-"` // Never serialize
	BaseURL   string           `json:"baseUrl"`
	Models    GeminiModels     `json:"models"`
	Params    GenerationParams `json:"params"`
	TimeoutMS int              `json:"timeoutMs"`
}

// DefaultAIConfig returns the default generation configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			Question: getEnvOrDefault("GEMINI_MODEL_QUESTION", "gemini-2.0-flash"),
			Report:   getEnvOrDefault("GEMINI_MODEL_REPORT", "gemini-2.0-flash"),
		},
		Params: GenerationParams{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 1000,
		},
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the generation API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
