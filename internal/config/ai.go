package config

import "os"

const (
	// DefaultModelName is the Gemini model used for both text chat and
	// multimodal plant identification.
	DefaultModelName = "gemini-2.5-flash"

	// geminiAPIKeyEnv is the environment variable holding the Gemini API key.
	geminiAPIKeyEnv = "GEMINI_API_KEY"
)

// GeminiAPIKey returns the Gemini API key from the environment.
// The key is never stored in the config file.
func GeminiAPIKey() string {
	return os.Getenv(geminiAPIKeyEnv)
}
