package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	TemplatesDir string
	PromptsPath  string
	OutputDir    string
	OutputRetain int

	GoogleAPIKey      string
	OpenRouterAPIKey  string
	GeminiModel       string
	OpenRouterModel   string
	LLMTimeoutSeconds int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		TemplatesDir:      getEnv("TEMPLATES_DIR", "templates"),
		PromptsPath:       getEnv("PROMPTS_PATH", "prompts/saved_prompts.json"),
		OutputDir:         getEnv("OUTPUT_DIR", "outputs"),
		OutputRetain:      getEnvInt("OUTPUT_RETAIN", 20),
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "deepseek/deepseek-r1:free"),
		LLMTimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 120),
	}
}

// ReloadKeys returns a copy of cfg with the backend credentials re-read from
// the environment. Used when a key is saved at runtime.
func (c Config) ReloadKeys() Config {
	c.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	c.OpenRouterAPIKey = os.Getenv("OPENROUTER_API_KEY")
	return c
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
