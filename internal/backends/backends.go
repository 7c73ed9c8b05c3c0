package backends

import (
	"time"

	"resume-tailor/internal/config"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/llm/gemini"
	"resume-tailor/internal/llm/openrouter"
	"resume-tailor/internal/shared/telemetry"
)

// BuildGateway constructs a gateway snapshot from the configured credentials.
// Backends with missing keys are left out of the snapshot.
func BuildGateway(cfg config.Config) *llm.Gateway {
	timeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second
	clients := make(map[llm.Backend]llm.Client, 2)

	if cfg.GoogleAPIKey != "" {
		client, err := gemini.NewClient(cfg.GoogleAPIKey, cfg.GeminiModel, timeout)
		if err != nil {
			telemetry.Warn("backend.init_failed", map[string]any{"backend": "gemini", "error": err.Error()})
		} else {
			clients[llm.BackendGemini] = client
		}
	}

	if cfg.OpenRouterAPIKey != "" {
		client, err := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, timeout)
		if err != nil {
			telemetry.Warn("backend.init_failed", map[string]any{"backend": "openrouter", "error": err.Error()})
		} else {
			clients[llm.BackendOpenRouter] = client
		}
	}

	return llm.NewGateway(clients)
}
