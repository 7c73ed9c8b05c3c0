package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/backends"
	"resume-tailor/internal/config"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/outputs"
	"resume-tailor/internal/prompts"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/server/middleware"
	"resume-tailor/internal/shared/server/respond"
	"resume-tailor/internal/templates"
	"resume-tailor/internal/workflow"
)

const generateRateGroup = "GENERATE"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				generateRateGroup: {Rate: 0.5, Burst: 3},
			},
			GroupFor: rateGroupFor,
		}),
	)

	// Dependencies
	templateStore := templates.NewStore(cfg.TemplatesDir)
	promptStore := prompts.NewStore(cfg.PromptsPath)
	outputStore := outputs.NewStore(cfg.OutputDir, cfg.OutputRetain)
	holder := llm.NewHolder(backends.BuildGateway(cfg))

	svc := &workflow.Service{
		Templates: templateStore,
		Prompts:   promptStore,
		Outputs:   outputStore,
	}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	templates.NewHandler(templateStore).RegisterRoutes(api)
	prompts.NewHandler(promptStore).RegisterRoutes(api)
	backends.NewHandler(cfg, holder).RegisterRoutes(api)
	outputs.NewHandler(outputStore).RegisterRoutes(api)
	workflow.NewHandler(svc, holder).RegisterRoutes(api)

	r.GET("/metrics", metrics.Handler())

	return r
}

// Generation endpoints share one strict bucket; everything else is unlimited.
func rateGroupFor(c *gin.Context) string {
	switch c.FullPath() {
	case "/api/v1/generate", "/api/v1/generate/resume", "/api/v1/generate/cover-letter":
		return generateRateGroup
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
