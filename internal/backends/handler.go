package backends

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/config"
	"resume-tailor/internal/llm"
	"resume-tailor/internal/shared/server/respond"
	"resume-tailor/internal/shared/telemetry"
)

// Handler exposes backend availability and runtime credential updates.
type Handler struct {
	Cfg    config.Config
	Holder *llm.Holder
}

// NewHandler constructs a Handler around the gateway holder.
func NewHandler(cfg config.Config, holder *llm.Holder) *Handler {
	return &Handler{Cfg: cfg, Holder: holder}
}

// RegisterRoutes attaches backend routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/backends", h.status)
	rg.POST("/backends/:backend/key", h.saveKey)
}

func (h *Handler) status(c *gin.Context) {
	respond.OK(c, gin.H{"backends": h.Holder.Current().Status()})
}

type saveKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// saveKey stores a credential in the process environment and swaps in a fresh
// gateway snapshot, flipping the backend's availability without a restart.
func (h *Handler) saveKey(c *gin.Context) {
	backend, err := llm.ParseBackend(c.Param("backend"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	var req saveKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	key := strings.TrimSpace(req.APIKey)
	if key == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Please enter an API key", nil)
		return
	}

	switch backend {
	case llm.BackendGemini:
		os.Setenv("GOOGLE_API_KEY", key)
	case llm.BackendOpenRouter:
		os.Setenv("OPENROUTER_API_KEY", key)
	}

	gw := BuildGateway(h.Cfg.ReloadKeys())
	h.Holder.Swap(gw)

	if !gw.Available(backend) {
		respond.Error(c, http.StatusBadGateway, "backend_error", "failed to initialize "+backend.DisplayName()+" with the provided key", nil)
		return
	}

	telemetry.Info("backend.key_saved", map[string]any{"backend": string(backend)})
	respond.OK(c, gin.H{
		"message":  backend.DisplayName() + " API key saved successfully",
		"backends": gw.Status(),
	})
}
