package prompts

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the prompt store.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches prompt routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/prompts", h.get)
	rg.PUT("/prompts", h.put)
}

type promptsPayload struct {
	ResumePrompt      string `json:"resumePrompt"`
	CoverLetterPrompt string `json:"coverLetterPrompt"`
}

func (h *Handler) get(c *gin.Context) {
	p := h.Store.Load()
	respond.OK(c, promptsPayload{
		ResumePrompt:      p.ResumePrompt,
		CoverLetterPrompt: p.CoverLetterPrompt,
	})
}

func (h *Handler) put(c *gin.Context) {
	var req promptsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	// Empty fields mean "back to default" and are stored as such on next load.
	if err := h.Store.Save(Prompts{
		ResumePrompt:      req.ResumePrompt,
		CoverLetterPrompt: req.CoverLetterPrompt,
	}); err != nil {
		respond.Error(c, http.StatusServiceUnavailable, "storage_unavailable", "failed to save prompts", err.Error())
		return
	}

	p := h.Store.Load()
	respond.OK(c, promptsPayload{
		ResumePrompt:      p.ResumePrompt,
		CoverLetterPrompt: p.CoverLetterPrompt,
	})
}
