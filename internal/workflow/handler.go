package workflow

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/llm"
	"resume-tailor/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the workflow service. Workflow state (the
// current resume and cover letter) travels in request bodies; the server
// holds no session.
type Handler struct {
	Svc    *Service
	Holder *llm.Holder
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, holder *llm.Holder) *Handler {
	return &Handler{Svc: svc, Holder: holder}
}

// RegisterRoutes attaches workflow routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
	rg.POST("/generate/resume", h.regenerateResume)
	rg.POST("/generate/cover-letter", h.regenerateCoverLetter)
}

type generateRequest struct {
	JobDescription      string `json:"jobDescription"`
	Backend             string `json:"backend"`
	ResumeTemplate      string `json:"resumeTemplate"`
	CoverLetterTemplate string `json:"coverLetterTemplate"`
	ResumePrompt        string `json:"resumePrompt"`
	CoverLetterPrompt   string `json:"coverLetterPrompt"`
	CurrentResume       string `json:"currentResume"`
	CurrentCoverLetter  string `json:"currentCoverLetter"`
}

func (h *Handler) generate(c *gin.Context) {
	req, backend, ok := h.bind(c)
	if !ok {
		return
	}

	result, err := h.Svc.Generate(c.Request.Context(), h.Holder.Current(), GenerateInput{
		JobDescription:      req.JobDescription,
		Backend:             backend,
		ResumeTemplate:      req.ResumeTemplate,
		CoverLetterTemplate: req.CoverLetterTemplate,
		ResumePrompt:        req.ResumePrompt,
		CoverLetterPrompt:   req.CoverLetterPrompt,
	})
	h.reply(c, result, err)
}

func (h *Handler) regenerateResume(c *gin.Context) {
	req, backend, ok := h.bind(c)
	if !ok {
		return
	}

	result, err := h.Svc.RegenerateResume(c.Request.Context(), h.Holder.Current(), RegenerateResumeInput{
		JobDescription:     req.JobDescription,
		Backend:            backend,
		ResumeTemplate:     req.ResumeTemplate,
		ResumePrompt:       req.ResumePrompt,
		CurrentCoverLetter: req.CurrentCoverLetter,
	})
	h.reply(c, result, err)
}

func (h *Handler) regenerateCoverLetter(c *gin.Context) {
	req, backend, ok := h.bind(c)
	if !ok {
		return
	}

	result, err := h.Svc.RegenerateCoverLetter(c.Request.Context(), h.Holder.Current(), RegenerateCoverLetterInput{
		JobDescription:      req.JobDescription,
		Backend:             backend,
		CurrentResume:       req.CurrentResume,
		CoverLetterTemplate: req.CoverLetterTemplate,
		CoverLetterPrompt:   req.CoverLetterPrompt,
	})
	h.reply(c, result, err)
}

func (h *Handler) bind(c *gin.Context) (generateRequest, llm.Backend, bool) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return req, "", false
	}

	backend, err := llm.ParseBackend(req.Backend)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return req, "", false
	}

	c.Set("backend", string(backend))
	return req, backend, true
}

func (h *Handler) reply(c *gin.Context, result Result, err error) {
	if err == nil {
		respond.OK(c, result)
		return
	}

	var unavailable *UnavailableError
	var backendErr *BackendError
	var storageErr *StorageError
	switch {
	case errors.Is(err, ErrJobDescriptionRequired),
		errors.Is(err, ErrResumeTemplateMissing),
		errors.Is(err, ErrCoverLetterTemplateMissing),
		errors.Is(err, ErrResumeRequired):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.As(err, &unavailable):
		respond.Error(c, http.StatusServiceUnavailable, "backend_unavailable", err.Error(), nil)
	case errors.As(err, &backendErr):
		respond.Error(c, http.StatusBadGateway, "backend_error", err.Error(), nil)
	case errors.As(err, &storageErr):
		respond.Error(c, http.StatusServiceUnavailable, "storage_unavailable", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
	}
}
