package templates

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/extract"
	"resume-tailor/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the template store.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches template routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates/:kind", h.get)
	rg.PUT("/templates/:kind", h.put)
	rg.POST("/templates/:kind/upload", h.upload)
}

type templateResponse struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

type putTemplateRequest struct {
	Content string `json:"content"`
}

func (h *Handler) get(c *gin.Context) {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	content, err := h.Store.Load(kind)
	if err != nil {
		respond.Error(c, http.StatusServiceUnavailable, "storage_unavailable", "failed to load template", err.Error())
		return
	}
	respond.OK(c, templateResponse{Kind: string(kind), Content: content})
}

func (h *Handler) put(c *gin.Context) {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	var req putTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Store.Save(kind, req.Content); err != nil {
		respond.Error(c, http.StatusServiceUnavailable, "storage_unavailable", "failed to save template", err.Error())
		return
	}
	respond.OK(c, templateResponse{Kind: string(kind), Content: req.Content})
}

func (h *Handler) upload(c *gin.Context) {
	kind, err := ParseKind(c.Param("kind"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	content, err := extract.Text(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported template file type", err.Error())
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "failed to extract template text", err.Error())
		return
	}

	if err := h.Store.Save(kind, content); err != nil {
		respond.Error(c, http.StatusServiceUnavailable, "storage_unavailable", "failed to save template", err.Error())
		return
	}
	respond.OK(c, templateResponse{Kind: string(kind), Content: content})
}
