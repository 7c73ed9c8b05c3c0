package outputs

import (
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the artifact store.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches artifact routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/outputs", h.list)
	rg.GET("/outputs/:name", h.download)
}

func (h *Handler) list(c *gin.Context) {
	arts, err := h.Store.List()
	if err != nil {
		respond.Error(c, http.StatusServiceUnavailable, "storage_unavailable", "failed to list outputs", err.Error())
		return
	}
	if arts == nil {
		arts = []Artifact{}
	}
	respond.OK(c, gin.H{"outputs": arts})
}

func (h *Handler) download(c *gin.Context) {
	name := c.Param("name")

	rc, err := h.Store.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			respond.Error(c, http.StatusNotFound, "not_found", "output not found", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid output name", nil)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", "application/x-tex")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}
