package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	snapshot *Snapshot
}

func NewHandler(snapshot *Snapshot) *Handler {
	return &Handler{snapshot: snapshot}
}

// --------------------------------------------------
// Terminal fetches the full catalog once at start
// --------------------------------------------------
func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":           h.snapshot.Items,
		"categories":      h.snapshot.Categories,
		"payment_methods": h.snapshot.Methods,
	})
}
