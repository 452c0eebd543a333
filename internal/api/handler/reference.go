package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListComplaintTypes returns the active complaint categories for the
// submission form.
func (h *Handler) ListComplaintTypes(c *gin.Context) {
	types, err := h.Storage.ListActiveComplaintTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"types": types})
}

// ListEngineers returns the active engineers staff can assign complaints to.
func (h *Handler) ListEngineers(c *gin.Context) {
	engineers, err := h.Storage.ListActiveEngineers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"engineers": engineers})
}
