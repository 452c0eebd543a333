package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListFAQs serves the knowledge base, filtered by ?category= and ?search=.
func (h *Handler) ListFAQs(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
			return
		}
		v := uint(id)
		categoryID = &v
	}

	listing, err := h.FAQ.Browse(categoryID, c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// GetFAQ returns one article and its related articles, counting the view.
func (h *Handler) GetFAQ(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	article, related, err := h.FAQ.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article, "related": related})
}

// MarkFAQHelpful records that the reader found the article useful.
func (h *Handler) MarkFAQHelpful(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	article, err := h.FAQ.MarkHelpful(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"helpful_count": article.HelpfulCount})
}
