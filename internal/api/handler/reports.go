package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReportSummary serves the dashboard aggregate for a date range, defaulting
// to the last 30 days.
func (h *Handler) ReportSummary(c *gin.Context) {
	from, to := dateRange(c)

	summary, err := h.Reports.Summarize(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportComplaints streams the complaints in the range as a CSV download.
func (h *Handler) ExportComplaints(c *gin.Context) {
	from, to := dateRange(c)

	filename := fmt.Sprintf("complaints_%s_%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.Reports.ExportCSV(c.Writer, from, to); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// MetricsRange returns the stored nightly rollups for a date range.
func (h *Handler) MetricsRange(c *gin.Context) {
	from, to := dateRange(c)

	metrics, err := h.Storage.GetMetricsRange(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}

func dateRange(c *gin.Context) (time.Time, time.Time) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if t, ok := parseDate(c.Query("from")); ok {
		from = t
	}
	if t, ok := parseDate(c.Query("to")); ok {
		// Ranges are half-open, so include the whole requested end day.
		to = t.AddDate(0, 0, 1)
	}
	return from, to
}
