package handler

import (
	"errors"
	"net/http"

	"helpdesk/backend/internal/attachments"
	"helpdesk/backend/internal/faq"
	"helpdesk/backend/internal/lifecycle"
	"helpdesk/backend/internal/livefeed"
	"helpdesk/backend/internal/reporting"
	"helpdesk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP surface to the services.
type Handler struct {
	Storage     storage.Storage
	Lifecycle   *lifecycle.Service
	Reports     *reporting.Service
	Attachments *attachments.Service
	FAQ         *faq.Service
	Hub         *livefeed.Hub
	JWTSecret   []byte
	// AllowedOrigin gates browser websocket upgrades, matching the CORS
	// origin the rest of the API is served under.
	AllowedOrigin string
}

func NewHandler(s storage.Storage, lc *lifecycle.Service, rep *reporting.Service, att *attachments.Service, faqSvc *faq.Service, hub *livefeed.Hub, jwtSecret []byte, allowedOrigin string) *Handler {
	return &Handler{
		Storage:       s,
		Lifecycle:     lc,
		Reports:       rep,
		Attachments:   att,
		FAQ:           faqSvc,
		Hub:           hub,
		JWTSecret:     jwtSecret,
		AllowedOrigin: allowedOrigin,
	}
}

// Register mounts all routes on the router.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/auth/token", h.IssueToken)

	authed := r.Group("/", h.AuthRequired())
	{
		authed.GET("/complaint-types", h.ListComplaintTypes)
		authed.GET("/faq", h.ListFAQs)
		authed.GET("/faq/:id", h.GetFAQ)
		authed.POST("/faq/:id/helpful", h.MarkFAQHelpful)
		authed.POST("/complaints", h.CreateComplaint)
		authed.GET("/complaints", h.ListComplaints)
		authed.GET("/complaints/:id", h.GetComplaint)
		authed.PATCH("/complaints/:id", h.UpdateComplaint)
		authed.GET("/complaints/:id/history", h.GetHistory)
		authed.POST("/complaints/:id/response", h.RespondToResolution)
		authed.POST("/complaints/:id/attachments", h.UploadAttachment)
		authed.GET("/attachments/:id", h.DownloadAttachment)
		authed.DELETE("/attachments/:id", h.DeleteAttachment)
	}

	staff := r.Group("/", h.AuthRequired(), h.StaffRequired())
	{
		staff.GET("/engineers", h.ListEngineers)
		staff.POST("/complaints/:id/assign", h.AssignEngineer)
		staff.POST("/complaints/:id/status", h.AdvanceStatus)
		staff.POST("/complaints/:id/resolve", h.ResolveComplaint)
		staff.GET("/remarks/unread", h.UnreadRemarks)
		staff.POST("/remarks/:id/read", h.MarkRemarkRead)
		staff.GET("/reports/summary", h.ReportSummary)
		staff.GET("/reports/export", h.ExportComplaints)
		staff.GET("/reports/metrics", h.MetricsRange)
		staff.GET("/ws", h.ServeLiveFeed)
	}
}

// writeError maps the lifecycle error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var (
		validation *lifecycle.ValidationError
		policy     *lifecycle.PolicyViolation
		notFound   *lifecycle.NotFoundError
		state      *lifecycle.StateError
		configErr  *lifecycle.ConfigurationError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &policy):
		c.JSON(http.StatusForbidden, gin.H{"error": policy.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &state):
		c.JSON(http.StatusConflict, gin.H{"error": state.Error()})
	case errors.As(err, &configErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": configErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
