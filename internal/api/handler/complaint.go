package handler

import (
	"net/http"
	"strconv"
	"time"

	"helpdesk/backend/internal/lifecycle"
	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// CreateComplaint submits a new complaint on behalf of the caller.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req struct {
		TypeID        uint           `json:"type_id" binding:"required"`
		Title         string         `json:"title" binding:"required"`
		Description   string         `json:"description" binding:"required"`
		Urgency       models.Urgency `json:"urgency"`
		Location      string         `json:"location"`
		ContactNumber string         `json:"contact_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := currentActor(c)
	complaint, err := h.Lifecycle.Create(lifecycle.CreateInput{
		OwnerID:       actor.ID,
		TypeID:        req.TypeID,
		Title:         req.Title,
		Description:   req.Description,
		Urgency:       req.Urgency,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

// ListComplaints returns complaints visible to the caller. Plain users see
// only their own; staff see everything and may filter.
func (h *Handler) ListComplaints(c *gin.Context) {
	actor := currentActor(c)
	filter := storage.ComplaintFilter{}

	if !actor.Role.IsStaff() {
		filter.OwnerID = &actor.ID
	} else {
		if v := c.Query("status_id"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				statusID := uint(id)
				filter.StatusID = &statusID
			}
		}
		if v := c.Query("type_id"); v != "" {
			if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				typeID := uint(id)
				filter.TypeID = &typeID
			}
		}
		if v := c.Query("urgency"); v != "" {
			urgency := models.Urgency(v)
			filter.Urgency = &urgency
		}
		if v := c.Query("assignee"); v != "" {
			if v == "unassigned" {
				filter.Unassigned = true
			} else if id, err := strconv.ParseUint(v, 10, 32); err == nil {
				assigneeID := uint(id)
				filter.AssignedToID = &assigneeID
			}
		}
		if c.Query("open") == "true" {
			filter.OpenOnly = true
		}
		if c.Query("closed") == "true" {
			filter.ClosedOnly = true
		}
	}
	if from, ok := parseDate(c.Query("from")); ok {
		filter.CreatedFrom = &from
	}
	if to, ok := parseDate(c.Query("to")); ok {
		filter.CreatedTo = &to
	}

	complaints, err := h.Storage.FindComplaints(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "count": len(complaints)})
}

// GetComplaint returns one complaint with its remarks, closing record and
// feedback. Owners see public remarks only; staff also see internal notes.
func (h *Handler) GetComplaint(c *gin.Context) {
	complaint, ok := h.loadComplaint(c)
	if !ok {
		return
	}

	actor := currentActor(c)
	if !actor.Role.IsStaff() && complaint.UserID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your complaint"})
		return
	}

	remarks, err := h.Storage.GetRemarks(complaint.ID, actor.Role.IsStaff())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	closing, err := h.Storage.GetClosing(complaint.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	feedback, err := h.Storage.GetFeedback(complaint.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	attachmentList, err := h.Storage.ListAttachments(complaint.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"complaint":   complaint,
		"remarks":     remarks,
		"closing":     closing,
		"feedback":    feedback,
		"attachments": attachmentList,
	})
}

// UpdateComplaint lets the owner amend an open complaint.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Title         *string         `json:"title"`
		Description   *string         `json:"description"`
		Urgency       *models.Urgency `json:"urgency"`
		Location      *string         `json:"location"`
		ContactNumber *string         `json:"contact_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.Lifecycle.UpdateDetails(id, currentActor(c), lifecycle.DetailUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Urgency:       req.Urgency,
		Location:      req.Location,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetHistory returns the full status transition chain of a complaint.
func (h *Handler) GetHistory(c *gin.Context) {
	complaint, ok := h.loadComplaint(c)
	if !ok {
		return
	}
	actor := currentActor(c)
	if !actor.Role.IsStaff() && complaint.UserID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your complaint"})
		return
	}

	history, err := h.Storage.GetStatusHistory(complaint.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// RespondToResolution records the owner's satisfied or dissatisfied answer
// to a staff resolution.
func (h *Handler) RespondToResolution(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Action  string `json:"action" binding:"required"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
		Remark  string `json:"remark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := currentActor(c)
	var err error
	switch req.Action {
	case "satisfied":
		err = h.Lifecycle.RespondSatisfied(id, actor.ID, req.Rating, req.Comment)
	case "dissatisfied":
		err = h.Lifecycle.RespondDissatisfied(id, actor.ID, req.Remark)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be satisfied or dissatisfied"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) loadComplaint(c *gin.Context) (*models.Complaint, bool) {
	id, ok := paramID(c)
	if !ok {
		return nil, false
	}
	complaint, err := h.Storage.GetComplaintByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, false
	}
	if complaint == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
		return nil, false
	}
	return complaint, true
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
