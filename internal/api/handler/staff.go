package handler

import (
	"net/http"

	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// AssignEngineer assigns or unassigns an engineer. A null engineer_id
// clears the current assignment.
func (h *Handler) AssignEngineer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		EngineerID *uint `json:"engineer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Lifecycle.AssignEngineer(id, req.EngineerID, currentActor(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AdvanceStatus moves a complaint to the named status, recording the
// transition and an optional public note.
func (h *Handler) AdvanceStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Lifecycle.AdvanceStatus(id, req.Status, currentActor(c), req.Notes); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ResolveComplaint closes out a complaint with a mandatory closing remark.
func (h *Handler) ResolveComplaint(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req struct {
		Remark string `json:"remark" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Lifecycle.Resolve(id, currentActor(c), req.Remark); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UnreadRemarks lists user remarks engineers have not yet acknowledged.
// Engineers see remarks on their own complaints; admins see all of them.
func (h *Handler) UnreadRemarks(c *gin.Context) {
	actor := currentActor(c)

	var complaintIDs []uint
	if actor.Role != models.RoleAdmin {
		complaints, err := h.Storage.FindComplaints(storage.ComplaintFilter{AssignedToID: &actor.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if len(complaints) == 0 {
			c.JSON(http.StatusOK, gin.H{"remarks": []models.ComplaintRemark{}, "count": 0})
			return
		}
		for _, complaint := range complaints {
			complaintIDs = append(complaintIDs, complaint.ID)
		}
	}

	remarks, err := h.Storage.ListUnreadComplaintRemarks(complaintIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"remarks": remarks, "count": len(remarks)})
}

// MarkRemarkRead acknowledges one user remark.
func (h *Handler) MarkRemarkRead(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.Storage.MarkComplaintRemarkRead(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
