package handler

import (
	"net/http"

	"helpdesk/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// UploadAttachment stores one multipart file against a complaint.
func (h *Handler) UploadAttachment(c *gin.Context) {
	complaint, ok := h.loadComplaint(c)
	if !ok {
		return
	}

	actor := currentActor(c)
	if !actor.Role.IsStaff() && complaint.UserID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your complaint"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}
	defer f.Close()

	attachment, err := h.Attachments.Save(
		complaint.ID,
		actor.ID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		f,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

// DownloadAttachment streams a stored file back under its original name.
func (h *Handler) DownloadAttachment(c *gin.Context) {
	attachment, complaint, ok := h.loadAttachment(c)
	if !ok {
		return
	}

	actor := currentActor(c)
	if !actor.Role.IsStaff() && complaint.UserID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your complaint"})
		return
	}

	f, err := h.Attachments.Open(attachment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.OriginalName+`"`)
	c.DataFromReader(http.StatusOK, attachment.Size, attachment.ContentType, f, nil)
}

// DeleteAttachment removes a stored file. Only the uploader or an admin may
// delete.
func (h *Handler) DeleteAttachment(c *gin.Context) {
	attachment, _, ok := h.loadAttachment(c)
	if !ok {
		return
	}

	actor := currentActor(c)
	if actor.Role != models.RoleAdmin && attachment.UploadedByID != actor.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your attachment"})
		return
	}

	if err := h.Attachments.Delete(attachment.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) loadAttachment(c *gin.Context) (*models.FileAttachment, *models.Complaint, bool) {
	id, ok := paramID(c)
	if !ok {
		return nil, nil, false
	}
	attachment, err := h.Storage.GetAttachmentByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, nil, false
	}
	if attachment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attachment not found"})
		return nil, nil, false
	}
	complaint, err := h.Storage.GetComplaintByID(attachment.ComplaintID)
	if err != nil || complaint == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return nil, nil, false
	}
	return attachment, complaint, true
}
