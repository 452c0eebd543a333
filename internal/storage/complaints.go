package storage

import (
	"errors"

	"helpdesk/backend/internal/models"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrVersionConflict is returned by UpdateComplaint when another transaction
// already moved the complaint past the version the caller read.
var ErrVersionConflict = errors.New("complaint was modified concurrently")

func (s *Service) CreateComplaint(c *models.Complaint) error {
	if err := s.DB.Create(c).Error; err != nil {
		log.WithError(err).WithField("user_id", c.UserID).Error("failed to create complaint")
		return err
	}
	return nil
}

func (s *Service) GetComplaintByID(id uint) (*models.Complaint, error) {
	var c models.Complaint
	err := s.DB.
		Preload("User").
		Preload("Type").
		Preload("Status").
		Preload("AssignedTo").
		First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateComplaint is a compare-and-swap on the version column. Associations
// are not written, only the complaint row itself.
func (s *Service) UpdateComplaint(c *models.Complaint, expectedVersion int) error {
	res := s.DB.Model(&models.Complaint{}).
		Where("id = ? AND version = ?", c.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status_id":      c.StatusID,
			"assigned_to_id": c.AssignedToID,
			"title":          c.Title,
			"description":    c.Description,
			"urgency":        c.Urgency,
			"location":       c.Location,
			"contact_number": c.ContactNumber,
			"resolved_at":    c.ResolvedAt,
			"version":        expectedVersion + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	c.Version = expectedVersion + 1
	return nil
}

func (s *Service) FindComplaints(filter ComplaintFilter) ([]models.Complaint, error) {
	q := s.DB.
		Preload("User").
		Preload("Type").
		Preload("Status").
		Preload("AssignedTo").
		Joins("JOIN statuses ON statuses.id = complaints.status_id")

	if filter.OwnerID != nil {
		q = q.Where("complaints.user_id = ?", *filter.OwnerID)
	}
	if filter.StatusID != nil {
		q = q.Where("complaints.status_id = ?", *filter.StatusID)
	}
	if filter.TypeID != nil {
		q = q.Where("complaints.type_id = ?", *filter.TypeID)
	}
	if filter.Urgency != nil {
		q = q.Where("complaints.urgency = ?", *filter.Urgency)
	}
	if filter.Unassigned {
		q = q.Where("complaints.assigned_to_id IS NULL")
	} else if filter.AssignedToID != nil {
		q = q.Where("complaints.assigned_to_id = ?", *filter.AssignedToID)
	}
	if filter.OpenOnly {
		q = q.Where("statuses.is_closed = ?", false)
	}
	if filter.ClosedOnly {
		q = q.Where("statuses.is_closed = ?", true)
	}
	if filter.CreatedFrom != nil {
		q = q.Where("complaints.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		q = q.Where("complaints.created_at < ?", *filter.CreatedTo)
	}

	var complaints []models.Complaint
	err := q.Order("complaints.created_at desc").Find(&complaints).Error
	return complaints, err
}

func (s *Service) AppendStatusHistory(h *models.StatusHistory) error {
	if err := s.DB.Create(h).Error; err != nil {
		log.WithError(err).WithField("complaint_id", h.ComplaintID).Error("failed to append status history")
		return err
	}
	return nil
}

func (s *Service) GetStatusHistory(complaintID uint) ([]models.StatusHistory, error) {
	var history []models.StatusHistory
	err := s.DB.
		Preload("PreviousStatus").
		Preload("NewStatus").
		Preload("ChangedBy").
		Where("complaint_id = ?", complaintID).
		Order("changed_at asc, id asc").
		Find(&history).Error
	return history, err
}

func (s *Service) CreateRemark(r *models.Remark) error {
	return s.DB.Create(r).Error
}

// GetRemarks returns remarks for a complaint in chronological order.
// Internal notes are filtered out unless includeInternal is set.
func (s *Service) GetRemarks(complaintID uint, includeInternal bool) ([]models.Remark, error) {
	q := s.DB.Preload("User").Where("complaint_id = ?", complaintID)
	if !includeInternal {
		q = q.Where("is_internal_note = ?", false)
	}
	var remarks []models.Remark
	err := q.Order("created_at asc").Find(&remarks).Error
	return remarks, err
}

func (s *Service) CreateComplaintRemark(r *models.ComplaintRemark) error {
	return s.DB.Create(r).Error
}

func (s *Service) ListUnreadComplaintRemarks(complaintIDs []uint) ([]models.ComplaintRemark, error) {
	var remarks []models.ComplaintRemark
	q := s.DB.Where("engineer_read = ?", false)
	if len(complaintIDs) > 0 {
		q = q.Where("complaint_id IN ?", complaintIDs)
	}
	err := q.Order("created_at asc").Find(&remarks).Error
	return remarks, err
}

func (s *Service) MarkComplaintRemarkRead(id uint) error {
	return s.DB.Model(&models.ComplaintRemark{}).
		Where("id = ?", id).
		Update("engineer_read", true).Error
}

func (s *Service) CreateClosing(c *models.ComplaintClosing) error {
	return s.DB.Create(c).Error
}

func (s *Service) GetClosing(complaintID uint) (*models.ComplaintClosing, error) {
	var closing models.ComplaintClosing
	err := s.DB.Preload("ClosedByStaff").
		Where("complaint_id = ?", complaintID).
		Order("staff_closed_at desc").
		First(&closing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &closing, nil
}

func (s *Service) SaveClosing(c *models.ComplaintClosing) error {
	return s.DB.Save(c).Error
}

// UpsertFeedback keeps one feedback row per complaint; a second submission
// replaces the rating and comment.
func (s *Service) UpsertFeedback(f *models.ComplaintFeedback) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "complaint_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(f).Error
}

func (s *Service) GetFeedback(complaintID uint) (*models.ComplaintFeedback, error) {
	var f models.ComplaintFeedback
	err := s.DB.Where("complaint_id = ?", complaintID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *Service) CreateAttachment(a *models.FileAttachment) error {
	return s.DB.Create(a).Error
}

func (s *Service) GetAttachmentByID(id uint) (*models.FileAttachment, error) {
	var a models.FileAttachment
	err := s.DB.First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) DeleteAttachmentRow(id uint) error {
	return s.DB.Delete(&models.FileAttachment{}, id).Error
}

func (s *Service) ListAttachments(complaintID uint) ([]models.FileAttachment, error) {
	var attachments []models.FileAttachment
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("uploaded_at desc").
		Find(&attachments).Error
	return attachments, err
}
