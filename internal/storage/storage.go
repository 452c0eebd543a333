package storage

import (
	"context"
	"errors"
	"time"

	"helpdesk/backend/internal/models"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ComplaintFilter narrows FindComplaints. Nil pointer fields are ignored.
type ComplaintFilter struct {
	OwnerID      *uint
	StatusID     *uint
	TypeID       *uint
	Urgency      *models.Urgency
	AssignedToID *uint
	Unassigned   bool
	OpenOnly     bool
	ClosedOnly   bool
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// ResolutionStats aggregates resolved complaints over a date range.
type ResolutionStats struct {
	Total         int64   `json:"total"`
	Resolved      int64   `json:"resolved"`
	AvgHours      float64 `json:"avg_resolution_hours"`
	WithinSLA     int64   `json:"within_sla"`
	AverageRating float64 `json:"average_rating"`
}

type Storage interface {
	// Transaction runs fn against a Storage bound to one database
	// transaction; fn returning an error rolls everything back.
	Transaction(fn func(Storage) error) error

	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	SaveUser(user *models.User) error
	ListActiveEngineers() ([]models.User, error)
	ListStaffEmails() ([]string, error)

	ListStatuses() ([]models.Status, error)
	SaveStatus(status *models.Status) error
	ListActiveComplaintTypes() ([]models.ComplaintType, error)
	GetComplaintTypeByID(id uint) (*models.ComplaintType, error)
	SaveComplaintType(t *models.ComplaintType) error

	CreateComplaint(c *models.Complaint) error
	GetComplaintByID(id uint) (*models.Complaint, error)
	// UpdateComplaint persists c only when its stored version still equals
	// expectedVersion, bumping the version on success. Returns
	// ErrVersionConflict when the row moved underneath.
	UpdateComplaint(c *models.Complaint, expectedVersion int) error
	FindComplaints(filter ComplaintFilter) ([]models.Complaint, error)

	AppendStatusHistory(h *models.StatusHistory) error
	GetStatusHistory(complaintID uint) ([]models.StatusHistory, error)

	CreateRemark(r *models.Remark) error
	GetRemarks(complaintID uint, includeInternal bool) ([]models.Remark, error)
	CreateComplaintRemark(r *models.ComplaintRemark) error
	ListUnreadComplaintRemarks(complaintIDs []uint) ([]models.ComplaintRemark, error)
	MarkComplaintRemarkRead(id uint) error

	CreateClosing(c *models.ComplaintClosing) error
	GetClosing(complaintID uint) (*models.ComplaintClosing, error)
	SaveClosing(c *models.ComplaintClosing) error
	UpsertFeedback(f *models.ComplaintFeedback) error
	GetFeedback(complaintID uint) (*models.ComplaintFeedback, error)

	CreateAttachment(a *models.FileAttachment) error
	GetAttachmentByID(id uint) (*models.FileAttachment, error)
	DeleteAttachmentRow(id uint) error
	ListAttachments(complaintID uint) ([]models.FileAttachment, error)

	ListFAQCategories() ([]models.FAQCategory, error)
	FindFAQs(categoryID *uint, search string) ([]models.FAQ, error)
	ListFeaturedFAQs(limit int) ([]models.FAQ, error)
	GetFAQByID(id uint) (*models.FAQ, error)
	ListRelatedFAQs(categoryID, excludeID uint, limit int) ([]models.FAQ, error)
	IncrementFAQViews(id uint) error
	// MarkFAQHelpful bumps the helpful counter and returns the new value,
	// or nil when no active article has that id.
	MarkFAQHelpful(id uint) (*models.FAQ, error)

	GetResolutionStats(from, to time.Time, slaWindow time.Duration) (*ResolutionStats, error)
	UpsertMetrics(m *models.ComplaintMetrics) error
	GetMetricsRange(from, to time.Time) ([]models.ComplaintMetrics, error)

	PublishEvent(event models.ComplaintEvent) error
	CacheSet(key string, value []byte, ttl time.Duration) error
	CacheGet(key string) ([]byte, bool, error)
}

// Service is the PostgreSQL + Redis implementation of Storage.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// Transaction runs fn with a Service bound to a single gorm transaction.
func (s *Service) Transaction(fn func(Storage) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Service{DB: tx, Redis: s.Redis, Ctx: s.Ctx})
	})
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) ListActiveEngineers() ([]models.User, error) {
	var engineers []models.User
	err := s.DB.Where("role = ? AND is_active = ?", models.RoleEngineer, true).
		Order("full_name asc").
		Find(&engineers).Error
	return engineers, err
}

// ListStaffEmails returns the addresses of active engineers and admins,
// skipping accounts without an email.
func (s *Service) ListStaffEmails() ([]string, error) {
	var emails []string
	err := s.DB.Model(&models.User{}).
		Where("role IN ? AND is_active = ? AND email <> ''", []models.Role{models.RoleEngineer, models.RoleAdmin}, true).
		Pluck("email", &emails).Error
	if err != nil {
		log.WithError(err).Error("failed to list staff emails")
		return nil, err
	}
	return emails, nil
}

func (s *Service) ListStatuses() ([]models.Status, error) {
	var statuses []models.Status
	err := s.DB.Order("display_order asc").Find(&statuses).Error
	return statuses, err
}

func (s *Service) SaveStatus(status *models.Status) error {
	return s.DB.Save(status).Error
}

func (s *Service) ListActiveComplaintTypes() ([]models.ComplaintType, error) {
	var types []models.ComplaintType
	err := s.DB.Where("is_active = ?", true).Order("name asc").Find(&types).Error
	return types, err
}

func (s *Service) GetComplaintTypeByID(id uint) (*models.ComplaintType, error) {
	var t models.ComplaintType
	err := s.DB.First(&t, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) SaveComplaintType(t *models.ComplaintType) error {
	return s.DB.Save(t).Error
}
