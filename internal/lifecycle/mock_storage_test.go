package lifecycle_test

import (
	"time"

	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

// Transaction runs fn against the mock itself so expectations set on the
// mock cover the writes made inside the transaction.
func (m *MockStorage) Transaction(fn func(storage.Storage) error) error {
	return fn(m)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) ListActiveEngineers() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) ListStaffEmails() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) ListStatuses() ([]models.Status, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Status), args.Error(1)
}

func (m *MockStorage) SaveStatus(status *models.Status) error {
	args := m.Called(status)
	return args.Error(0)
}

func (m *MockStorage) ListActiveComplaintTypes() ([]models.ComplaintType, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComplaintType), args.Error(1)
}

func (m *MockStorage) GetComplaintTypeByID(id uint) (*models.ComplaintType, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplaintType), args.Error(1)
}

func (m *MockStorage) SaveComplaintType(t *models.ComplaintType) error {
	args := m.Called(t)
	return args.Error(0)
}

func (m *MockStorage) CreateComplaint(c *models.Complaint) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id uint) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) UpdateComplaint(c *models.Complaint, expectedVersion int) error {
	args := m.Called(c, expectedVersion)
	return args.Error(0)
}

func (m *MockStorage) FindComplaints(filter storage.ComplaintFilter) ([]models.Complaint, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) AppendStatusHistory(h *models.StatusHistory) error {
	args := m.Called(h)
	return args.Error(0)
}

func (m *MockStorage) GetStatusHistory(complaintID uint) ([]models.StatusHistory, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatusHistory), args.Error(1)
}

func (m *MockStorage) CreateRemark(r *models.Remark) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStorage) GetRemarks(complaintID uint, includeInternal bool) ([]models.Remark, error) {
	args := m.Called(complaintID, includeInternal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Remark), args.Error(1)
}

func (m *MockStorage) CreateComplaintRemark(r *models.ComplaintRemark) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStorage) ListUnreadComplaintRemarks(complaintIDs []uint) ([]models.ComplaintRemark, error) {
	args := m.Called(complaintIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComplaintRemark), args.Error(1)
}

func (m *MockStorage) MarkComplaintRemarkRead(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) CreateClosing(c *models.ComplaintClosing) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) GetClosing(complaintID uint) (*models.ComplaintClosing, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplaintClosing), args.Error(1)
}

func (m *MockStorage) SaveClosing(c *models.ComplaintClosing) error {
	args := m.Called(c)
	return args.Error(0)
}

func (m *MockStorage) UpsertFeedback(f *models.ComplaintFeedback) error {
	args := m.Called(f)
	return args.Error(0)
}

func (m *MockStorage) GetFeedback(complaintID uint) (*models.ComplaintFeedback, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComplaintFeedback), args.Error(1)
}

func (m *MockStorage) CreateAttachment(a *models.FileAttachment) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockStorage) GetAttachmentByID(id uint) (*models.FileAttachment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FileAttachment), args.Error(1)
}

func (m *MockStorage) DeleteAttachmentRow(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) ListAttachments(complaintID uint) ([]models.FileAttachment, error) {
	args := m.Called(complaintID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FileAttachment), args.Error(1)
}

func (m *MockStorage) ListFAQCategories() ([]models.FAQCategory, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FAQCategory), args.Error(1)
}

func (m *MockStorage) FindFAQs(categoryID *uint, search string) ([]models.FAQ, error) {
	args := m.Called(categoryID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FAQ), args.Error(1)
}

func (m *MockStorage) ListFeaturedFAQs(limit int) ([]models.FAQ, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FAQ), args.Error(1)
}

func (m *MockStorage) GetFAQByID(id uint) (*models.FAQ, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FAQ), args.Error(1)
}

func (m *MockStorage) ListRelatedFAQs(categoryID, excludeID uint, limit int) ([]models.FAQ, error) {
	args := m.Called(categoryID, excludeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FAQ), args.Error(1)
}

func (m *MockStorage) IncrementFAQViews(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) MarkFAQHelpful(id uint) (*models.FAQ, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FAQ), args.Error(1)
}

func (m *MockStorage) GetResolutionStats(from, to time.Time, slaWindow time.Duration) (*storage.ResolutionStats, error) {
	args := m.Called(from, to, slaWindow)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.ResolutionStats), args.Error(1)
}

func (m *MockStorage) UpsertMetrics(metrics *models.ComplaintMetrics) error {
	args := m.Called(metrics)
	return args.Error(0)
}

func (m *MockStorage) GetMetricsRange(from, to time.Time) ([]models.ComplaintMetrics, error) {
	args := m.Called(from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ComplaintMetrics), args.Error(1)
}

func (m *MockStorage) PublishEvent(event models.ComplaintEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockStorage) CacheSet(key string, value []byte, ttl time.Duration) error {
	args := m.Called(key, value, ttl)
	return args.Error(0)
}

func (m *MockStorage) CacheGet(key string) ([]byte, bool, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}
