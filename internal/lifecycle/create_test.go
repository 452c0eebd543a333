package lifecycle_test

import (
	"errors"
	"testing"

	"helpdesk/backend/internal/lifecycle"
	"helpdesk/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateStartsInDefaultStatus(t *testing.T) {
	storageMock := new(MockStorage)
	svc := newTestService(storageMock)

	storageMock.On("GetUserByID", uint(10)).Return(testOwner(), nil)
	storageMock.On("GetComplaintTypeByID", uint(2)).Return(&models.ComplaintType{ID: 2, Name: "Hardware", IsActive: true}, nil)
	storageMock.On("ListStatuses").Return(testStatuses(), nil)

	storageMock.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*models.Complaint).ID = 1
		}).Return(nil).Once()

	var history *models.StatusHistory
	storageMock.On("AppendStatusHistory", mock.AnythingOfType("*models.StatusHistory")).
		Run(func(args mock.Arguments) {
			history = args.Get(0).(*models.StatusHistory)
		}).Return(nil).Once()

	storageMock.On("GetComplaintByID", uint(1)).Return(complaintInStatus(1), nil)
	storageMock.On("PublishEvent", mock.Anything).Return(nil)

	created, err := svc.Create(lifecycle.CreateInput{
		OwnerID:     10,
		TypeID:      2,
		Title:       "Monitor flickers",
		Description: "The screen flickers every few minutes.",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(1), created.StatusID, "new complaints start in the lowest-order open status")

	require.NotNil(t, history)
	assert.Nil(t, history.PreviousStatusID, "the first ledger row has no previous status")
	assert.Equal(t, uint(1), history.NewStatusID)
	assert.Equal(t, uint(10), history.ChangedByID)

	storageMock.AssertExpectations(t)
}

func TestCreateDefaultsUrgencyToMedium(t *testing.T) {
	storageMock := new(MockStorage)
	svc := newTestService(storageMock)

	storageMock.On("GetUserByID", uint(10)).Return(testOwner(), nil)
	storageMock.On("GetComplaintTypeByID", uint(2)).Return(&models.ComplaintType{ID: 2, IsActive: true}, nil)
	storageMock.On("ListStatuses").Return(testStatuses(), nil)

	var created *models.Complaint
	storageMock.On("CreateComplaint", mock.AnythingOfType("*models.Complaint")).
		Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.Complaint)
			created.ID = 1
		}).Return(nil)
	storageMock.On("AppendStatusHistory", mock.Anything).Return(nil)
	storageMock.On("GetComplaintByID", uint(1)).Return(complaintInStatus(1), nil)
	storageMock.On("PublishEvent", mock.Anything).Return(nil)

	_, err := svc.Create(lifecycle.CreateInput{
		OwnerID:     10,
		TypeID:      2,
		Title:       "VPN drops",
		Description: "Connection drops hourly.",
	})

	require.NoError(t, err)
	assert.Equal(t, models.UrgencyMedium, created.Urgency)
}

func TestCreateRejectsBlankTitle(t *testing.T) {
	storageMock := new(MockStorage)
	svc := newTestService(storageMock)

	_, err := svc.Create(lifecycle.CreateInput{
		OwnerID:     10,
		TypeID:      2,
		Title:       "   ",
		Description: "something",
	})

	var validation *lifecycle.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "title", validation.Field)
	storageMock.AssertNotCalled(t, "CreateComplaint", mock.Anything)
}

func TestCreateRejectsUnknownUrgency(t *testing.T) {
	storageMock := new(MockStorage)
	svc := newTestService(storageMock)

	_, err := svc.Create(lifecycle.CreateInput{
		OwnerID:     10,
		TypeID:      2,
		Title:       "Printer jam",
		Description: "Paper stuck",
		Urgency:     models.Urgency("urgent-ish"),
	})

	var validation *lifecycle.ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "urgency", validation.Field)
}

func TestCreateRejectsInactiveComplaintType(t *testing.T) {
	storageMock := new(MockStorage)
	svc := newTestService(storageMock)

	storageMock.On("GetUserByID", uint(10)).Return(testOwner(), nil)
	storageMock.On("GetComplaintTypeByID", uint(9)).Return(&models.ComplaintType{ID: 9, IsActive: false}, nil)

	_, err := svc.Create(lifecycle.CreateInput{
		OwnerID:     10,
		TypeID:      9,
		Title:       "Old category",
		Description: "should fail",
	})

	var notFound *lifecycle.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "complaint type", notFound.Entity)
}

func TestCreateFailsWhenNoOpenStatusExists(t *testing.T) {
	storageMock := new(MockStorage)
	svc := newTestService(storageMock)

	storageMock.On("GetUserByID", uint(10)).Return(testOwner(), nil)
	storageMock.On("GetComplaintTypeByID", uint(2)).Return(&models.ComplaintType{ID: 2, IsActive: true}, nil)
	// Only closed statuses are configured.
	storageMock.On("ListStatuses").Return([]models.Status{
		{ID: 5, Name: "Resolved", Order: 5, IsClosed: true, IsActive: true},
	}, nil)

	_, err := svc.Create(lifecycle.CreateInput{
		OwnerID:     10,
		TypeID:      2,
		Title:       "No landing spot",
		Description: "should fail",
	})

	var configErr *lifecycle.ConfigurationError
	require.True(t, errors.As(err, &configErr))
	storageMock.AssertNotCalled(t, "CreateComplaint", mock.Anything)
}
