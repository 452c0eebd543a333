package lifecycle_test

import (
	"helpdesk/backend/internal/catalog"
	"helpdesk/backend/internal/lifecycle"
	"helpdesk/backend/internal/models"
)

// The status table every test runs against, mirroring a seeded install.
func testStatuses() []models.Status {
	return []models.Status{
		{ID: 1, Name: "Open", Order: 1, IsActive: true},
		{ID: 2, Name: "Assigned", Order: 2, IsActive: true},
		{ID: 3, Name: "In Progress", Order: 3, IsActive: true},
		{ID: 4, Name: "Waiting for User", Order: 4, IsActive: true},
		{ID: 5, Name: "Resolved", Order: 5, IsClosed: true, IsActive: true},
		{ID: 6, Name: "Closed", Order: 6, IsClosed: true, IsActive: true},
		{ID: 7, Name: "Rejected", Order: 7, IsClosed: true, IsActive: true},
	}
}

func statusByID(id uint) *models.Status {
	statuses := testStatuses()
	for i := range statuses {
		if statuses[i].ID == id {
			return &statuses[i]
		}
	}
	return nil
}

func newTestService(m *MockStorage) *lifecycle.Service {
	return lifecycle.NewService(m, catalog.New(m), nil)
}

func testOwner() *models.User {
	return &models.User{ID: 10, Username: "jsmith", FullName: "Jamie Smith", Role: models.RoleUser, IsActive: true}
}

func testEngineer() *models.User {
	return &models.User{ID: 20, Username: "engineer1", FullName: "Sam Rivera", Role: models.RoleEngineer, IsActive: true}
}

func testAdmin() *models.User {
	return &models.User{ID: 30, Username: "admin1", Role: models.RoleAdmin, IsActive: true}
}

func engineerActor() lifecycle.Actor {
	return lifecycle.Actor{ID: 20, Role: models.RoleEngineer}
}

func userActor() lifecycle.Actor {
	return lifecycle.Actor{ID: 10, Role: models.RoleUser}
}

// complaintInStatus returns a complaint sitting in the given status with
// the association loaded, owned by testOwner.
func complaintInStatus(statusID uint) *models.Complaint {
	return &models.Complaint{
		ID:          1,
		UserID:      10,
		TypeID:      2,
		StatusID:    statusID,
		Status:      statusByID(statusID),
		Title:       "Monitor flickers",
		Description: "The screen flickers every few minutes.",
		Urgency:     models.UrgencyMedium,
		Version:     3,
	}
}
