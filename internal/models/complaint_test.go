package models_test

import (
	"testing"

	"helpdesk/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUrgencyValid(t *testing.T) {
	for _, u := range []models.Urgency{models.UrgencyLow, models.UrgencyMedium, models.UrgencyHigh, models.UrgencyCritical} {
		assert.True(t, u.Valid(), "%s should be valid", u)
	}
	assert.False(t, models.Urgency("").Valid())
	assert.False(t, models.Urgency("extreme").Valid())
}

func TestComplaintIsClosed(t *testing.T) {
	c := &models.Complaint{}
	assert.False(t, c.IsClosed(), "an unloaded status association never reads as closed")

	c.Status = &models.Status{Name: "In Progress"}
	assert.False(t, c.IsClosed())

	c.Status = &models.Status{Name: "Resolved", IsClosed: true}
	assert.True(t, c.IsClosed())
}
