package models_test

import (
	"testing"

	"helpdesk/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRoleIsStaff(t *testing.T) {
	assert.False(t, models.RoleUser.IsStaff())
	assert.True(t, models.RoleEngineer.IsStaff())
	assert.True(t, models.RoleAdmin.IsStaff())
	assert.False(t, models.Role("visitor").IsStaff())
}

func TestDisplayNamePrefersFullName(t *testing.T) {
	u := &models.User{Username: "jsmith", FullName: "Jamie Smith"}
	assert.Equal(t, "Jamie Smith", u.DisplayName())

	u.FullName = ""
	assert.Equal(t, "jsmith", u.DisplayName())
}
