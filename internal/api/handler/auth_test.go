package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"helpdesk/backend/internal/api/handler"
	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userStore serves the two queries the auth flow and the list endpoint hit.
type userStore struct {
	storage.Storage
	users map[string]*models.User
}

func (s *userStore) GetUserByUsername(username string) (*models.User, error) {
	return s.users[username], nil
}

func (s *userStore) FindComplaints(filter storage.ComplaintFilter) ([]models.Complaint, error) {
	return nil, nil
}

func newTestRouter() (*gin.Engine, *userStore) {
	gin.SetMode(gin.TestMode)
	store := &userStore{users: map[string]*models.User{
		"jsmith":    {ID: 10, Username: "jsmith", Role: models.RoleUser, IsActive: true},
		"engineer1": {ID: 20, Username: "engineer1", Role: models.RoleEngineer, IsActive: true},
		"disabled":  {ID: 40, Username: "disabled", Role: models.RoleUser, IsActive: false},
	}}

	h := handler.NewHandler(store, nil, nil, nil, nil, nil, []byte("test-secret"), "http://localhost:3000")
	r := gin.New()
	h.Register(r)
	return r, store
}

func issueToken(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"`+username+`"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func TestIssueTokenUnknownUser(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"ghost"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIssueTokenInactiveUser(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"disabled"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	r, _ := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/complaints", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteRejectsTamperedToken(t *testing.T) {
	r, _ := newTestRouter()
	token := issueToken(t, r, "jsmith")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/complaints", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRouteWithValidToken(t *testing.T) {
	r, _ := newTestRouter()
	token := issueToken(t, r, "jsmith")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/complaints", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStaffRouteRejectsPlainUsers(t *testing.T) {
	r, _ := newTestRouter()
	token := issueToken(t, r, "jsmith")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/remarks/unread", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
