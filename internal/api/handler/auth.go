package handler

import (
	"net/http"
	"strings"
	"time"

	"helpdesk/backend/internal/lifecycle"
	"helpdesk/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
)

const actorContextKey = "actor"

// IssueToken exchanges a known username for a JWT carrying the user id and
// role claims. The role is resolved here, once, and trusted downstream.
func (h *Handler) IssueToken(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	user, err := h.Storage.GetUserByUsername(req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if user == nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
		"iss":     "helpdesk-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(h.JWTSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": signed, "role": user.Role})
}

// AuthRequired validates the bearer token and stores the actor on the
// context.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return h.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token or expired"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}
		role, _ := claims["role"].(string)

		c.Set(actorContextKey, lifecycle.Actor{
			ID:   uint(userID),
			Role: models.Role(role),
		})
		c.Next()
	}
}

// StaffRequired rejects requests whose actor is not an engineer or admin.
func (h *Handler) StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := currentActor(c)
		if !actor.Role.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}

func currentActor(c *gin.Context) lifecycle.Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(lifecycle.Actor); ok {
			return actor
		}
	}
	return lifecycle.Actor{}
}
