package handler

import (
	"net/http"

	"helpdesk/backend/internal/livefeed"
	"helpdesk/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// wsUpgrader accepts same-origin browser upgrades plus non-browser clients,
// which send no Origin header at all.
func (h *Handler) wsUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || origin == h.AllowedOrigin
		},
	}
}

// ServeLiveFeed upgrades a staff connection and attaches it to the event hub.
func (h *Handler) ServeLiveFeed(c *gin.Context) {
	upgrader := h.wsUpgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}

	client := &livefeed.WSClient{
		ID:   uuid.New().String(),
		Conn: conn,
		Hub:  h.Hub,
		Send: make(chan models.ComplaintEvent, 16),
	}
	h.Hub.RegisterCh <- client
	client.Run()
}
