// Package livefeed pushes complaint lifecycle events to connected staff
// dashboards over WebSocket. Events arrive through Redis Pub/Sub so every
// server instance sees transitions committed by any of them. The feed is
// read-only and best-effort; a dropped connection loses nothing of record.
package livefeed

import (
	"encoding/json"

	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	log "github.com/sirupsen/logrus"
)

// Hub fans lifecycle events out to every registered client.
type Hub struct {
	Clients map[string]*WSClient

	RegisterCh   chan *WSClient
	UnregisterCh chan *WSClient

	Storage *storage.Service
}

func NewHub(s *storage.Service) *Hub {
	return &Hub{
		Clients:      make(map[string]*WSClient),
		RegisterCh:   make(chan *WSClient),
		UnregisterCh: make(chan *WSClient),
		Storage:      s,
	}
}

// Run owns the client map. Register, unregister and broadcast all pass
// through this loop, so no further locking is needed.
func (h *Hub) Run() {
	events := make(chan models.ComplaintEvent)
	go h.listen(events)

	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client.ID] = client
			log.WithField("client_id", client.ID).Debug("livefeed client connected")

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client.ID]; ok {
				delete(h.Clients, client.ID)
				client.Close()
			}

		case event := <-events:
			for _, client := range h.Clients {
				select {
				case client.Send <- event:
				default:
					// Slow consumer: drop it rather than block the feed.
					delete(h.Clients, client.ID)
					client.Close()
				}
			}
		}
	}
}

// listen consumes the Redis event channel and feeds the hub loop.
func (h *Hub) listen(events chan<- models.ComplaintEvent) {
	pubsub := h.Storage.SubscribeEvents()
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var event models.ComplaintEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.WithError(err).Error("bad event payload on livefeed channel")
			continue
		}
		events <- event
	}
}
