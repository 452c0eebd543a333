// Package notify is the notification port of the lifecycle engine. The
// engine calls the Dispatcher after a transition commits; delivery is
// best-effort and failures never reach the workflow caller.
package notify

import (
	"helpdesk/backend/internal/models"

	log "github.com/sirupsen/logrus"
)

// Notifier delivers one notification kind over one channel. Implementations
// return an error for logging only; callers must not act on it.
type Notifier interface {
	ComplaintCreated(c *models.Complaint) error
	ComplaintAssigned(c *models.Complaint, engineer *models.User) error
	StatusChanged(c *models.Complaint, previousStatus, newStatus string) error
}

// Dispatcher fans a notification out to every configured channel in its own
// goroutine. Errors and panics are logged and swallowed.
type Dispatcher struct {
	channels []Notifier
}

func NewDispatcher(channels ...Notifier) *Dispatcher {
	return &Dispatcher{channels: channels}
}

func (d *Dispatcher) ComplaintCreated(c *models.Complaint) {
	d.dispatch("complaint_created", c.ID, func(n Notifier) error {
		return n.ComplaintCreated(c)
	})
}

func (d *Dispatcher) ComplaintAssigned(c *models.Complaint, engineer *models.User) {
	d.dispatch("complaint_assigned", c.ID, func(n Notifier) error {
		return n.ComplaintAssigned(c, engineer)
	})
}

func (d *Dispatcher) StatusChanged(c *models.Complaint, previousStatus, newStatus string) {
	d.dispatch("status_changed", c.ID, func(n Notifier) error {
		return n.StatusChanged(c, previousStatus, newStatus)
	})
}

func (d *Dispatcher) dispatch(kind string, complaintID uint, send func(Notifier) error) {
	if d == nil {
		return
	}
	for _, ch := range d.channels {
		ch := ch
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"kind":         kind,
						"complaint_id": complaintID,
						"panic":        r,
					}).Error("notifier panicked")
				}
			}()
			if err := send(ch); err != nil {
				log.WithError(err).WithFields(log.Fields{
					"kind":         kind,
					"complaint_id": complaintID,
				}).Warn("notification delivery failed")
			}
		}()
	}
}
