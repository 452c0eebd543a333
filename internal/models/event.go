package models

import "time"

// Event type constants published on the live feed and handed to notifiers.
const (
	EventComplaintCreated  = "complaint_created"
	EventComplaintAssigned = "complaint_assigned"
	EventStatusChanged     = "status_changed"
	EventComplaintReopened = "complaint_reopened"
	EventComplaintClosed   = "complaint_closed"
)

// ComplaintEvent describes a lifecycle transition for consumers outside the
// transaction: the notification dispatcher and the staff live feed.
type ComplaintEvent struct {
	Type           string    `json:"type"`
	ComplaintID    uint      `json:"complaint_id"`
	Title          string    `json:"title"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	NewStatus      string    `json:"new_status,omitempty"`
	ActorID        uint      `json:"actor_id"`
	ActorName      string    `json:"actor_name,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
