package models

import "time"

// Urgency is the priority level assigned to a complaint.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Valid reports whether u is one of the known urgency levels.
func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// ComplaintType is administrator-defined reference data describing the
// category of a complaint (hardware, software, network, ...).
type ComplaintType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}

// Status is a named workflow state. Statuses with IsClosed set are terminal
// for resolution purposes; Order drives workflow sequencing and which status
// a new complaint starts in.
type Status struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	Order       int    `gorm:"column:display_order;not null" json:"order"`
	IsClosed    bool   `gorm:"not null;default:false" json:"is_closed"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
}

// Complaint is the record tracked through the resolution lifecycle.
//
// Invariant maintained by the lifecycle engine: ResolvedAt is non-nil if and
// only if the current status has IsClosed set.
type Complaint struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TypeID        uint           `gorm:"not null" json:"type_id"`
	Type          *ComplaintType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	StatusID      uint           `gorm:"not null;index" json:"status_id"`
	Status        *Status        `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	AssignedToID  *uint          `gorm:"index" json:"assigned_to_id"`
	AssignedTo    *User          `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Urgency       Urgency        `gorm:"type:text;not null;default:medium" json:"urgency"`
	Location      string         `json:"location"`
	ContactNumber string         `json:"contact_number"`
	ResolvedAt    *time.Time     `json:"resolved_at"`
	// Version guards concurrent transitions: every mutation by the lifecycle
	// engine is a compare-and-swap against the value it read.
	Version   int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsClosed reports whether the complaint currently sits in a closed status.
// The Status association must be loaded.
func (c *Complaint) IsClosed() bool {
	return c.Status != nil && c.Status.IsClosed
}
