package models

import "time"

// StatusHistory is one row of the append-only transition ledger. Exactly one
// row is written per status change; the first row of a complaint has a nil
// PreviousStatusID.
//
// For a given complaint the rows ordered by ChangedAt form an unbroken chain:
// each row's previous status equals the prior row's new status.
type StatusHistory struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ComplaintID      uint      `gorm:"not null;index" json:"complaint_id"`
	PreviousStatusID *uint     `json:"previous_status_id"`
	PreviousStatus   *Status   `gorm:"foreignKey:PreviousStatusID" json:"previous_status,omitempty"`
	NewStatusID      uint      `gorm:"not null" json:"new_status_id"`
	NewStatus        *Status   `gorm:"foreignKey:NewStatusID" json:"new_status,omitempty"`
	ChangedByID      uint      `gorm:"not null" json:"changed_by_id"`
	ChangedBy        *User     `gorm:"foreignKey:ChangedByID" json:"changed_by,omitempty"`
	Notes            string    `gorm:"type:text" json:"notes"`
	ChangedAt        time.Time `gorm:"autoCreateTime" json:"changed_at"`
}

func (StatusHistory) TableName() string {
	return "status_history"
}
