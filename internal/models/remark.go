package models

import "time"

// Remark is a threaded comment on a complaint. A nil UserID marks a
// system-generated remark; IsInternalNote hides the remark from the
// submitting user.
type Remark struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ComplaintID    uint      `gorm:"not null;index" json:"complaint_id"`
	UserID         *uint     `json:"user_id"`
	User           *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	IsInternalNote bool      `gorm:"not null;default:false" json:"is_internal_note"`
	CreatedAt      time.Time `json:"created_at"`
}

// ComplaintRemark is the free-text note a dissatisfied user leaves when
// reopening a resolved complaint. EngineerRead is flipped when the assigned
// engineer acknowledges it.
type ComplaintRemark struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ComplaintID  uint      `gorm:"not null;index" json:"complaint_id"`
	UserID       uint      `gorm:"not null" json:"user_id"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	EngineerRead bool      `gorm:"not null;default:false" json:"engineer_read"`
	CreatedAt    time.Time `json:"created_at"`
}
