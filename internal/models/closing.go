package models

import "time"

// ComplaintClosing captures the staff side of resolving a complaint and the
// submitting user's response to it. UserSatisfied is a tri-state: nil means
// the user has not responded yet. A complaint that is reopened and resolved
// again gets a fresh closing row; readers use the latest one.
type ComplaintClosing struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	ComplaintID        uint       `gorm:"not null;index" json:"complaint_id"`
	ClosedByStaffID    uint       `gorm:"not null" json:"closed_by_staff_id"`
	ClosedByStaff      *User      `gorm:"foreignKey:ClosedByStaffID" json:"closed_by_staff,omitempty"`
	StaffClosingRemark string     `gorm:"type:text;not null" json:"staff_closing_remark"`
	StaffClosedAt      time.Time  `gorm:"autoCreateTime" json:"staff_closed_at"`
	UserSatisfied      *bool      `json:"user_satisfied"`
	UserRemark         string     `gorm:"type:text" json:"user_remark"`
	UserClosedAt       *time.Time `json:"user_closed_at"`
}

// ComplaintFeedback is the singleton 1-5 rating a satisfied user leaves for
// a complaint. A second submission replaces the stored rating.
type ComplaintFeedback struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ComplaintID uint      `gorm:"not null;uniqueIndex" json:"complaint_id"`
	UserID      uint      `gorm:"not null" json:"user_id"`
	Rating      int       `gorm:"not null" json:"rating"`
	Comment     string    `gorm:"type:text" json:"comment"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
