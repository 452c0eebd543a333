package models

import "time"

// FAQCategory groups knowledge-base articles; Order drives display order.
type FAQCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
	Order       int       `gorm:"column:display_order;not null" json:"order"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// FAQ is a knowledge-base article users can read before filing a complaint.
// ViewCount and HelpfulCount track how useful an article actually is.
type FAQ struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	CategoryID   *uint        `gorm:"index" json:"category_id"`
	Category     *FAQCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Question     string       `gorm:"not null" json:"question"`
	Answer       string       `gorm:"type:text;not null" json:"answer"`
	IsFeatured   bool         `gorm:"not null;default:false" json:"is_featured"`
	IsActive     bool         `gorm:"not null;default:true" json:"is_active"`
	Order        int          `gorm:"column:display_order;not null" json:"order"`
	ViewCount    int          `gorm:"not null;default:0" json:"view_count"`
	HelpfulCount int          `gorm:"not null;default:0" json:"helpful_count"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
