package models

import "time"

// ComplaintMetrics is a pre-aggregated daily snapshot written by the nightly
// rollup job. The live request path never writes these rows.
type ComplaintMetrics struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Date               time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	TotalComplaints    int       `gorm:"not null" json:"total_complaints"`
	OpenComplaints     int       `gorm:"not null" json:"open_complaints"`
	ResolvedComplaints int       `gorm:"not null" json:"resolved_complaints"`
	// Breakdown columns hold JSON maps of name -> count.
	UrgencyBreakdown   string    `gorm:"type:text" json:"urgency_breakdown"`
	TypeBreakdown      string    `gorm:"type:text" json:"type_breakdown"`
	AvgResolutionHours float64   `json:"avg_resolution_hours"`
	AvgRating          float64   `json:"avg_rating"`
	CreatedAt          time.Time `json:"created_at"`
}
