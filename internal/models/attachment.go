package models

import "time"

// FileAttachment references a file stored on disk for a complaint. The
// stored name is opaque (a UUID); OriginalName is what the uploader called
// it. Deleting an attachment removes both the row and the backing file, via
// the attachments service only.
type FileAttachment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ComplaintID  uint      `gorm:"not null;index" json:"complaint_id"`
	StoredName   string    `gorm:"not null;uniqueIndex" json:"-"`
	OriginalName string    `gorm:"not null" json:"original_name"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	UploadedByID uint      `gorm:"not null" json:"uploaded_by_id"`
	UploadedAt   time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
