// Package attachments stores complaint files on disk under opaque names and
// keeps the database rows and the backing files in step. Deleting an
// attachment is one explicit operation that removes both.
package attachments

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	Storage storage.Storage
	Dir     string
}

func NewService(s storage.Storage, dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create attachment dir: %w", err)
	}
	return &Service{Storage: s, Dir: dir}, nil
}

// Save streams the upload to disk and records the attachment row. The file
// is removed again if the row cannot be written.
func (s *Service) Save(complaintID, uploaderID uint, originalName, contentType string, r io.Reader) (*models.FileAttachment, error) {
	storedName := uuid.New().String() + filepath.Ext(originalName)
	path := filepath.Join(s.Dir, storedName)

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	attachment := &models.FileAttachment{
		ComplaintID:  complaintID,
		StoredName:   storedName,
		OriginalName: originalName,
		Size:         size,
		ContentType:  contentType,
		UploadedByID: uploaderID,
	}
	if err := s.Storage.CreateAttachment(attachment); err != nil {
		os.Remove(path)
		return nil, err
	}
	return attachment, nil
}

// Delete removes the attachment row and its backing file together. The file
// is unlinked inside the transaction so a failed row delete leaves it in
// place.
func (s *Service) Delete(id uint) error {
	attachment, err := s.Storage.GetAttachmentByID(id)
	if err != nil {
		return err
	}
	if attachment == nil {
		return nil
	}

	return s.Storage.Transaction(func(tx storage.Storage) error {
		if err := tx.DeleteAttachmentRow(id); err != nil {
			return err
		}
		path := filepath.Join(s.Dir, attachment.StoredName)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	})
}

// Open returns a reader over the stored file for download handlers.
func (s *Service) Open(attachment *models.FileAttachment) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.Dir, attachment.StoredName))
	if err != nil {
		log.WithError(err).WithField("attachment_id", attachment.ID).Error("attachment file missing")
		return nil, err
	}
	return f, nil
}
