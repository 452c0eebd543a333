package attachments_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"helpdesk/backend/internal/attachments"
	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowStore keeps attachment rows in memory and can be told to fail writes.
type rowStore struct {
	storage.Storage
	rows       map[uint]*models.FileAttachment
	nextID     uint
	failCreate bool
}

func newRowStore() *rowStore {
	return &rowStore{rows: map[uint]*models.FileAttachment{}, nextID: 1}
}

func (s *rowStore) Transaction(fn func(storage.Storage) error) error {
	return fn(s)
}

func (s *rowStore) CreateAttachment(a *models.FileAttachment) error {
	if s.failCreate {
		return assert.AnError
	}
	a.ID = s.nextID
	s.nextID++
	s.rows[a.ID] = a
	return nil
}

func (s *rowStore) GetAttachmentByID(id uint) (*models.FileAttachment, error) {
	return s.rows[id], nil
}

func (s *rowStore) DeleteAttachmentRow(id uint) error {
	delete(s.rows, id)
	return nil
}

func TestSaveStoresFileUnderOpaqueName(t *testing.T) {
	dir := t.TempDir()
	store := newRowStore()
	svc, err := attachments.NewService(store, dir)
	require.NoError(t, err)

	attachment, err := svc.Save(1, 10, "screenshot.png", "image/png", strings.NewReader("pretend-png"))
	require.NoError(t, err)

	assert.Equal(t, "screenshot.png", attachment.OriginalName)
	assert.NotEqual(t, "screenshot.png", attachment.StoredName)
	assert.Equal(t, ".png", filepath.Ext(attachment.StoredName), "the original extension survives")
	assert.Equal(t, int64(len("pretend-png")), attachment.Size)

	f, err := svc.Open(attachment)
	require.NoError(t, err)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "pretend-png", string(content))
}

func TestSaveRemovesFileWhenRowWriteFails(t *testing.T) {
	dir := t.TempDir()
	store := newRowStore()
	store.failCreate = true
	svc, err := attachments.NewService(store, dir)
	require.NoError(t, err)

	_, err = svc.Save(1, 10, "notes.txt", "text/plain", strings.NewReader("hello"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no orphan file may remain after a failed save")
}

func TestDeleteRemovesRowAndFile(t *testing.T) {
	dir := t.TempDir()
	store := newRowStore()
	svc, err := attachments.NewService(store, dir)
	require.NoError(t, err)

	attachment, err := svc.Save(1, 10, "notes.txt", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(attachment.ID))

	assert.Empty(t, store.rows)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteMissingAttachmentIsANoOp(t *testing.T) {
	svc, err := attachments.NewService(newRowStore(), t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(99))
}
