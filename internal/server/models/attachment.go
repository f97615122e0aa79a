package models

import "time"

// Attachment upload states.
const (
	UploadStatusPending  = "pending"
	UploadStatusUploaded = "uploaded"
)

// Attachment describes server-side metadata for a binary payload associated
// with a note. The content itself lives in object storage; clients exchange
// it via presigned URLs and never stream bytes through this server.
type Attachment struct {
	ID       string
	NoteID   string
	FileName string

	// StorageKey is the object-storage key (path) of the blob.
	StorageKey string

	// UploadStatus tracks upload state ("pending" until the client confirms).
	UploadStatus string

	CreatedAt time.Time
}
