package attachments

import (
	"context"

	"github.com/dkrasnovs/notekeeper/internal/server/models"
)

// Repository persists attachment metadata. The blobs themselves live in
// object storage and are reached through presigned URLs.
type Repository interface {
	Create(ctx context.Context, att *models.Attachment) (*models.Attachment, error)
	GetByID(ctx context.Context, id string) (*models.Attachment, error)
	SelectByNote(ctx context.Context, noteID string) ([]*models.Attachment, error)
	MarkUploaded(ctx context.Context, id string) error
	DeleteByNote(ctx context.Context, noteID string) error
}
