package notes

import (
	"context"

	"github.com/dkrasnovs/notekeeper/internal/server/models"
)

// Repository persists notes. Ownership decisions are made a layer above:
// GetByID returns the note regardless of owner so the service can tell
// "absent" apart from "not yours", while SelectByOwner is always scoped
// server-side by the owner id.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	SelectByOwner(ctx context.Context, userID string) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
}
