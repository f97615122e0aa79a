package users

import (
	"context"

	"github.com/dkrasnovs/notekeeper/internal/server/models"
)

// Repository is the credential store: it persists account identity and the
// salted password digest, and resolves login handles back to accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
