// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, issuing JWTs, and resolving
// bearer tokens back to stored accounts.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/dkrasnovs/notekeeper/internal/common"
	"github.com/dkrasnovs/notekeeper/internal/server/auth"
	"github.com/dkrasnovs/notekeeper/internal/server/config"
	"github.com/dkrasnovs/notekeeper/internal/server/models"
	"github.com/dkrasnovs/notekeeper/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
//   - Register: create accounts and hash their passwords
//   - Login: verify credentials and mint access tokens
//   - ResolveToken: turn a bearer token into the stored account (the principal)
//   - UpdateProfile: self-service profile changes
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

func validateCredentials(username, email, password string) error {
	err := validation.Errors{
		"username": validation.Validate(username, validation.Required, validation.RuneLength(3, 50)),
		// EmailFormat checks shape only; is.Email would resolve the host via DNS.
		"email":    validation.Validate(email, validation.Required, is.EmailFormat),
		"password": validation.Validate(password, validation.Required, validation.RuneLength(6, 72)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// Register creates a new account with the default role and a bcrypt password
// digest. A duplicate email or username yields common.ErrorAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := validateCredentials(username, email, password); err != nil {
		return nil, err
	}

	digest, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{UserName: username, Email: email, PasswordHash: digest, Role: models.DefaultRole}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies email/password and, on success, returns a signed access
// token. Unknown emails and wrong passwords are indistinguishable to the
// caller: both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	return s.IssueToken(user)
}

// IssueToken mints an access token for an already-authenticated account.
// Registration uses it to log the fresh account straight in.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	token, err := auth.GenerateToken(user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// ResolveToken validates a bearer token and looks up the account named by its
// subject. The two steps are deliberately separate: a token can be
// cryptographically valid while its subject no longer exists (account deleted
// after issuance), in which case the result is common.ErrPrincipalNotFound,
// not a principal.
func (s *UserService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	subject, err := auth.GetSubjectFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrPrincipalNotFound
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// UpdateProfile changes the principal's own username, email, and optionally
// password (empty password keeps the current digest). Only the authenticated
// account itself can be updated through this path.
func (s *UserService) UpdateProfile(ctx context.Context, principal *models.User, username, email, password string) (*models.User, error) {
	checkPassword := password
	if checkPassword == "" {
		// placeholder so the shared rule set does not reject a kept password
		checkPassword = "unchanged"
	}
	if err := validateCredentials(username, email, checkPassword); err != nil {
		return nil, err
	}

	updated := &models.User{
		ID:           principal.ID,
		UserName:     username,
		Email:        email,
		PasswordHash: principal.PasswordHash,
		Role:         principal.Role,
		CreatedAt:    principal.CreatedAt,
	}

	if password != "" {
		digest, err := auth.HashPassword(password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		updated.PasswordHash = digest
	}

	repo := s.repomanager.Users(s.db)
	if err := repo.Update(ctx, updated); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) || errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	return updated, nil
}
