package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dkrasnovs/notekeeper/internal/common"
	"github.com/dkrasnovs/notekeeper/internal/dbx"
	"github.com/dkrasnovs/notekeeper/internal/server/models"
	"github.com/dkrasnovs/notekeeper/internal/server/repositories/repomanager"
)

// NoteService implements owner-scoped note CRUD. Every operation takes the
// resolved principal as an explicit argument; there is no ambient identity.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewNoteService constructs a NoteService.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// authorizeOwner is the single ownership check: a resource is accessible iff
// its owner id equals the principal's id. Reads are as owner-exclusive as
// writes. The distinct error kind lets callers decide how much to reveal.
func authorizeOwner(principal *models.User, ownerID string) error {
	if principal.ID != ownerID {
		return common.ErrForbidden
	}
	return nil
}

func validateNoteFields(title, content string) error {
	err := validation.Errors{
		"title":   validation.Validate(title, validation.Required, validation.RuneLength(1, models.NoteTitleMaxLen)),
		"content": validation.Validate(content, validation.Required, validation.RuneLength(1, models.NoteContentMaxLen)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

// Create persists a new note owned by the principal. The owner reference and
// creation time are set here, once, and are not settable through any later
// operation.
func (s *NoteService) Create(ctx context.Context, principal *models.User, title, content string) (*models.Note, error) {
	if err := validateNoteFields(title, content); err != nil {
		return nil, err
	}

	note := &models.Note{Title: title, Content: content, UserID: principal.ID}
	repo := s.repomanager.Notes(s.db)
	n, err := repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return n, nil
}

// GetByID fetches a note and enforces ownership before returning any of its
// content. Absent notes yield common.ErrorNotFound; notes owned by someone
// else yield common.ErrForbidden; the transport layer decides whether to
// collapse the two.
func (s *NoteService) GetByID(ctx context.Context, principal *models.User, id string) (*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	note, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching note: %w", err)
	}

	if err := authorizeOwner(principal, note.UserID); err != nil {
		return nil, err
	}

	return note, nil
}

// List returns all of the principal's notes. The owner filter is applied
// server-side from the principal; callers cannot supply one.
func (s *NoteService) List(ctx context.Context, principal *models.User) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	result, err := repo.SelectByOwner(ctx, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return result, nil
}

// Update overwrites title and content of an owned note. Owner and creation
// time are immutable regardless of the caller's payload shape.
func (s *NoteService) Update(ctx context.Context, principal *models.User, id, title, content string) (*models.Note, error) {
	if err := validateNoteFields(title, content); err != nil {
		return nil, err
	}

	// re-fetch and authorize before touching anything
	note, err := s.GetByID(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content

	repo := s.repomanager.Notes(s.db)
	if err := repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}

	return note, nil
}

// Delete removes an owned note together with its attachment metadata in one
// transaction.
func (s *NoteService) Delete(ctx context.Context, principal *models.User, id string) error {
	if _, err := s.GetByID(ctx, principal, id); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Attachments(tx).DeleteByNote(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Notes(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting note: %w", err)
	}

	return nil
}
