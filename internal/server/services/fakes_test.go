package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dkrasnovs/notekeeper/internal/common"
	"github.com/dkrasnovs/notekeeper/internal/dbx"
	"github.com/dkrasnovs/notekeeper/internal/server/config"
	"github.com/dkrasnovs/notekeeper/internal/server/models"
	attachmentsrepo "github.com/dkrasnovs/notekeeper/internal/server/repositories/attachments"
	notesrepo "github.com/dkrasnovs/notekeeper/internal/server/repositories/notes"
	usersrepo "github.com/dkrasnovs/notekeeper/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: time.Hour,
		BcryptCost:            4, // bcrypt.MinCost, keeps tests fast
	}
}

// --- fake repositories ---

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byEmail map[string]*models.User
	byID    map[string]*models.User
	getErr  error

	updated   *models.User
	updateErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "u-new"
	u.CreatedAt = time.Now()
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = u
	return nil
}

type fakeNotesRepo struct {
	createErr error

	notes map[string]*models.Note

	selectedOwner string
	selectOut     []*models.Note
	selectErr     error

	updated   *models.Note
	updateErr error

	deletedID string
	deleteErr error
}

func (f *fakeNotesRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	n.ID = "n-new"
	n.CreatedAt = time.Now()
	return n, nil
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	if n, ok := f.notes[id]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeNotesRepo) SelectByOwner(ctx context.Context, userID string) ([]*models.Note, error) {
	f.selectedOwner = userID
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.selectOut, nil
}

func (f *fakeNotesRepo) Update(ctx context.Context, n *models.Note) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = n
	return nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type fakeAttachmentsRepo struct {
	createOut *models.Attachment
	createErr error

	atts map[string]*models.Attachment

	markedID string
	markErr  error

	deletedNoteID string
	deleteErr     error
}

func (f *fakeAttachmentsRepo) Create(ctx context.Context, a *models.Attachment) (*models.Attachment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	a.ID = "a-new"
	a.CreatedAt = time.Now()
	return a, nil
}

func (f *fakeAttachmentsRepo) GetByID(ctx context.Context, id string) (*models.Attachment, error) {
	if a, ok := f.atts[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeAttachmentsRepo) SelectByNote(ctx context.Context, noteID string) ([]*models.Attachment, error) {
	result := make([]*models.Attachment, 0)
	for _, a := range f.atts {
		if a.NoteID == noteID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAttachmentsRepo) MarkUploaded(ctx context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedID = id
	return nil
}

func (f *fakeAttachmentsRepo) DeleteByNote(ctx context.Context, noteID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedNoteID = noteID
	return nil
}

// fakeRepoManager hands out the same fakes regardless of the DBTX, which is
// enough to exercise service logic including transactional paths.
type fakeRepoManager struct {
	users       *fakeUsersRepo
	notes       *fakeNotesRepo
	attachments *fakeAttachmentsRepo
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.users }

func (m *fakeRepoManager) Notes(db dbx.DBTX) notesrepo.Repository { return m.notes }

func (m *fakeRepoManager) Attachments(db dbx.DBTX) attachmentsrepo.Repository {
	return m.attachments
}
