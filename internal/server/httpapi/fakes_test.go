package httpapi

import (
	"context"
	"time"

	"github.com/dkrasnovs/notekeeper/internal/logging"
	"github.com/dkrasnovs/notekeeper/internal/server/models"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeUsers struct {
	regResp *models.User
	regErr  error

	loginResp string
	loginErr  error

	tokenResp string
	tokenErr  error

	resolveResp *models.User
	resolveErr  error

	updateResp *models.User
	updateErr  error
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return f.regResp, f.regErr
}
func (f *fakeUsers) Login(ctx context.Context, email, password string) (string, error) {
	return f.loginResp, f.loginErr
}
func (f *fakeUsers) IssueToken(user *models.User) (string, error) {
	return f.tokenResp, f.tokenErr
}
func (f *fakeUsers) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	return f.resolveResp, f.resolveErr
}
func (f *fakeUsers) UpdateProfile(ctx context.Context, principal *models.User, username, email, password string) (*models.User, error) {
	return f.updateResp, f.updateErr
}

type fakeNotes struct {
	createResp *models.Note
	createErr  error

	getResp *models.Note
	getErr  error

	listResp []*models.Note
	listErr  error

	updateResp *models.Note
	updateErr  error

	deleteErr error

	// captured arguments
	gotPrincipal *models.User
	gotID        string
	gotTitle     string
	gotContent   string
}

func (f *fakeNotes) Create(ctx context.Context, principal *models.User, title, content string) (*models.Note, error) {
	f.gotPrincipal, f.gotTitle, f.gotContent = principal, title, content
	return f.createResp, f.createErr
}
func (f *fakeNotes) GetByID(ctx context.Context, principal *models.User, id string) (*models.Note, error) {
	f.gotPrincipal, f.gotID = principal, id
	return f.getResp, f.getErr
}
func (f *fakeNotes) List(ctx context.Context, principal *models.User) ([]*models.Note, error) {
	f.gotPrincipal = principal
	return f.listResp, f.listErr
}
func (f *fakeNotes) Update(ctx context.Context, principal *models.User, id, title, content string) (*models.Note, error) {
	f.gotPrincipal, f.gotID, f.gotTitle, f.gotContent = principal, id, title, content
	return f.updateResp, f.updateErr
}
func (f *fakeNotes) Delete(ctx context.Context, principal *models.User, id string) error {
	f.gotPrincipal, f.gotID = principal, id
	return f.deleteErr
}

type fakeAttachments struct {
	attachResp    *models.Attachment
	attachURL     string
	attachErr     error
	completeErr   error
	listResp      []*models.Attachment
	listErr       error
	downloadResp  string
	downloadErr   error
	gotNoteID     string
	gotAttachment string
}

func (f *fakeAttachments) Attach(ctx context.Context, principal *models.User, noteID, fileName string) (*models.Attachment, string, error) {
	f.gotNoteID = noteID
	return f.attachResp, f.attachURL, f.attachErr
}
func (f *fakeAttachments) Complete(ctx context.Context, principal *models.User, noteID, attachmentID string) error {
	f.gotNoteID, f.gotAttachment = noteID, attachmentID
	return f.completeErr
}
func (f *fakeAttachments) List(ctx context.Context, principal *models.User, noteID string) ([]*models.Attachment, error) {
	f.gotNoteID = noteID
	return f.listResp, f.listErr
}
func (f *fakeAttachments) DownloadURL(ctx context.Context, principal *models.User, noteID, attachmentID string) (string, error) {
	f.gotNoteID, f.gotAttachment = noteID, attachmentID
	return f.downloadResp, f.downloadErr
}

// ---- fixtures ----

var testPrincipal = &models.User{
	ID:        "u1",
	UserName:  "alice",
	Email:     "alice@example.com",
	Role:      models.DefaultRole,
	CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
}

func newTestHandler(users *fakeUsers, notes *fakeNotes, atts *fakeAttachments) *Handler {
	if users == nil {
		users = &fakeUsers{}
	}
	if notes == nil {
		notes = &fakeNotes{}
	}
	if atts == nil {
		atts = &fakeAttachments{}
	}
	return NewHandler(users, notes, atts, nopLogger{})
}
