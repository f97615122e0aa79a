// Package httpapi implements the NoteKeeper REST API using chi.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dkrasnovs/notekeeper/internal/logging"
	"github.com/dkrasnovs/notekeeper/internal/server/models"
)

// UserService is the slice of the user service the API depends on.
type UserService interface {
	TokenResolver
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	IssueToken(user *models.User) (string, error)
	UpdateProfile(ctx context.Context, principal *models.User, username, email, password string) (*models.User, error)
}

// NoteService is the slice of the note service the API depends on.
type NoteService interface {
	Create(ctx context.Context, principal *models.User, title, content string) (*models.Note, error)
	GetByID(ctx context.Context, principal *models.User, id string) (*models.Note, error)
	List(ctx context.Context, principal *models.User) ([]*models.Note, error)
	Update(ctx context.Context, principal *models.User, id, title, content string) (*models.Note, error)
	Delete(ctx context.Context, principal *models.User, id string) error
}

// AttachmentService is the slice of the attachment service the API depends on.
type AttachmentService interface {
	Attach(ctx context.Context, principal *models.User, noteID, fileName string) (*models.Attachment, string, error)
	Complete(ctx context.Context, principal *models.User, noteID, attachmentID string) error
	List(ctx context.Context, principal *models.User, noteID string) ([]*models.Attachment, error)
	DownloadURL(ctx context.Context, principal *models.User, noteID, attachmentID string) (string, error)
}

// Handler holds API route handlers.
type Handler struct {
	users       UserService
	notes       NoteService
	attachments AttachmentService
	logger      logging.Logger
}

// NewHandler creates a new Handler.
func NewHandler(users UserService, notes NoteService, attachments AttachmentService, logger logging.Logger) *Handler {
	return &Handler{
		users:       users,
		notes:       notes,
		attachments: attachments,
		logger:      logger.With("module", "httpapi"),
	}
}

// Register handles POST /auth/register. A successful registration logs the
// account straight in and returns its first access token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.users.IssueToken(user)
	if err != nil {
		h.logger.Error(r.Context(), "token issuance after registration failed", "error", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "username", user.UserName)
	writeJSON(w, http.StatusCreated, TokenResponse{Token: token})
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// Me handles GET /users/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(principal))
}

// UpdateMe handles PUT /users/me. Only the authenticated account itself can
// be changed through this route.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), principal, req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}
