package httpapi

import (
	"time"

	"github.com/dkrasnovs/notekeeper/internal/server/models"
)

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// NoteRequest is the request body for creating and updating notes. Owner and
// creation time have no field here on purpose: they are not settable.
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse is a note as returned to its owner. The owner reference is
// omitted: it is always the caller.
type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toNoteResponse(n *models.Note) NoteResponse {
	return NoteResponse{ID: n.ID, Title: n.Title, Content: n.Content, CreatedAt: n.CreatedAt}
}

func toNoteResponses(notes []*models.Note) []NoteResponse {
	result := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		result = append(result, toNoteResponse(n))
	}
	return result
}

// UserResponse is an account profile. The password digest never appears.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.UserName, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

// UpdateProfileRequest is the request body for PUT /users/me. An empty
// password keeps the current one.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// AttachmentRequest is the request body for registering an attachment.
type AttachmentRequest struct {
	FileName string `json:"file_name"`
}

// AttachmentResponse is attachment metadata as returned to the note's owner.
type AttachmentResponse struct {
	ID           string    `json:"id"`
	FileName     string    `json:"file_name"`
	UploadStatus string    `json:"upload_status"`
	CreatedAt    time.Time `json:"created_at"`
}

func toAttachmentResponse(a *models.Attachment) AttachmentResponse {
	return AttachmentResponse{ID: a.ID, FileName: a.FileName, UploadStatus: a.UploadStatus, CreatedAt: a.CreatedAt}
}

func toAttachmentResponses(atts []*models.Attachment) []AttachmentResponse {
	result := make([]AttachmentResponse, 0, len(atts))
	for _, a := range atts {
		result = append(result, toAttachmentResponse(a))
	}
	return result
}

// AttachmentCreatedResponse pairs new attachment metadata with the presigned
// URL the client uploads the blob to.
type AttachmentCreatedResponse struct {
	Attachment AttachmentResponse `json:"attachment"`
	UploadURL  string             `json:"upload_url"`
}

// DownloadResponse carries a presigned download URL.
type DownloadResponse struct {
	DownloadURL string `json:"download_url"`
}
