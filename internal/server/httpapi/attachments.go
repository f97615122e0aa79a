package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CreateAttachment handles POST /notes/{id}/attachments. It registers the
// attachment and hands back a presigned URL for the actual upload.
func (h *Handler) CreateAttachment(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	var req AttachmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	att, uploadURL, err := h.attachments.Attach(r.Context(), principal, chi.URLParam(r, "id"), req.FileName)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, AttachmentCreatedResponse{
		Attachment: toAttachmentResponse(att),
		UploadURL:  uploadURL,
	})
}

// CompleteAttachment handles POST /notes/{id}/attachments/{attachmentID}/complete.
func (h *Handler) CompleteAttachment(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	err := h.attachments.Complete(r.Context(), principal, chi.URLParam(r, "id"), chi.URLParam(r, "attachmentID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

// ListAttachments handles GET /notes/{id}/attachments.
func (h *Handler) ListAttachments(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	atts, err := h.attachments.List(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAttachmentResponses(atts))
}

// DownloadAttachment handles GET /notes/{id}/attachments/{attachmentID}/download.
func (h *Handler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
		return
	}

	url, err := h.attachments.DownloadURL(r.Context(), principal, chi.URLParam(r, "id"), chi.URLParam(r, "attachmentID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DownloadResponse{DownloadURL: url})
}
