package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires all API routes. Everything except registration and login
// sits behind the bearer-token authenticator.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(Authenticator(h.users))

		r.Get("/users/me", h.Me)
		r.Put("/users/me", h.UpdateMe)

		r.Route("/notes", func(r chi.Router) {
			r.Post("/", h.CreateNote)
			r.Get("/", h.ListNotes)
			r.Get("/{id}", h.GetNote)
			r.Put("/{id}", h.UpdateNote)
			r.Delete("/{id}", h.DeleteNote)

			r.Route("/{id}/attachments", func(r chi.Router) {
				r.Post("/", h.CreateAttachment)
				r.Get("/", h.ListAttachments)
				r.Post("/{attachmentID}/complete", h.CompleteAttachment)
				r.Get("/{attachmentID}/download", h.DownloadAttachment)
			})
		})
	})

	return r
}
