package chat

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the authenticated /chats surface.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateChat)
	r.Get("/", h.GetChats)
	r.Get("/{id}", h.GetChat)
	r.Post("/{id}", h.Ask)
	r.Delete("/{id}", h.DeleteChat)
	return r
}
