package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes serves the /users surface. Authentication is mounted by the parent
// router; per-resource authorization happens in the service layer.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/profile", h.GetAllUsers)
	r.Post("/profile/profile-photo-upload", h.UploadProfilePhoto)
	r.Get("/profile/{id}", h.GetUser)
	r.Put("/profile/{id}", h.UpdateUser)
	r.Delete("/profile/{id}", h.DeleteUser)
	r.Get("/count", h.CountUsers)
	return r
}

// AuthRoutes serves the public /auth surface.
func AuthRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Post("/verify-code", h.VerifyCode)
	r.Post("/reset-password", h.ResetPassword)
	return r
}
