package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes(m *Manager) http.Handler {
	r := chi.NewRouter()

	r.With(m.DecodeCredentials, m.CheckUsernameFree, m.CheckPasswordLength).
		Post("/register", m.RegisterHandler)
	r.With(m.DecodeCredentials, m.CheckUsernameExists).
		Post("/login", m.LoginHandler)
	r.Get("/logout", m.LogoutHandler)

	return r
}
