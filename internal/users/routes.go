package users

import (
	"net/http"

	"github.com/PortcullisApp/Portcullis-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(h Handler, fetcher middleware.SessionFetcher) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(fetcher))
		r.Get("/", h.ListHandler)
	})

	return r
}
