package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
)

// NewRouter wires all routes. Reading a single listing is public; every
// mutation and profile route requires a valid Bearer token.
func NewRouter(listings *ListingHandler, users *UserHandler, log *logger.Logger, jwtSecret string) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(Tracing)
	mux.Use(RequestLogger(log))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.Get("/api/listings/{id}", listings.HandleGet)

	mux.Group(func(r chi.Router) {
		r.Use(JWTAuth(jwtSecret))

		r.Post("/api/listings", listings.HandleCreate)
		r.Get("/api/listings", listings.HandleListOwn)
		r.Patch("/api/listings/{id}", listings.HandleUpdate)
		r.Delete("/api/listings/{id}", listings.HandleDelete)
		r.Post("/api/listings/{id}/images", listings.HandleAttachImages)
		r.Delete("/api/listings/{id}/images/{index}", listings.HandleRemoveImage)

		r.Get("/api/users/{id}", users.HandleGetProfile)
		r.Patch("/api/users/{id}", users.HandleUpdateProfile)
		r.Delete("/api/users/{id}", users.HandleDeleteAccount)
		r.Post("/api/users/{id}/avatar", users.HandleChangeAvatar)
	})

	return mux
}
