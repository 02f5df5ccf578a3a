package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/inovotek/book-directory-api/internal/api/handlers"
	"github.com/inovotek/book-directory-api/internal/api/middleware"
	"github.com/inovotek/book-directory-api/internal/service"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.User)
	bookHandler := handlers.NewBookHandler(services.Book)

	requireSession := middleware.Session(services.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			// Public routes
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Get("/logout", authHandler.Logout)
			r.Get("/", userHandler.GetAll)
			r.Get("/{id}", userHandler.Get)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(requireSession)
				r.Get("/profile/{id}", userHandler.Profile)
				r.Put("/{id}", userHandler.Update)
			})
		})

		r.Route("/books", func(r chi.Router) {
			// Reads are public
			r.Get("/", bookHandler.GetAll)
			r.Get("/{id}", bookHandler.Get)

			// Writes require a session
			r.Group(func(r chi.Router) {
				r.Use(requireSession)
				r.Post("/", bookHandler.Create)
				r.Put("/{id}", bookHandler.Update)
				r.Delete("/{id}", bookHandler.Delete)
			})
		})
	})

	// Unmatched routes get a structured 404 instead of the default body.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"not found"}`))
	})

	return r
}
