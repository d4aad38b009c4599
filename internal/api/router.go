package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/larrytao05/forum-backend/internal/api/handlers"
	"github.com/larrytao05/forum-backend/internal/api/middleware"
	"github.com/larrytao05/forum-backend/internal/service"
	"github.com/larrytao05/forum-backend/internal/websocket"
)

func NewRouter(services *service.Services, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.StripSlashes)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(services.Auth, services.User)
	sessionHandler := handlers.NewSessionHandler(services.Session, services.Friend, hub)
	friendHandler := handlers.NewFriendHandler(services.Friend, services.User, hub)
	leaderboardHandler := handlers.NewLeaderboardHandler(services.Leaderboard)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Post("/login", userHandler.Login)

			// Friend routes use usernames, ahead of the {userID} matches.
			r.Post("/friends/{username1}/{username2}", friendHandler.Send)
			r.Put("/friends/{username1}/{username2}", friendHandler.Accept)

			// Protected route
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", userHandler.Me)
			})

			r.Get("/{userID}", userHandler.Get)
			r.Delete("/{userID}", userHandler.Delete)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/{userID}", sessionHandler.Start)
			r.Put("/{userID}", sessionHandler.End)
			r.Delete("/{userID}", sessionHandler.Cancel)
		})

		r.Get("/leaderboard", leaderboardHandler.Top)

		// WebSocket presence feed
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
