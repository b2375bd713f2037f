package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hwigle/reactStudy/internal/api/handlers"
	"github.com/hwigle/reactStudy/internal/auth"
	"github.com/hwigle/reactStudy/internal/services"
	ws "github.com/hwigle/reactStudy/internal/websocket"
)

// DefaultPolicy is the route access table: auth endpoints and reads are
// public, everything else requires authentication. Unmatched routes
// require authentication too.
func DefaultPolicy() *auth.Policy {
	return auth.NewPolicy(
		auth.Rule{Method: "*", Pattern: "/api/auth/*", Access: auth.Public},
		auth.Rule{Method: http.MethodGet, Pattern: "/api/board", Access: auth.Public},
		auth.Rule{Method: http.MethodGet, Pattern: "/api/board/*", Access: auth.Public},
		auth.Rule{Method: http.MethodGet, Pattern: "/api/chat/*", Access: auth.Public},
		auth.Rule{Method: http.MethodGet, Pattern: "/ws/*", Access: auth.Public},
	)
}

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *ws.Hub,
	tokens *auth.TokenService,
	authService services.AuthServiceProvider,
	boardService services.BoardServiceProvider,
	commentService services.CommentServiceProvider,
	eventService services.EventServiceProvider,
	chatService services.ChatServiceProvider,
	allowedOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{allowedOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Resolve bearer tokens first, then enforce the route access policy.
	r.Use(auth.Authenticator(tokens))
	r.Use(DefaultPolicy().Enforce)

	authHandler := handlers.NewAuthHandler(authService)
	boardHandler := handlers.NewBoardHandler(boardService)
	commentHandler := handlers.NewCommentHandler(commentService)
	eventHandler := handlers.NewEventHandler(eventService)
	chatHandler := handlers.NewChatHandler(chatService)
	wsHandler := handlers.NewWebSocketHandler(hub, chatService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Route("/board", func(r chi.Router) {
			r.Get("/", boardHandler.GetAll)
			r.Post("/", boardHandler.Create)
			r.Route("/{boardId}", func(r chi.Router) {
				r.Get("/", boardHandler.Get)
				r.Put("/", boardHandler.Update)
				r.Delete("/", boardHandler.Delete)
				r.Get("/comments", commentHandler.GetForBoard)
				r.Post("/comments", commentHandler.Create)
			})
		})

		r.Delete("/comments/{commentId}", commentHandler.Delete)

		r.Get("/events", eventHandler.GetRecent)

		r.Get("/chat/{roomId}/messages", chatHandler.History)
	})

	// WebSocket chat relay endpoint
	r.Get("/ws/chat/{roomId}", wsHandler.Serve)

	return r
}
