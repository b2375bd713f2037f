package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hwigle/reactStudy/internal/api"
	"github.com/hwigle/reactStudy/internal/auth"
	"github.com/hwigle/reactStudy/internal/config"
	"github.com/hwigle/reactStudy/internal/database"
	"github.com/hwigle/reactStudy/internal/logger"
	"github.com/hwigle/reactStudy/internal/monitoring"
	"github.com/hwigle/reactStudy/internal/services"
	"github.com/hwigle/reactStudy/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// The signing key lives here for the process lifetime; it is never
	// logged or exposed.
	tokens := auth.NewTokenService(cfg.JWTSecret)

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	eventService := services.NewEventService(db)
	authService := services.NewAuthService(db, tokens, eventService)
	boardService := services.NewBoardService(db, eventService)
	commentService := services.NewCommentService(db, eventService)
	chatService := services.NewChatService(db)

	// Set up and run the background retention job
	retention, err := monitoring.NewRetention(eventService, chatService, cfg.RetentionCron, cfg.RetentionMaxAge)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid retention schedule")
	}
	go retention.Run()

	// Set up router
	router := api.NewRouter(hub, tokens, authService, boardService, commentService, eventService, chatService, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	retention.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
