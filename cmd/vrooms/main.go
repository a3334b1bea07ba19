package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/navikt/vrooms/internal/api"
	"github.com/navikt/vrooms/internal/config"
	"github.com/navikt/vrooms/internal/repository"
	"github.com/navikt/vrooms/internal/repository/memory"
	"github.com/navikt/vrooms/internal/repository/redis"
	"github.com/navikt/vrooms/internal/service"
	"github.com/navikt/vrooms/internal/web"
	"github.com/navikt/vrooms/internal/ws"
)

func main() {
	serverConfig := config.GetServerConfig()
	roomConfig := config.GetRoomConfig()
	redisConfig := config.GetRedisConfig()

	// Initialize the repository
	var repo repository.Repository
	if redisConfig.Enabled {
		redisRepo, err := redis.NewRepository(redisConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer func() {
			if err := redisRepo.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}()
		log.Println("Using Redis repository")
		repo = redisRepo
	} else {
		log.Println("Using in-memory repository")
		repo = memory.NewRepository()
	}

	// Initialize the websocket hub and the service layer
	hub := ws.NewHub()
	roomService := service.NewRoomService(repo, hub, roomConfig)

	// Websocket endpoint for room sessions
	wsHandler := ws.NewHandler(hub, roomService)

	// SSE stream for the lobby; registers itself for room updates
	eventServer := web.NewEventServer(roomService)

	mux := api.SetupRoutes(roomService, wsHandler, eventServer, serverConfig)

	// Configure the HTTP server
	server := &http.Server{
		Addr:         ":" + serverConfig.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disable write timeout for SSE and websocket connections
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Printf("Starting vrooms server on port %s", serverConfig.Port)
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until a signal is received or an error occurs
	select {
	case err := <-serverErrors:
		log.Fatalf("Error starting server: %v", err)

	case <-shutdown:
		log.Println("Shutting down server...")

		// Close SSE subscribers and websocket sessions first so the
		// HTTP shutdown below is not held open by long-lived streams.
		eventServer.Shutdown()
		hub.Shutdown()

		// Create a deadline to wait for
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Doesn't block if there are no connections, but will otherwise
		// wait until the timeout deadline.
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			log.Fatalf("Error shutting down server: %v", err)
		}

		log.Println("Server gracefully stopped")
	}
}
