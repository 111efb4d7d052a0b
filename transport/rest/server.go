package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
)

// Start - starts the HTTP server for room creation and liveness probes.
func Start(ctx context.Context, logger *slog.Logger, port, allowedOrigin string, rooms roomCreator) error {
	h := NewHandlers(logger, rooms)

	mux := http.NewServeMux()
	mux.HandleFunc("/create-room", h.CreateRoomHandler)
	mux.HandleFunc("/status", h.StatusHandler)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{allowedOrigin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
	)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handlers.RecoveryHandler()(cors(mux)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down http server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
