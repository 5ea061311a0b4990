package discord

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HTTPServer exposes the bot's health endpoint for process monitoring.
type HTTPServer struct {
	server *http.Server
	bot    *Bot
}

// NewHTTPServer creates a new HTTP server
func NewHTTPServer(port string, bot *Bot) *HTTPServer {
	mux := http.NewServeMux()

	srv := &HTTPServer{
		server: &http.Server{
			Addr:    ":" + port,
			Handler: mux,
		},
		bot: bot,
	}

	mux.HandleFunc("/healthz", srv.HandleHealth)
	return srv
}

// Start starts the HTTP server
func (s *HTTPServer) Start() {
	go func() {
		slog.Info("Starting bot HTTP server", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Bot HTTP server failed", "error", err)
		}
	}()
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Bot HTTP server shutdown failed", "error", err)
	}
}
