package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hourglass-gg/hourglass/internal/database"
	"github.com/hourglass-gg/hourglass/internal/handler"
	"github.com/hourglass-gg/hourglass/internal/logger"
	"github.com/hourglass-gg/hourglass/internal/matchmaking"
	"github.com/hourglass-gg/hourglass/internal/metrics"
	"github.com/hourglass-gg/hourglass/internal/profile"
	"github.com/hourglass-gg/hourglass/internal/schedule"
)

type Server struct {
	httpServer         *http.Server
	dbPool             database.Pool
	profileService     profile.Service
	scheduleService    schedule.Service
	matchmakingService matchmaking.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, profileService profile.Service, scheduleService schedule.Service, matchmakingService matchmaking.Service) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/availability", func(r chi.Router) {
			r.Get("/", handler.HandleGetWeek(scheduleService))
			r.Post("/", handler.HandleAddInterval(scheduleService))
			r.Post("/clear", handler.HandleClearDay(scheduleService))
			r.Get("/summary", handler.HandleGetSummary(scheduleService))
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", handler.HandleListGames(profileService))
			r.Post("/", handler.HandleAddGame(profileService))
			r.Post("/remove", handler.HandleRemoveGame(profileService))
			r.Get("/common", handler.HandleCommonGames(profileService))
			r.Get("/names", handler.HandleGetGameNames(profileService))
			r.Get("/players", handler.HandleGetPlayers(profileService))
		})

		r.Route("/timezone", func(r chi.Router) {
			r.Get("/", handler.HandleGetTimezone(profileService))
			r.Post("/", handler.HandleSetTimezone(profileService))
		})

		r.Route("/snooze", func(r chi.Router) {
			r.Post("/", handler.HandleSnooze(profileService))
			r.Post("/clear", handler.HandleUnsnooze(profileService))
		})

		r.Route("/matchmaking", func(r chi.Router) {
			r.Get("/ready", handler.HandleFindReadyPlayers(matchmakingService))
			r.Get("/next", handler.HandleNextAvailable(matchmakingService))
		})

		r.Get("/stats", handler.HandleGetStats(profileService))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:             dbPool,
		profileService:     profileService,
		scheduleService:    scheduleService,
		matchmakingService: matchmakingService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health and metrics endpoints are scraped constantly; skip them.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
