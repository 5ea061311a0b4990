package handler

import (
	"net/http"

	"github.com/hourglass-gg/hourglass/internal/logger"
	"github.com/hourglass-gg/hourglass/internal/profile"
)

// StatsResponse carries service-level counts
type StatsResponse struct {
	Users int `json:"users"`
	Games int `json:"games"`
}

// HandleGetStats handles GET requests for service statistics
func HandleGetStats(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		users, err := svc.CountUsers(r.Context())
		if err != nil {
			log.Error("Failed to count users", "error", err)
			respondServiceError(w, err)
			return
		}

		names, err := svc.AllGameNames(r.Context())
		if err != nil {
			log.Error("Failed to count games", "error", err)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, StatsResponse{Users: users, Games: len(names)})
	}
}
