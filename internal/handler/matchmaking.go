package handler

import (
	"net/http"
	"time"

	"github.com/hourglass-gg/hourglass/internal/domain"
	"github.com/hourglass-gg/hourglass/internal/logger"
	"github.com/hourglass-gg/hourglass/internal/matchmaking"
	"github.com/hourglass-gg/hourglass/internal/metrics"
)

// ReadyPlayersResponse carries the players free at the queried instant
type ReadyPlayersResponse struct {
	UserID  int64                `json:"user_id"`
	Now     time.Time            `json:"now"`
	Players []domain.ReadyPlayer `json:"players"`
}

// NextAvailableResponse carries a user's next availability window, null when
// the user has no schedule
type NextAvailableResponse struct {
	UserID int64            `json:"user_id"`
	Now    time.Time        `json:"now"`
	Next   *domain.NextSlot `json:"next"`
}

// HandleFindReadyPlayers handles GET requests for the users available right now
func HandleFindReadyPlayers(svc matchmaking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, err := userIDParam(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		now, err := nowParam(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		gameFilter := r.URL.Query().Get("game")

		players, err := svc.FindReadyPlayers(r.Context(), userID, now, gameFilter)
		if err != nil {
			log.Error("Failed to find ready players", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}
		if players == nil {
			players = []domain.ReadyPlayer{}
		}

		metrics.MatchQueries.Inc()
		metrics.ReadyPlayersFound.Add(float64(len(players)))
		log.Info("Ready players found", "user_id", userID, "count", len(players), "game_filter", gameFilter)
		respondJSON(w, http.StatusOK, ReadyPlayersResponse{UserID: userID, Now: now, Players: players})
	}
}

// HandleNextAvailable handles GET requests for a user's next availability window
func HandleNextAvailable(svc matchmaking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, err := userIDParam(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		now, err := nowParam(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		next, err := svc.NextAvailableFor(r.Context(), userID, now)
		if err != nil {
			log.Error("Failed to find next availability", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, NextAvailableResponse{UserID: userID, Now: now, Next: next})
	}
}
