package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/hourglass-gg/hourglass/internal/domain"
	"github.com/hourglass-gg/hourglass/internal/logger"
	"github.com/hourglass-gg/hourglass/internal/metrics"
	"github.com/hourglass-gg/hourglass/internal/profile"
)

// GameRequest represents a request to add or remove a game
type GameRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Name   string `json:"name" validate:"required,max=100"`
}

// SetTimezoneRequest represents a request to set a user's timezone
type SetTimezoneRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	Timezone string `json:"timezone" validate:"required,timezone_name"`
}

// SnoozeRequest represents a request to hide a user from matchmaking
type SnoozeRequest struct {
	UserID  int64 `json:"user_id" validate:"required,gt=0"`
	Minutes int   `json:"minutes" validate:"required,gt=0"`
}

// UnsnoozeRequest represents a request to clear a snooze
type UnsnoozeRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// GamesResponse carries a user's game list
type GamesResponse struct {
	UserID int64         `json:"user_id"`
	Games  []domain.Game `json:"games"`
}

// GameNamesResponse carries distinct game names for suggestions
type GameNamesResponse struct {
	Names []string `json:"names"`
}

// PlayersResponse carries the ids of users who play a game
type PlayersResponse struct {
	Game    string  `json:"game"`
	UserIDs []int64 `json:"user_ids"`
}

// TimezoneResponse carries a user's timezone, null when unset
type TimezoneResponse struct {
	UserID   int64   `json:"user_id"`
	Timezone *string `json:"timezone"`
}

// SnoozeResponse carries the instant a snooze expires
type SnoozeResponse struct {
	Message string    `json:"message"`
	Until   time.Time `json:"until"`
}

// decodeAndValidate decodes a JSON body into dst and runs struct validation.
// Writes the error response itself; callers just bail on false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	log := logger.FromContext(r.Context())
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Error("Failed to decode request", "error", err, "path", r.URL.Path)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return false
	}
	if err := GetValidator().ValidateStruct(dst); err != nil {
		log.Warn("Invalid request", "error", err, "path", r.URL.Path)
		respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
		return false
	}
	return true
}

// HandleAddGame handles POST requests to add a game to a user's list
func HandleAddGame(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GameRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		game, err := svc.AddGame(r.Context(), req.UserID, req.Name)
		if err != nil {
			log.Error("Failed to add game", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		metrics.GamesAdded.Inc()
		log.Info("Game added", "user_id", req.UserID, "game", game.Normalized)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGameAdded})
	}
}

// HandleRemoveGame handles POST requests to remove a game from a user's list
func HandleRemoveGame(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GameRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		removed, err := svc.RemoveGame(r.Context(), req.UserID, req.Name)
		if err != nil {
			log.Error("Failed to remove game", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		if !removed {
			respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGameNotFound})
			return
		}

		metrics.GamesRemoved.Inc()
		log.Info("Game removed", "user_id", req.UserID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgGameRemoved})
	}
}

// HandleListGames handles GET requests for a user's game list
func HandleListGames(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		games, err := svc.ListGames(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list games", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}
		if games == nil {
			games = []domain.Game{}
		}

		respondJSON(w, http.StatusOK, GamesResponse{UserID: userID, Games: games})
	}
}

// HandleCommonGames handles GET requests for the games two users share
func HandleCommonGames(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		rawOther := r.URL.Query().Get("other_id")
		if rawOther == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "other_id"))
			return
		}
		otherID, err := strconv.ParseInt(rawOther, 10, 64)
		if err != nil || otherID <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid other_id parameter")
			return
		}

		games, err := svc.CommonGames(r.Context(), userID, otherID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get common games", "error", err,
				"user_id", userID, "other_id", otherID)
			respondServiceError(w, err)
			return
		}
		if games == nil {
			games = []domain.Game{}
		}

		respondJSON(w, http.StatusOK, GamesResponse{UserID: userID, Games: games})
	}
}

// HandleGetGameNames handles GET requests for all distinct game names
func HandleGetGameNames(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.AllGameNames(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to list game names", "error", err)
			respondServiceError(w, err)
			return
		}
		if names == nil {
			names = []string{}
		}

		respondJSON(w, http.StatusOK, GameNamesResponse{Names: names})
	}
}

// HandleGetPlayers handles GET requests for the users who play a game
func HandleGetPlayers(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("game")
		if name == "" {
			respondError(w, http.StatusBadRequest, "Missing game query parameter")
			return
		}

		ids, err := svc.UsersForGame(r.Context(), name)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get players", "error", err, "game", name)
			respondServiceError(w, err)
			return
		}
		if ids == nil {
			ids = []int64{}
		}

		respondJSON(w, http.StatusOK, PlayersResponse{Game: name, UserIDs: ids})
	}
}

// HandleSetTimezone handles POST requests to set a user's timezone
func HandleSetTimezone(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetTimezoneRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := svc.SetTimezone(r.Context(), req.UserID, req.Timezone); err != nil {
			log.Error("Failed to set timezone", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		metrics.TimezonesSet.Inc()
		log.Info("Timezone set", "user_id", req.UserID, "timezone", req.Timezone)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTimezoneSet})
	}
}

// HandleGetTimezone handles GET requests for a user's timezone
func HandleGetTimezone(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		tz, err := svc.GetTimezone(r.Context(), userID)
		if err != nil {
			logger.FromContext(r.Context()).Error("Failed to get timezone", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, TimezoneResponse{UserID: userID, Timezone: tz})
	}
}

// HandleSnooze handles POST requests to snooze a user
func HandleSnooze(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SnoozeRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		until, err := svc.Snooze(r.Context(), req.UserID, time.Now().UTC(), time.Duration(req.Minutes)*time.Minute)
		if err != nil {
			log.Error("Failed to snooze", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		metrics.SnoozesSet.Inc()
		log.Info("User snoozed", "user_id", req.UserID, "until", until)
		respondJSON(w, http.StatusOK, SnoozeResponse{Message: MsgSnoozeSet, Until: until})
	}
}

// HandleUnsnooze handles POST requests to clear a user's snooze
func HandleUnsnooze(svc profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UnsnoozeRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := svc.Unsnooze(r.Context(), req.UserID); err != nil {
			log.Error("Failed to unsnooze", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSnoozeCleared})
	}
}
