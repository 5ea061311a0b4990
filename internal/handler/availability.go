package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hourglass-gg/hourglass/internal/domain"
	"github.com/hourglass-gg/hourglass/internal/logger"
	"github.com/hourglass-gg/hourglass/internal/metrics"
	"github.com/hourglass-gg/hourglass/internal/schedule"
)

// AddIntervalRequest represents a request to add an availability window
type AddIntervalRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Day    string `json:"day" validate:"required,weekday"`
	Start  string `json:"start" validate:"required,hhmm"`
	End    string `json:"end" validate:"required,hhmm"`
}

// ClearDayRequest represents a request to clear one weekday
type ClearDayRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Day    string `json:"day" validate:"required,weekday"`
}

// WeekResponse carries a full weekly schedule
type WeekResponse struct {
	UserID int64                 `json:"user_id"`
	Week   domain.WeeklySchedule `json:"week"`
}

// SummaryResponse carries the rendered weekly summary block
type SummaryResponse struct {
	UserID  int64  `json:"user_id"`
	Summary string `json:"summary"`
}

// HandleAddInterval handles POST requests to add an availability interval
func HandleAddInterval(svc schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AddIntervalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add interval request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid add interval request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		day, err := domain.ParseWeekday(req.Day)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		if err := svc.AddInterval(r.Context(), req.UserID, day, req.Start, req.End); err != nil {
			log.Error("Failed to add interval", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		metrics.IntervalsAdded.WithLabelValues(string(day)).Inc()
		log.Info("Interval added", "user_id", req.UserID, "day", day, "start", req.Start, "end", req.End)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgIntervalAdded})
	}
}

// HandleClearDay handles POST requests to clear a weekday
func HandleClearDay(svc schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClearDayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode clear day request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid clear day request", "error", err)
			respondJSON(w, http.StatusBadRequest, FormatValidationError(err))
			return
		}

		day, err := domain.ParseWeekday(req.Day)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		if err := svc.ClearDay(r.Context(), req.UserID, day); err != nil {
			log.Error("Failed to clear day", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		metrics.DaysCleared.WithLabelValues(string(day)).Inc()
		log.Info("Day cleared", "user_id", req.UserID, "day", day)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDayCleared})
	}
}

// HandleGetWeek handles GET requests for a user's weekly schedule
func HandleGetWeek(svc schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, err := userIDParam(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		week, err := svc.GetWeeklySchedule(r.Context(), userID)
		if err != nil {
			log.Error("Failed to get weekly schedule", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, WeekResponse{UserID: userID, Week: week})
	}
}

// HandleGetSummary handles GET requests for the rendered weekly summary
func HandleGetSummary(svc schedule.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID, err := userIDParam(r)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		summary, err := svc.FormatWeekly(r.Context(), userID)
		if err != nil {
			log.Error("Failed to format weekly summary", "error", err, "user_id", userID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, SummaryResponse{UserID: userID, Summary: summary})
	}
}
