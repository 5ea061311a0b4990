package matchmaking

import (
	"context"
	"fmt"
	"time"

	"github.com/hourglass-gg/hourglass/internal/domain"
	"github.com/hourglass-gg/hourglass/internal/logger"
	"github.com/hourglass-gg/hourglass/internal/profile"
	"github.com/hourglass-gg/hourglass/internal/schedule"
)

// Service defines the interface for matchmaking queries. It composes the
// profile and schedule services; it holds no state of its own.
type Service interface {
	// FindReadyPlayers scans every known user except the invoker and
	// returns those currently inside one of their availability windows who
	// share at least one game with the invoker. A non-empty gameFilter
	// restricts the shared set to that one game. Snoozed users are
	// excluded. Results are ordered ascending by user id.
	FindReadyPlayers(ctx context.Context, invokerID int64, nowUTC time.Time, gameFilter string) ([]domain.ReadyPlayer, error)

	// NextAvailableFor returns the target user's next availability window
	// relative to nowUTC, nil when they have no timezone or no schedule.
	NextAvailableFor(ctx context.Context, targetID int64, nowUTC time.Time) (*domain.NextSlot, error)
}

type service struct {
	profiles  profile.Service
	schedules schedule.Service
}

// NewService creates a new matchmaking service.
func NewService(profiles profile.Service, schedules schedule.Service) Service {
	return &service{profiles: profiles, schedules: schedules}
}

// FindReadyPlayers is an O(users x games) scan per query. Correctness of the
// timezone-aware membership test dominates over throughput at a single
// community's scale, so no further indexing.
func (s *service) FindReadyPlayers(ctx context.Context, invokerID int64, nowUTC time.Time, gameFilter string) ([]domain.ReadyPlayer, error) {
	if invokerID <= 0 {
		return nil, domain.ErrInvalidUserID
	}

	filter := domain.NormalizeGameName(gameFilter)

	candidates, err := s.profiles.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	var ready []domain.ReadyPlayer
	for _, cand := range candidates {
		if cand.ID == invokerID || cand.Timezone == nil || cand.Snoozed(nowUTC) {
			continue
		}

		available, err := s.schedules.IsAvailableAt(ctx, cand.ID, nowUTC)
		if err != nil {
			return nil, fmt.Errorf("failed to check availability for user %d: %w", cand.ID, err)
		}
		if !available {
			continue
		}

		common, err := s.profiles.CommonGames(ctx, invokerID, cand.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get common games for user %d: %w", cand.ID, err)
		}

		shared := make([]string, 0, len(common))
		for _, g := range common {
			if filter != "" && g.Normalized != filter {
				continue
			}
			shared = append(shared, g.Name)
		}
		if len(shared) == 0 {
			continue
		}

		ready = append(ready, domain.ReadyPlayer{UserID: cand.ID, SharedGames: shared})
	}

	// Candidates arrive id-ascending from ListUsers, so ready is already
	// in final order.
	logger.FromContext(ctx).Debug("Matchmaking scan complete",
		"invoker_id", invokerID, "candidates", len(candidates), "ready", len(ready))
	return ready, nil
}

func (s *service) NextAvailableFor(ctx context.Context, targetID int64, nowUTC time.Time) (*domain.NextSlot, error) {
	if targetID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	return s.schedules.NextAvailable(ctx, targetID, nowUTC)
}
