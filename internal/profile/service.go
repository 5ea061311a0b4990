package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hourglass-gg/hourglass/internal/domain"
	"github.com/hourglass-gg/hourglass/internal/logger"
	"github.com/hourglass-gg/hourglass/internal/repository"
)

// Service defines the interface for profile operations: the game list, the
// timezone and the snooze flag that together make a user matchable.
type Service interface {
	// AddGame records a game for the user. Names collapsing to the same
	// normalized key are one entry; re-adding updates the stored spelling
	// without moving the entry's position.
	AddGame(ctx context.Context, userID int64, name string) (domain.Game, error)

	// RemoveGame deletes the entry matching the name's normalized key and
	// reports whether anything was removed.
	RemoveGame(ctx context.Context, userID int64, name string) (bool, error)

	// ListGames returns the user's games in insertion order.
	ListGames(ctx context.Context, userID int64) ([]domain.Game, error)

	// CommonGames returns the games both users play, ordered and spelled
	// per the first user.
	CommonGames(ctx context.Context, userA, userB int64) ([]domain.Game, error)

	// UsersForGame returns the ids of everyone who plays the named game,
	// ascending.
	UsersForGame(ctx context.Context, name string) ([]int64, error)

	// AllGameNames returns one spelling per distinct game across all
	// users, sorted. Feeds command autocomplete.
	AllGameNames(ctx context.Context) ([]string, error)

	// SetTimezone stores the user's IANA timezone after validating it
	// resolves.
	SetTimezone(ctx context.Context, userID int64, tz string) error

	// GetTimezone returns the stored timezone, nil when unset.
	GetTimezone(ctx context.Context, userID int64) (*string, error)

	// Snooze hides the user from matchmaking for the given duration.
	Snooze(ctx context.Context, userID int64, nowUTC time.Time, d time.Duration) (time.Time, error)

	// Unsnooze clears the snooze immediately. Idempotent.
	Unsnooze(ctx context.Context, userID int64) error

	// ListUsers returns every known user, ascending by id.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int, error)
}

type service struct {
	repo repository.Profile
}

// NewService creates a new profile service.
func NewService(repo repository.Profile) Service {
	return &service{repo: repo}
}

func validateGameName(name string) (domain.Game, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Game{}, domain.ErrEmptyGameName
	}
	g := domain.NewGame(name)
	if g.Normalized == "" {
		return domain.Game{}, domain.ErrEmptyGameName
	}
	return g, nil
}

func (s *service) AddGame(ctx context.Context, userID int64, name string) (domain.Game, error) {
	if userID <= 0 {
		return domain.Game{}, domain.ErrInvalidUserID
	}
	game, err := validateGameName(name)
	if err != nil {
		return domain.Game{}, err
	}
	if err := s.repo.UpsertGame(ctx, userID, game); err != nil {
		return domain.Game{}, fmt.Errorf("failed to add game: %w", err)
	}
	logger.FromContext(ctx).Debug("Game added", "user_id", userID, "game", game.Normalized)
	return game, nil
}

func (s *service) RemoveGame(ctx context.Context, userID int64, name string) (bool, error) {
	if userID <= 0 {
		return false, domain.ErrInvalidUserID
	}
	game, err := validateGameName(name)
	if err != nil {
		return false, err
	}
	removed, err := s.repo.RemoveGame(ctx, userID, game.Normalized)
	if err != nil {
		return false, fmt.Errorf("failed to remove game: %w", err)
	}
	return removed, nil
}

func (s *service) ListGames(ctx context.Context, userID int64) ([]domain.Game, error) {
	games, err := s.repo.ListGames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (s *service) CommonGames(ctx context.Context, userA, userB int64) ([]domain.Game, error) {
	games, err := s.repo.CommonGames(ctx, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to get common games: %w", err)
	}
	return games, nil
}

func (s *service) UsersForGame(ctx context.Context, name string) ([]int64, error) {
	game, err := validateGameName(name)
	if err != nil {
		return nil, err
	}
	ids, err := s.repo.UsersForGame(ctx, game.Normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for game: %w", err)
	}
	return ids, nil
}

func (s *service) AllGameNames(ctx context.Context) ([]string, error) {
	names, err := s.repo.AllGameNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list game names: %w", err)
	}
	return names, nil
}

func (s *service) SetTimezone(ctx context.Context, userID int64, tz string) error {
	if userID <= 0 {
		return domain.ErrInvalidUserID
	}
	if !domain.ValidateTimezone(tz) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTimezone, tz)
	}
	if err := s.repo.SetTimezone(ctx, userID, tz); err != nil {
		return fmt.Errorf("failed to set timezone: %w", err)
	}
	logger.FromContext(ctx).Debug("Timezone set", "user_id", userID, "timezone", tz)
	return nil
}

func (s *service) GetTimezone(ctx context.Context, userID int64) (*string, error) {
	tz, err := s.repo.GetTimezone(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get timezone: %w", err)
	}
	return tz, nil
}

func (s *service) Snooze(ctx context.Context, userID int64, nowUTC time.Time, d time.Duration) (time.Time, error) {
	if userID <= 0 {
		return time.Time{}, domain.ErrInvalidUserID
	}
	if d <= 0 {
		return time.Time{}, domain.ErrInvalidDuration
	}
	until := nowUTC.Add(d)
	if err := s.repo.SetSnooze(ctx, userID, until); err != nil {
		return time.Time{}, fmt.Errorf("failed to set snooze: %w", err)
	}
	logger.FromContext(ctx).Debug("User snoozed", "user_id", userID, "until", until)
	return until, nil
}

func (s *service) Unsnooze(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return domain.ErrInvalidUserID
	}
	if err := s.repo.ClearSnooze(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear snooze: %w", err)
	}
	return nil
}

func (s *service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *service) CountUsers(ctx context.Context) (int, error) {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
