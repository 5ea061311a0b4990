package repository

import (
	"context"
	"time"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// Profile defines the interface for user profile persistence: timezone,
// game list and snooze state. Users are created implicitly on first
// mutation; lookups for unknown users return empty results, not errors.
type Profile interface {
	// UpsertGame inserts a game entry or, when the normalized key already
	// exists for the user, replaces the stored display spelling while
	// keeping the entry's original insertion position.
	UpsertGame(ctx context.Context, userID int64, game domain.Game) error

	// RemoveGame deletes the entry matching the normalized key and reports
	// whether a removal occurred.
	RemoveGame(ctx context.Context, userID int64, normalized string) (bool, error)

	// ListGames returns the user's games in insertion order.
	ListGames(ctx context.Context, userID int64) ([]domain.Game, error)

	// CommonGames returns the intersection of two users' game sets by
	// normalized key, ordered and spelled per userA.
	CommonGames(ctx context.Context, userA, userB int64) ([]domain.Game, error)

	// UsersForGame returns the ids of all users whose set contains the
	// normalized key, ascending.
	UsersForGame(ctx context.Context, normalized string) ([]int64, error)

	// AllGameNames returns one display name per distinct normalized key
	// across all users (first-seen spelling), sorted lexicographically.
	AllGameNames(ctx context.Context) ([]string, error)

	SetTimezone(ctx context.Context, userID int64, tz string) error
	GetTimezone(ctx context.Context, userID int64) (*string, error)

	SetSnooze(ctx context.Context, userID int64, until time.Time) error
	ClearSnooze(ctx context.Context, userID int64) error

	// ListUsers returns every known user (id, timezone, snooze), ascending
	// by id. Matchmaking's candidate scan.
	ListUsers(ctx context.Context) ([]domain.User, error)

	CountUsers(ctx context.Context) (int, error)
}
