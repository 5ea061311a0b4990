package repository

import (
	"context"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// Schedule defines the interface for weekly availability persistence.
type Schedule interface {
	// MergeInterval inserts a normal (non-overnight) interval into the
	// user's day, absorbing overlapping or touching intervals, as one
	// atomic unit. The day's set stays pairwise non-overlapping,
	// non-adjacent and start-sorted. Creates the user row if absent.
	MergeInterval(ctx context.Context, userID int64, day domain.Weekday, iv domain.Interval) error

	// ClearDay removes all intervals for the (user, day). Idempotent.
	ClearDay(ctx context.Context, userID int64, day domain.Weekday) error

	// GetWeek returns a full 7-day schedule copy, all keys present,
	// intervals start-sorted.
	GetWeek(ctx context.Context, userID int64) (domain.WeeklySchedule, error)

	// GetDay returns the ordered interval list for one (user, day).
	GetDay(ctx context.Context, userID int64, day domain.Weekday) ([]domain.Interval, error)

	// GetTimezone returns the user's zone name, or nil when unset/unknown.
	GetTimezone(ctx context.Context, userID int64) (*string, error)
}
