package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/hourglass-gg/hourglass/internal/domain"
	"github.com/hourglass-gg/hourglass/internal/logger"
	"github.com/hourglass-gg/hourglass/internal/repository"
)

// Service defines the interface for weekly availability operations.
// All instants are supplied by the caller in UTC; the service never reads
// the system clock, which keeps every query deterministic under test.
type Service interface {
	// AddInterval records an availability window on a weekday in the
	// user's local time. Overnight windows (start >= end) are split at
	// midnight into two normal intervals before storage.
	AddInterval(ctx context.Context, userID int64, day domain.Weekday, start, end string) error

	// ClearDay removes every interval on the weekday. Idempotent.
	ClearDay(ctx context.Context, userID int64, day domain.Weekday) error

	// GetWeeklySchedule returns a 7-day copy of the user's schedule,
	// all day keys present.
	GetWeeklySchedule(ctx context.Context, userID int64) (domain.WeeklySchedule, error)

	// IsAvailableAt reports whether the UTC instant falls inside one of
	// the user's intervals, converted through the user's own timezone.
	// Users without a timezone are never available.
	IsAvailableAt(ctx context.Context, userID int64, nowUTC time.Time) (bool, error)

	// NextAvailable returns the user's first interval that has not yet
	// ended relative to nowUTC, scanning up to a full week ahead. Returns
	// nil when the user has no timezone or no intervals at all.
	NextAvailable(ctx context.Context, userID int64, nowUTC time.Time) (*domain.NextSlot, error)

	// FormatWeekly renders the deterministic weekly summary block shown
	// by the bot ("timezone: ..." plus one line per day).
	FormatWeekly(ctx context.Context, userID int64) (string, error)
}

type service struct {
	repo  repository.Schedule
	zones *zoneCache
}

// NewService creates a new schedule service.
func NewService(repo repository.Schedule) Service {
	return &service{
		repo:  repo,
		zones: newZoneCache(defaultZoneCacheSize, defaultZoneCacheTTL),
	}
}

func (s *service) AddInterval(ctx context.Context, userID int64, day domain.Weekday, start, end string) error {
	if userID <= 0 {
		return domain.ErrInvalidUserID
	}
	if !day.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidWeekday, day)
	}
	if !domain.ValidateTime(start) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTime, start)
	}
	if !domain.ValidateTime(end) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTime, end)
	}
	if start == end {
		return domain.ErrEmptyInterval
	}

	log := logger.FromContext(ctx)

	if start < end {
		if err := s.repo.MergeInterval(ctx, userID, day, domain.Interval{Start: start, End: end}); err != nil {
			return fmt.Errorf("failed to add interval: %w", err)
		}
		log.Debug("Interval added", "user_id", userID, "day", day, "start", start, "end", end)
		return nil
	}

	// Overnight: split at midnight into two normal intervals. A window
	// ending at exactly 00:00 closes at midnight, so the post-midnight
	// half would be empty and is not stored.
	if err := s.repo.MergeInterval(ctx, userID, day, domain.Interval{Start: start, End: domain.EndOfDay}); err != nil {
		return fmt.Errorf("failed to add pre-midnight interval: %w", err)
	}
	if end != "00:00" {
		if err := s.repo.MergeInterval(ctx, userID, day.Next(), domain.Interval{Start: "00:00", End: end}); err != nil {
			return fmt.Errorf("failed to add post-midnight interval: %w", err)
		}
	}
	log.Debug("Overnight interval split and added",
		"user_id", userID, "day", day, "start", start, "next_day", day.Next(), "end", end)
	return nil
}

func (s *service) ClearDay(ctx context.Context, userID int64, day domain.Weekday) error {
	if userID <= 0 {
		return domain.ErrInvalidUserID
	}
	if !day.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidWeekday, day)
	}
	if err := s.repo.ClearDay(ctx, userID, day); err != nil {
		return fmt.Errorf("failed to clear day: %w", err)
	}
	return nil
}

func (s *service) GetWeeklySchedule(ctx context.Context, userID int64) (domain.WeeklySchedule, error) {
	week, err := s.repo.GetWeek(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly schedule: %w", err)
	}
	return week, nil
}

// localize resolves the user's timezone and converts the UTC instant into
// the user's wall clock. Returns ok=false when no timezone is set.
func (s *service) localize(ctx context.Context, userID int64, nowUTC time.Time) (time.Time, bool, error) {
	tz, err := s.repo.GetTimezone(ctx, userID)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get timezone: %w", err)
	}
	if tz == nil || *tz == "" {
		return time.Time{}, false, nil
	}
	loc, err := s.zones.Load(*tz)
	if err != nil {
		// A zone name that stopped resolving (stale data, tzdb changes)
		// makes the user invisible rather than failing the whole query.
		logger.FromContext(ctx).Warn("Unresolvable timezone", "user_id", userID, "timezone", *tz)
		return time.Time{}, false, nil
	}
	return nowUTC.In(loc), true, nil
}

func (s *service) IsAvailableAt(ctx context.Context, userID int64, nowUTC time.Time) (bool, error) {
	local, ok, err := s.localize(ctx, userID, nowUTC)
	if err != nil || !ok {
		return false, err
	}

	today := domain.WeekdayOf(local)
	now := local.Format("15:04")

	slots, err := s.repo.GetDay(ctx, userID, today)
	if err != nil {
		return false, fmt.Errorf("failed to get day: %w", err)
	}
	for _, iv := range slots {
		if iv.Overnight() {
			// Legacy raw overnight marker: active from start until midnight.
			if now >= iv.Start {
				return true, nil
			}
			continue
		}
		if iv.Contains(now) {
			return true, nil
		}
	}

	// Post-midnight tail of a legacy overnight marker on yesterday.
	prev, err := s.repo.GetDay(ctx, userID, today.Prev())
	if err != nil {
		return false, fmt.Errorf("failed to get previous day: %w", err)
	}
	for _, iv := range prev {
		if iv.Overnight() && now < iv.End {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) NextAvailable(ctx context.Context, userID int64, nowUTC time.Time) (*domain.NextSlot, error) {
	local, ok, err := s.localize(ctx, userID, nowUTC)
	if err != nil || !ok {
		return nil, err
	}

	week, err := s.repo.GetWeek(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly schedule: %w", err)
	}

	today := domain.WeekdayOf(local)
	now := local.Format("15:04")

	// Offsets 0..7: offset 7 revisits the current weekday so an interval
	// that already ended today still surfaces as next week's occurrence.
	for offset := 0; offset <= 7; offset++ {
		day := domain.DayKeys[(today.Index()+offset)%7]
		for _, iv := range week[day] {
			// Legacy zero-length rows never represent real availability.
			if iv.Start == iv.End {
				continue
			}
			if offset == 0 && iv.End <= now {
				continue
			}
			return &domain.NextSlot{
				Day:   day,
				Start: iv.Start,
				End:   iv.End,
				IsNow: offset == 0 && iv.Contains(now),
			}, nil
		}
	}
	return nil, nil
}
