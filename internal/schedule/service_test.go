package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

const testUser int64 = 123

func newTestService() (Service, *FakeRepository) {
	repo := NewFakeRepository()
	return NewService(repo), repo
}

func TestAddIntervalValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name    string
		day     domain.Weekday
		start   string
		end     string
		wantErr error
	}{
		{"invalid day", domain.Weekday("monday"), "10:00", "12:00", domain.ErrInvalidWeekday},
		{"bad start", domain.Monday, "25:00", "12:00", domain.ErrInvalidTime},
		{"bad end", domain.Monday, "10:00", "12:60", domain.ErrInvalidTime},
		{"equal bounds", domain.Monday, "10:00", "10:00", domain.ErrEmptyInterval},
		{"sentinel rejected as input", domain.Monday, "10:00", "24:00", domain.ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddInterval(ctx, testUser, tt.day, tt.start, tt.end)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	err := svc.AddInterval(ctx, 0, domain.Monday, "10:00", "12:00")
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)

	// Nothing was stored by any rejected mutation.
	week, err := svc.GetWeeklySchedule(ctx, testUser)
	require.NoError(t, err)
	for _, d := range domain.DayKeys {
		assert.Empty(t, week[d])
	}
}

func TestAddIntervalMergesOverlapping(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Monday, "10:00", "14:00"))
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Monday, "13:00", "18:00"))

	week, err := svc.GetWeeklySchedule(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{{Start: "10:00", End: "18:00"}}, week[domain.Monday])
}

func TestAddIntervalMergesAdjacent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Monday, "10:00", "14:00"))
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Monday, "14:00", "18:00"))

	week, err := svc.GetWeeklySchedule(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{{Start: "10:00", End: "18:00"}}, week[domain.Monday])
}

func TestAddIntervalKeepsDisjointSorted(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Friday, "20:00", "23:00"))
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Friday, "12:00", "14:00"))

	week, err := svc.GetWeeklySchedule(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{
		{Start: "12:00", End: "14:00"},
		{Start: "20:00", End: "23:00"},
	}, week[domain.Friday])
}

func TestAddIntervalOvernightSplitsAtMidnight(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Friday, "22:00", "02:00"))

	week, err := svc.GetWeeklySchedule(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{{Start: "22:00", End: domain.EndOfDay}}, week[domain.Friday])
	assert.Equal(t, []domain.Interval{{Start: "00:00", End: "02:00"}}, week[domain.Saturday])
}

func TestAddIntervalOvernightWrapsSundayToMonday(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Sunday, "23:00", "01:00"))

	week, err := svc.GetWeeklySchedule(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{{Start: "23:00", End: domain.EndOfDay}}, week[domain.Sunday])
	assert.Equal(t, []domain.Interval{{Start: "00:00", End: "01:00"}}, week[domain.Monday])
}

func TestAddIntervalOvernightEndingAtMidnight(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.SetTimezone(testUser, "UTC")
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Monday, "23:00", "00:00"))

	// The window closes at midnight: only the pre-midnight half is stored.
	week, err := svc.GetWeeklySchedule(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{{Start: "23:00", End: domain.EndOfDay}}, week[domain.Monday])
	assert.Empty(t, week[domain.Tuesday])

	// 2026-02-23 is a Monday.
	ok, err := svc.IsAvailableAt(ctx, testUser, time.Date(2026, 2, 23, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok, "inside the pre-midnight half")

	ok, err = svc.IsAvailableAt(ctx, testUser, time.Date(2026, 2, 24, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok, "tuesday must not inherit availability")
}

func TestZeroLengthRowIsInert(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.SetTimezone(testUser, "UTC")
	// Degenerate row as stored by older writers of midnight-ending windows.
	repo.SeedRaw(testUser, domain.Tuesday, domain.Interval{Start: "00:00", End: "00:00"})

	for _, instant := range []time.Time{
		time.Date(2026, 2, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 24, 15, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 25, 1, 0, 0, 0, time.UTC),
	} {
		ok, err := svc.IsAvailableAt(ctx, testUser, instant)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	slot, err := svc.NextAvailable(ctx, testUser, time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestClearDay(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Wednesday, "18:00", "22:00"))
	require.NoError(t, svc.ClearDay(ctx, testUser, domain.Wednesday))

	week, err := svc.GetWeeklySchedule(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, week[domain.Wednesday])

	// Clearing an already-empty day never fails.
	assert.NoError(t, svc.ClearDay(ctx, testUser, domain.Wednesday))
}

func TestGetWeeklyScheduleUnknownUser(t *testing.T) {
	svc, _ := newTestService()

	week, err := svc.GetWeeklySchedule(context.Background(), 999)
	require.NoError(t, err)
	assert.Len(t, week, 7)
	for _, d := range domain.DayKeys {
		assert.NotNil(t, week[d])
		assert.Empty(t, week[d])
	}
}

func TestIsAvailableAt(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.SetTimezone(testUser, "US/Eastern")
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Thursday, "18:00", "22:00"))

	// Thu 2026-02-19 20:00 ET == Fri 2026-02-20 01:00 UTC (EST, UTC-5).
	inWindow := time.Date(2026, 2, 20, 1, 0, 0, 0, time.UTC)
	ok, err := svc.IsAvailableAt(ctx, testUser, inWindow)
	require.NoError(t, err)
	assert.True(t, ok)

	// Thu 23:00 ET: window ended at 22:00.
	after := time.Date(2026, 2, 20, 4, 0, 0, 0, time.UTC)
	ok, err = svc.IsAvailableAt(ctx, testUser, after)
	require.NoError(t, err)
	assert.False(t, ok)

	// End bound is exclusive.
	atEnd := time.Date(2026, 2, 20, 3, 0, 0, 0, time.UTC) // Thu 22:00 ET
	ok, err = svc.IsAvailableAt(ctx, testUser, atEnd)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailableAtWithoutTimezone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Monday, "00:00", "23:59"))

	ok, err := svc.IsAvailableAt(ctx, testUser, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailableAtAcrossMidnightSplit(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.SetTimezone(testUser, "UTC")
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Friday, "22:00", "02:00"))

	// 2026-02-20 is a Friday.
	ok, err := svc.IsAvailableAt(ctx, testUser, time.Date(2026, 2, 20, 23, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok, "pre-midnight half")

	ok, err = svc.IsAvailableAt(ctx, testUser, time.Date(2026, 2, 21, 1, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok, "post-midnight half")

	ok, err = svc.IsAvailableAt(ctx, testUser, time.Date(2026, 2, 21, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailableAtLegacyOvernightMarker(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.SetTimezone(testUser, "UTC")
	// Raw overnight row written before the split representation existed.
	repo.SeedRaw(testUser, domain.Friday, domain.Interval{Start: "22:00", End: "02:00"})

	ok, err := svc.IsAvailableAt(ctx, testUser, time.Date(2026, 2, 20, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok, "active after start on the marker's own day")

	ok, err = svc.IsAvailableAt(ctx, testUser, time.Date(2026, 2, 21, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok, "active in the post-midnight tail the day after")

	ok, err = svc.IsAvailableAt(ctx, testUser, time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextAvailable(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.SetTimezone(testUser, "US/Eastern")
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Thursday, "18:00", "22:00"))

	// Thu 15:00 ET (20:00 UTC): slot hasn't started yet.
	slot, err := svc.NextAvailable(ctx, testUser, time.Date(2026, 2, 19, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, &domain.NextSlot{Day: domain.Thursday, Start: "18:00", End: "22:00", IsNow: false}, slot)

	// Thu 20:00 ET (Fri 01:00 UTC): slot is active.
	slot, err = svc.NextAvailable(ctx, testUser, time.Date(2026, 2, 20, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.True(t, slot.IsNow)
	assert.Equal(t, domain.Thursday, slot.Day)
}

func TestNextAvailableSkipsEndedSlot(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.SetTimezone(testUser, "US/Eastern")
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Thursday, "10:00", "12:00"))
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Friday, "18:00", "22:00"))

	// Thu 15:00 ET: thursday's slot already ended.
	slot, err := svc.NextAvailable(ctx, testUser, time.Date(2026, 2, 19, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, &domain.NextSlot{Day: domain.Friday, Start: "18:00", End: "22:00", IsNow: false}, slot)
}

func TestNextAvailableWrapsToNextWeek(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.SetTimezone(testUser, "UTC")
	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Thursday, "10:00", "12:00"))

	// Thu 15:00 UTC: the only slot ended today; next occurrence is in a week.
	slot, err := svc.NextAvailable(ctx, testUser, time.Date(2026, 2, 19, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, &domain.NextSlot{Day: domain.Thursday, Start: "10:00", End: "12:00", IsNow: false}, slot)
}

func TestNextAvailableNoTimezone(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.AddInterval(ctx, testUser, domain.Monday, "18:00", "22:00"))

	slot, err := svc.NextAvailable(ctx, testUser, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, slot)
}

func TestNextAvailableNoSlots(t *testing.T) {
	svc, repo := newTestService()
	repo.SetTimezone(testUser, "US/Eastern")

	slot, err := svc.NextAvailable(context.Background(), testUser, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, slot)
}
