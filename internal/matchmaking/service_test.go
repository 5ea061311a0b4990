package matchmaking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hourglass-gg/hourglass/internal/domain"
	"github.com/hourglass-gg/hourglass/internal/profile"
	"github.com/hourglass-gg/hourglass/internal/schedule"
)

const (
	invoker int64 = 1
	ready   int64 = 2
	offline int64 = 3
)

// Thu 2026-02-19 20:00 US/Eastern.
var thuEveningET = time.Date(2026, 2, 20, 1, 0, 0, 0, time.UTC)

type fixture struct {
	svc       Service
	profiles  profile.Service
	schedules schedule.Service
	schedRepo *schedule.FakeRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	profileRepo := profile.NewFakeRepository()
	schedRepo := schedule.NewFakeRepository()
	profiles := profile.NewService(profileRepo)
	schedules := schedule.NewService(schedRepo)
	return &fixture{
		svc:       NewService(profiles, schedules),
		profiles:  profiles,
		schedules: schedules,
		schedRepo: schedRepo,
	}
}

// seedUser gives a user a timezone in both stores plus a game list.
func (f *fixture) seedUser(t *testing.T, userID int64, tz string, games ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.profiles.SetTimezone(ctx, userID, tz))
	f.schedRepo.SetTimezone(userID, tz)
	for _, g := range games {
		_, err := f.profiles.AddGame(ctx, userID, g)
		require.NoError(t, err)
	}
}

func TestFindReadyPlayers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, invoker, "US/Eastern", "Helldivers 2", "Chess")
	f.seedUser(t, ready, "US/Eastern", "helldivers2", "Factorio")
	f.seedUser(t, offline, "US/Eastern", "Helldivers 2")

	// Only the second user is inside a window at Thu 20:00 ET.
	require.NoError(t, f.schedules.AddInterval(ctx, ready, domain.Thursday, "18:00", "22:00"))
	require.NoError(t, f.schedules.AddInterval(ctx, offline, domain.Thursday, "08:00", "10:00"))

	players, err := f.svc.FindReadyPlayers(ctx, invoker, thuEveningET, "")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, ready, players[0].UserID)
	// Spelled per the invoker.
	assert.Equal(t, []string{"Helldivers 2"}, players[0].SharedGames)
}

func TestFindReadyPlayersNoSharedGames(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, invoker, "US/Eastern", "Chess")
	f.seedUser(t, ready, "US/Eastern", "Factorio")
	require.NoError(t, f.schedules.AddInterval(ctx, ready, domain.Thursday, "18:00", "22:00"))

	players, err := f.svc.FindReadyPlayers(ctx, invoker, thuEveningET, "")
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestFindReadyPlayersGameFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, invoker, "US/Eastern", "Helldivers 2", "Chess")
	f.seedUser(t, ready, "US/Eastern", "Helldivers 2", "Chess")
	require.NoError(t, f.schedules.AddInterval(ctx, ready, domain.Thursday, "18:00", "22:00"))

	players, err := f.svc.FindReadyPlayers(ctx, invoker, thuEveningET, "  CHESS ")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, []string{"Chess"}, players[0].SharedGames)

	players, err = f.svc.FindReadyPlayers(ctx, invoker, thuEveningET, "Factorio")
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestFindReadyPlayersSkipsSnoozed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, invoker, "US/Eastern", "Chess")
	f.seedUser(t, ready, "US/Eastern", "Chess")
	require.NoError(t, f.schedules.AddInterval(ctx, ready, domain.Thursday, "18:00", "22:00"))

	_, err := f.profiles.Snooze(ctx, ready, thuEveningET, time.Hour)
	require.NoError(t, err)

	players, err := f.svc.FindReadyPlayers(ctx, invoker, thuEveningET, "")
	require.NoError(t, err)
	assert.Empty(t, players)

	// Expired snooze no longer hides the user. Thu 21:30 ET keeps the
	// query inside the 18:00-22:00 window.
	players, err = f.svc.FindReadyPlayers(ctx, invoker, thuEveningET.Add(90*time.Minute), "")
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, ready, players[0].UserID)
}

func TestFindReadyPlayersSkipsInvokerAndNoTimezone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, invoker, "US/Eastern", "Chess")
	require.NoError(t, f.schedules.AddInterval(ctx, invoker, domain.Thursday, "18:00", "22:00"))

	// A user with games but no timezone is never a candidate.
	_, err := f.profiles.AddGame(ctx, ready, "Chess")
	require.NoError(t, err)
	require.NoError(t, f.schedules.AddInterval(ctx, ready, domain.Thursday, "18:00", "22:00"))

	players, err := f.svc.FindReadyPlayers(ctx, invoker, thuEveningET, "")
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestFindReadyPlayersSortedByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, invoker, "US/Eastern", "Chess")
	for _, id := range []int64{40, 20, 30} {
		f.seedUser(t, id, "US/Eastern", "Chess")
		require.NoError(t, f.schedules.AddInterval(ctx, id, domain.Thursday, "18:00", "22:00"))
	}

	players, err := f.svc.FindReadyPlayers(ctx, invoker, thuEveningET, "")
	require.NoError(t, err)
	require.Len(t, players, 3)
	assert.Equal(t, int64(20), players[0].UserID)
	assert.Equal(t, int64(30), players[1].UserID)
	assert.Equal(t, int64(40), players[2].UserID)
}

func TestFindReadyPlayersInvalidInvoker(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.FindReadyPlayers(context.Background(), 0, thuEveningET, "")
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}

func TestNextAvailableFor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, ready, "US/Eastern")
	require.NoError(t, f.schedules.AddInterval(ctx, ready, domain.Thursday, "18:00", "22:00"))

	slot, err := f.svc.NextAvailableFor(ctx, ready, thuEveningET)
	require.NoError(t, err)
	require.NotNil(t, slot)
	assert.Equal(t, domain.Thursday, slot.Day)
	assert.True(t, slot.IsNow)

	slot, err = f.svc.NextAvailableFor(ctx, offline, thuEveningET)
	require.NoError(t, err)
	assert.Nil(t, slot)

	_, err = f.svc.NextAvailableFor(ctx, -1, thuEveningET)
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}
