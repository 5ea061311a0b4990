package profile

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Profile for integration-style unit tests. It mirrors the SQL
// implementation's ordering rules: games keep insertion order per user,
// upserts keep the original position, user scans come back id-ascending.
type FakeRepository struct {
	mu    sync.Mutex
	users map[int64]*fakeUser
}

type fakeUser struct {
	games        []domain.Game
	timezone     *string
	snoozedUntil *time.Time
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{users: make(map[int64]*fakeUser)}
}

func (f *FakeRepository) user(userID int64) *fakeUser {
	if f.users[userID] == nil {
		f.users[userID] = &fakeUser{}
	}
	return f.users[userID]
}

func (f *FakeRepository) UpsertGame(ctx context.Context, userID int64, game domain.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.user(userID)
	for i, g := range u.games {
		if g.Normalized == game.Normalized {
			u.games[i].Name = game.Name
			return nil
		}
	}
	u.games = append(u.games, game)
	return nil
}

func (f *FakeRepository) RemoveGame(ctx context.Context, userID int64, normalized string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return false, nil
	}
	for i, g := range u.games {
		if g.Normalized == normalized {
			u.games = append(u.games[:i], u.games[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *FakeRepository) ListGames(ctx context.Context, userID int64) ([]domain.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, nil
	}
	return append([]domain.Game{}, u.games...), nil
}

func (f *FakeRepository) CommonGames(ctx context.Context, userA, userB int64) ([]domain.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ua, ub := f.users[userA], f.users[userB]
	if ua == nil || ub == nil {
		return nil, nil
	}
	keys := make(map[string]struct{}, len(ub.games))
	for _, g := range ub.games {
		keys[g.Normalized] = struct{}{}
	}
	var common []domain.Game
	for _, g := range ua.games {
		if _, ok := keys[g.Normalized]; ok {
			common = append(common, g)
		}
	}
	return common, nil
}

func (f *FakeRepository) UsersForGame(ctx context.Context, normalized string) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []int64
	for id, u := range f.users {
		for _, g := range u.games {
			if g.Normalized == normalized {
				ids = append(ids, id)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *FakeRepository) AllGameNames(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	seen := make(map[string]struct{})
	var names []string
	for _, id := range ids {
		for _, g := range f.users[id].games {
			if _, ok := seen[g.Normalized]; ok {
				continue
			}
			seen[g.Normalized] = struct{}{}
			names = append(names, g.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *FakeRepository) SetTimezone(ctx context.Context, userID int64, tz string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user(userID).timezone = &tz
	return nil
}

func (f *FakeRepository) GetTimezone(ctx context.Context, userID int64) (*string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok || u.timezone == nil || *u.timezone == "" {
		return nil, nil
	}
	tz := *u.timezone
	return &tz, nil
}

func (f *FakeRepository) SetSnooze(ctx context.Context, userID int64, until time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user(userID).snoozedUntil = &until
	return nil
}

func (f *FakeRepository) ClearSnooze(ctx context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[userID]; ok {
		u.snoozedUntil = nil
	}
	return nil
}

func (f *FakeRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		u := f.users[id]
		users = append(users, domain.User{ID: id, Timezone: u.timezone, SnoozedUntil: u.snoozedUntil})
	}
	return users, nil
}

func (f *FakeRepository) CountUsers(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users), nil
}
