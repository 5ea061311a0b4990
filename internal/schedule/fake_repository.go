package schedule

import (
	"context"
	"sync"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Schedule for integration-style unit tests. It enforces the
// same merge invariant as the SQL implementation via domain.MergeInsert.
type FakeRepository struct {
	mu    sync.Mutex
	days  map[int64]map[domain.Weekday][]domain.Interval
	zones map[int64]string
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		days:  make(map[int64]map[domain.Weekday][]domain.Interval),
		zones: make(map[int64]string),
	}
}

// SetTimezone seeds a user's timezone. Test setup helper; the production
// write path lives on the profile repository.
func (f *FakeRepository) SetTimezone(userID int64, tz string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.zones[userID] = tz
}

// SeedRaw inserts an interval without merging, bypassing the write-path
// invariant. Used to model legacy rows (raw overnight markers).
func (f *FakeRepository) SeedRaw(userID int64, day domain.Weekday, iv domain.Interval) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userDays(userID)[day] = append(f.userDays(userID)[day], iv)
}

func (f *FakeRepository) userDays(userID int64) map[domain.Weekday][]domain.Interval {
	if f.days[userID] == nil {
		f.days[userID] = make(map[domain.Weekday][]domain.Interval)
	}
	return f.days[userID]
}

func (f *FakeRepository) MergeInterval(ctx context.Context, userID int64, day domain.Weekday, iv domain.Interval) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.userDays(userID)
	d[day] = domain.MergeInsert(d[day], iv)
	return nil
}

func (f *FakeRepository) ClearDay(ctx context.Context, userID int64, day domain.Weekday) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.days[userID]; ok {
		delete(d, day)
	}
	return nil
}

func (f *FakeRepository) GetWeek(ctx context.Context, userID int64) (domain.WeeklySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	week := domain.EmptyWeeklySchedule()
	for day, slots := range f.days[userID] {
		week[day] = append([]domain.Interval{}, slots...)
	}
	return week, nil
}

func (f *FakeRepository) GetDay(ctx context.Context, userID int64, day domain.Weekday) ([]domain.Interval, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Interval{}, f.days[userID][day]...), nil
}

func (f *FakeRepository) GetTimezone(ctx context.Context, userID int64) (*string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tz, ok := f.zones[userID]; ok && tz != "" {
		return &tz, nil
	}
	return nil, nil
}
