package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// ScheduleRepository implements the schedule repository for PostgreSQL
type ScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// MergeInterval inserts an interval into a (user, day) slot list, absorbing
// any stored interval it overlaps or touches. The read-merge-write runs in
// one transaction holding the user row lock; concurrent merges for the same
// user serialize on it, so the non-overlapping invariant holds. Locking day
// rows directly would not be enough: a concurrent insert is invisible to a
// blocked SELECT FOR UPDATE under read committed.
func (r *ScheduleRepository) MergeInterval(ctx context.Context, userID int64, day domain.Weekday, iv domain.Interval) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errMsgBeginTx, err)
	}
	defer SafeRollback(ctx, tx)

	if err := ensureUser(ctx, tx, userID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx,
		`SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE`, userID); err != nil {
		return fmt.Errorf("failed to lock user row: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT start_time, end_time FROM availability_slots
		WHERE user_id = $1 AND day = $2
		ORDER BY start_time`, userID, day)
	if err != nil {
		return fmt.Errorf("failed to read day slots: %w", err)
	}
	existing, err := scanIntervals(rows)
	if err != nil {
		return err
	}

	merged := domain.MergeInsert(existing, iv)

	if _, err := tx.Exec(ctx,
		`DELETE FROM availability_slots WHERE user_id = $1 AND day = $2`, userID, day); err != nil {
		return fmt.Errorf("failed to clear day slots: %w", err)
	}
	for _, m := range merged {
		if _, err := tx.Exec(ctx, `
			INSERT INTO availability_slots (user_id, day, start_time, end_time)
			VALUES ($1, $2, $3, $4)`, userID, day, m.Start, m.End); err != nil {
			return fmt.Errorf("failed to insert slot: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *ScheduleRepository) ClearDay(ctx context.Context, userID int64, day domain.Weekday) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM availability_slots WHERE user_id = $1 AND day = $2`, userID, day); err != nil {
		return fmt.Errorf("failed to clear day: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) GetWeek(ctx context.Context, userID int64) (domain.WeeklySchedule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT day, start_time, end_time FROM availability_slots
		WHERE user_id = $1
		ORDER BY day, start_time`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly schedule: %w", err)
	}
	defer rows.Close()

	week := domain.EmptyWeeklySchedule()
	for rows.Next() {
		var (
			day domain.Weekday
			iv  domain.Interval
		)
		if err := rows.Scan(&day, &iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		week[day] = append(week[day], iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read slots: %w", err)
	}
	return week, nil
}

func (r *ScheduleRepository) GetDay(ctx context.Context, userID int64, day domain.Weekday) ([]domain.Interval, error) {
	rows, err := r.db.Query(ctx, `
		SELECT start_time, end_time FROM availability_slots
		WHERE user_id = $1 AND day = $2
		ORDER BY start_time`, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get day: %w", err)
	}
	return scanIntervals(rows)
}

func (r *ScheduleRepository) GetTimezone(ctx context.Context, userID int64) (*string, error) {
	var tz pgtype.Text
	err := r.db.QueryRow(ctx, `SELECT timezone FROM users WHERE user_id = $1`, userID).Scan(&tz)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timezone: %w", err)
	}
	return textToPtr(tz), nil
}

func scanIntervals(rows pgx.Rows) ([]domain.Interval, error) {
	defer rows.Close()
	var slots []domain.Interval
	for rows.Next() {
		var iv domain.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("failed to scan interval: %w", err)
		}
		slots = append(slots, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read intervals: %w", err)
	}
	return slots, nil
}
