package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hourglass-gg/hourglass/internal/domain"
)

// ProfileRepository implements the profile repository for PostgreSQL
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ensureUser creates the user row if it doesn't exist yet. Mutations create
// users implicitly; reads never do.
func ensureUser(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `INSERT INTO users (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure user: %w", err)
	}
	return nil
}

func (r *ProfileRepository) UpsertGame(ctx context.Context, userID int64, game domain.Game) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errMsgBeginTx, err)
	}
	defer SafeRollback(ctx, tx)

	if err := ensureUser(ctx, tx, userID); err != nil {
		return err
	}

	// game_id is the insertion-order key; the conflict path updates the
	// spelling without minting a new id, so position is preserved.
	query := `
		INSERT INTO games (user_id, name, normalized)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, normalized) DO UPDATE SET name = EXCLUDED.name
	`
	if _, err := tx.Exec(ctx, query, userID, game.Name, game.Normalized); err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *ProfileRepository) RemoveGame(ctx context.Context, userID int64, normalized string) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM games WHERE user_id = $1 AND normalized = $2`, userID, normalized)
	if err != nil {
		return false, fmt.Errorf("failed to remove game: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ProfileRepository) ListGames(ctx context.Context, userID int64) ([]domain.Game, error) {
	rows, err := r.db.Query(ctx,
		`SELECT name, normalized FROM games WHERE user_id = $1 ORDER BY game_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()
	return scanGames(rows)
}

func (r *ProfileRepository) CommonGames(ctx context.Context, userA, userB int64) ([]domain.Game, error) {
	// Ordered and spelled per userA.
	query := `
		SELECT a.name, a.normalized
		FROM games a
		JOIN games b ON b.normalized = a.normalized AND b.user_id = $2
		WHERE a.user_id = $1
		ORDER BY a.game_id
	`
	rows, err := r.db.Query(ctx, query, userA, userB)
	if err != nil {
		return nil, fmt.Errorf("failed to get common games: %w", err)
	}
	defer rows.Close()
	return scanGames(rows)
}

func scanGames(rows pgx.Rows) ([]domain.Game, error) {
	var games []domain.Game
	for rows.Next() {
		var g domain.Game
		if err := rows.Scan(&g.Name, &g.Normalized); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read games: %w", err)
	}
	return games, nil
}

func (r *ProfileRepository) UsersForGame(ctx context.Context, normalized string) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT user_id FROM games WHERE normalized = $1 ORDER BY user_id`, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to get users for game: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user ids: %w", err)
	}
	return ids, nil
}

func (r *ProfileRepository) AllGameNames(ctx context.Context) ([]string, error) {
	// One representative spelling per key (lowest game_id, i.e. first seen),
	// sorted by display name.
	query := `
		SELECT name FROM (
			SELECT DISTINCT ON (normalized) name
			FROM games
			ORDER BY normalized, game_id
		) t
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list game names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan game name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game names: %w", err)
	}
	return names, nil
}

func (r *ProfileRepository) SetTimezone(ctx context.Context, userID int64, tz string) error {
	query := `
		INSERT INTO users (user_id, timezone)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET timezone = EXCLUDED.timezone
	`
	if _, err := r.db.Exec(ctx, query, userID, tz); err != nil {
		return fmt.Errorf("failed to set timezone: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetTimezone(ctx context.Context, userID int64) (*string, error) {
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

func (r *ProfileRepository) SetSnooze(ctx context.Context, userID int64, until time.Time) error {
	query := `
		INSERT INTO users (user_id, snoozed_until)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET snoozed_until = EXCLUDED.snoozed_until
	`
	if _, err := r.db.Exec(ctx, query, userID, until); err != nil {
		return fmt.Errorf("failed to set snooze: %w", err)
	}
	return nil
}

func (r *ProfileRepository) ClearSnooze(ctx context.Context, userID int64) error {
	if _, err := r.db.Exec(ctx, `UPDATE users SET snoozed_until = NULL WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear snooze: %w", err)
	}
	return nil
}

func (r *ProfileRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, timezone, snoozed_until FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var (
			u       domain.User
			tz      pgtype.Text
			snoozed pgtype.Timestamptz
		)
		if err := rows.Scan(&u.ID, &tz, &snoozed); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Timezone = textToPtr(tz)
		u.SnoozedUntil = timestamptzToPtr(snoozed)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

func (r *ProfileRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
