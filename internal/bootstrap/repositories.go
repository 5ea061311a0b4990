package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hourglass-gg/hourglass/internal/database/postgres"
	"github.com/hourglass-gg/hourglass/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// Centralizing construction keeps the dependency wiring in one place.
type Repositories struct {
	Profile  repository.Profile
	Schedule repository.Schedule
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Profile:  postgres.NewProfileRepository(dbPool),
		Schedule: postgres.NewScheduleRepository(dbPool),
	}
}
