package storage

import (
	"context"

	"github.com/kurihiro0119/github-org-pages/internal/domain"
)

// Storage archives generation runs.
// Archived data is only ever read back for reporting, never for rendering.
type Storage interface {
	// SaveRun stores a run together with the repositories it rendered, in order
	SaveRun(ctx context.Context, run *domain.Run, repos []*domain.Repository) error

	// GetRuns returns the latest runs of an organization, newest first
	GetRuns(ctx context.Context, org string, limit int) ([]*domain.Run, error)

	// GetRun returns a single run
	GetRun(ctx context.Context, id string) (*domain.Run, error)

	// GetRunRepositories returns the repositories of a run in rendered order
	GetRunRepositories(ctx context.Context, runID string) ([]*domain.Repository, error)

	// Migration
	Migrate(ctx context.Context) error

	// Connection management
	Close() error
}
