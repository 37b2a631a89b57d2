package collector

import (
	"context"

	"github.com/kurihiro0119/github-org-pages/internal/domain"
)

// Collector defines the interface for collecting repository data from GitHub
type Collector interface {
	// ListPublicRepositories returns the public repositories of an organization,
	// excluding the organization's own site repository, sorted by stars descending.
	// Any failure aborts the whole listing.
	ListPublicRepositories(ctx context.Context, org string) ([]*domain.Repository, error)
}
