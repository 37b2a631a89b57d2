package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/kurihiro0119/github-org-pages/internal/domain"
	apperrors "github.com/kurihiro0119/github-org-pages/internal/errors"
	"github.com/kurihiro0119/github-org-pages/internal/storage"
)

// postgresStorage implements the Storage interface for PostgreSQL
type postgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a new PostgreSQL storage instance
func NewPostgresStorage(connStr string) (storage.Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &postgresStorage{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate runs database migrations
func (s *postgresStorage) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		org TEXT NOT NULL,
		count INTEGER NOT NULL,
		index_path TEXT NOT NULL,
		summary JSONB NOT NULL,
		generated_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_org_generated_at ON runs(org, generated_at);

	CREATE TABLE IF NOT EXISTS run_repositories (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		url TEXT NOT NULL,
		repo_url TEXT NOT NULL,
		topics JSONB NOT NULL,
		stars INTEGER NOT NULL,
		has_pages BOOLEAN NOT NULL,
		last_updated DATE NOT NULL,
		language TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveRun stores a run and its repositories in one transaction
func (s *postgresStorage) SaveRun(ctx context.Context, run *domain.Run, repos []*domain.Repository) error {
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, org, count, index_path, summary, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID, run.Org, run.Count, run.IndexPath, string(summary), run.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_repositories
			(run_id, position, name, description, url, repo_url, topics, stars, has_pages, last_updated, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, repo := range repos {
		topics, err := json.Marshal(repo.Topics)
		if err != nil {
			return fmt.Errorf("failed to encode topics of %s: %w", repo.Name, err)
		}
		_, err = stmt.ExecContext(ctx, run.ID, i, repo.Name, repo.Description, repo.URL, repo.RepoURL,
			string(topics), repo.Stars, repo.HasPages, repo.LastUpdated, repo.Language)
		if err != nil {
			return fmt.Errorf("failed to insert repository %s: %w", repo.Name, err)
		}
	}

	return tx.Commit()
}

// GetRuns returns the latest runs of an organization
func (s *postgresStorage) GetRuns(ctx context.Context, org string, limit int) ([]*domain.Run, error) {
	var limitArg any // NULL means no limit
	if limit > 0 {
		limitArg = limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, org, count, index_path, summary, generated_at
		FROM runs
		WHERE org = $1
		ORDER BY generated_at DESC
		LIMIT $2
	`, org, limitArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a single run
func (s *postgresStorage) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, org, count, index_path, summary, generated_at
		FROM runs
		WHERE id = $1
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("run " + id)
	}
	return run, err
}

// GetRunRepositories returns the repositories of a run in rendered order
func (s *postgresStorage) GetRunRepositories(ctx context.Context, runID string) ([]*domain.Repository, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, description, url, repo_url, topics, stars, has_pages,
			to_char(last_updated, 'YYYY-MM-DD'), language
		FROM run_repositories
		WHERE run_id = $1
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	repos := []*domain.Repository{}
	for rows.Next() {
		var repo domain.Repository
		var topics []byte
		if err := rows.Scan(&repo.Name, &repo.Description, &repo.URL, &repo.RepoURL, &topics,
			&repo.Stars, &repo.HasPages, &repo.LastUpdated, &repo.Language); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(topics, &repo.Topics); err != nil {
			return nil, fmt.Errorf("failed to decode topics of %s: %w", repo.Name, err)
		}
		repos = append(repos, &repo)
	}
	return repos, rows.Err()
}

// Close closes the database connection
func (s *postgresStorage) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.Run, error) {
	var run domain.Run
	var summary []byte
	if err := row.Scan(&run.ID, &run.Org, &run.Count, &run.IndexPath, &summary, &run.GeneratedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(summary, &run.Summary); err != nil {
		return nil, fmt.Errorf("failed to decode summary of run %s: %w", run.ID, err)
	}
	return &run, nil
}
