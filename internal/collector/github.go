package collector

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v55/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/kurihiro0119/github-org-pages/internal/domain"
	apperrors "github.com/kurihiro0119/github-org-pages/internal/errors"
	"github.com/kurihiro0119/github-org-pages/internal/logging"
)

// Options configures a GitHub collector
type Options struct {
	// Token is the GitHub access token; empty means unauthenticated access
	Token string
	// BaseURL overrides the API endpoint (GitHub Enterprise, tests)
	BaseURL string
	// HTTPTimeout is the client timeout; zero leaves it unset
	HTTPTimeout time.Duration
	// MinDelay is the minimum gap between API calls
	MinDelay time.Duration
	Logger   *zerolog.Logger
}

// githubCollector implements Collector using GitHub API
type githubCollector struct {
	client      *github.Client
	rateLimiter RateLimiter
	logger      *zerolog.Logger
}

// NewGitHubCollector creates a new GitHub collector
func NewGitHubCollector(opts Options) (Collector, error) {
	var httpClient *http.Client
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	if opts.HTTPTimeout > 0 {
		httpClient.Timeout = opts.HTTPTimeout
	}

	client := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		client.BaseURL = u
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &githubCollector{
		client:      client,
		rateLimiter: NewRateLimiter(opts.MinDelay, logger),
		logger:      logger,
	}, nil
}

// ListPublicRepositories retrieves all public repositories for an organization
func (c *githubCollector) ListPublicRepositories(ctx context.Context, org string) ([]*domain.Repository, error) {
	siteRepo := domain.SiteRepoName(org)

	var allRepos []*domain.Repository
	for repo, err := range c.publicRepos(ctx, org) {
		if err != nil {
			return nil, apperrors.NewFetchError(fmt.Sprintf("failed to list repositories of %s", org), err)
		}
		if repo.GetName() == siteRepo || repo.GetPrivate() {
			continue
		}

		topics, err := c.getTopics(ctx, org, repo)
		if err != nil {
			return nil, apperrors.NewFetchError(fmt.Sprintf("failed to read topics of %s/%s", org, repo.GetName()), err)
		}

		allRepos = append(allRepos, NewRepository(org, repo, topics))
	}

	domain.SortByStars(allRepos)
	c.logger.Debug().Str("org", org).Int("count", len(allRepos)).Msg("listed public repositories")
	return allRepos, nil
}

// publicRepos yields every public repository of org, one page at a time.
// The sequence stops at the first error.
func (c *githubCollector) publicRepos(ctx context.Context, org string) iter.Seq2[*github.Repository, error] {
	return func(yield func(*github.Repository, error) bool) {
		opts := &github.RepositoryListByOrgOptions{
			Type:        "public",
			ListOptions: github.ListOptions{PerPage: 100},
		}

		for {
			if err := c.rateLimiter.Wait(ctx); err != nil {
				yield(nil, err)
				return
			}

			repos, resp, err := c.client.Repositories.ListByOrg(ctx, org, opts)
			if err != nil {
				yield(nil, err)
				return
			}

			c.updateRateLimitFromResponse(resp)
			c.logger.Debug().Str("org", org).Int("page", opts.Page).Int("repos", len(repos)).Msg("fetched repository page")

			for _, repo := range repos {
				if !yield(repo, nil) {
					return
				}
			}

			if resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

// getTopics retrieves the topic labels of a repository
func (c *githubCollector) getTopics(ctx context.Context, org string, repo *github.Repository) ([]string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	owner := repo.GetOwner().GetLogin()
	if owner == "" {
		owner = org
	}

	topics, resp, err := c.client.Repositories.ListAllTopics(ctx, owner, repo.GetName())
	if err != nil {
		return nil, err
	}
	c.updateRateLimitFromResponse(resp)

	return topics, nil
}

func (c *githubCollector) updateRateLimitFromResponse(resp *github.Response) {
	if resp != nil && resp.Rate.Limit > 0 {
		c.rateLimiter.UpdateLimit(resp.Rate.Remaining, resp.Rate.Reset.Time)
	}
}

// NewRepository flattens a GitHub repository into a record for the index page
func NewRepository(org string, repo *github.Repository, topics []string) *domain.Repository {
	description := repo.GetDescription()
	if description == "" {
		description = domain.DefaultDescription
	}

	language := repo.GetLanguage()
	if language == "" {
		language = domain.DefaultLanguage
	}

	hasPages := repo.GetHasPages()
	siteURL := repo.GetHTMLURL()
	if hasPages {
		siteURL = domain.PagesURL(org, repo.GetName())
	}

	if topics == nil {
		topics = []string{}
	}

	return &domain.Repository{
		Name:        repo.GetName(),
		Description: description,
		URL:         siteURL,
		RepoURL:     repo.GetHTMLURL(),
		Topics:      topics,
		Stars:       repo.GetStargazersCount(),
		HasPages:    hasPages,
		LastUpdated: repo.GetUpdatedAt().UTC().Format(domain.DateLayout),
		Language:    language,
	}
}
