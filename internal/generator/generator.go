// Package generator runs the fetch, render and write pipeline for one organization.
package generator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kurihiro0119/github-org-pages/internal/aggregator"
	"github.com/kurihiro0119/github-org-pages/internal/collector"
	"github.com/kurihiro0119/github-org-pages/internal/config"
	"github.com/kurihiro0119/github-org-pages/internal/domain"
	"github.com/kurihiro0119/github-org-pages/internal/logging"
	"github.com/kurihiro0119/github-org-pages/internal/render"
	"github.com/kurihiro0119/github-org-pages/internal/site"
	"github.com/kurihiro0119/github-org-pages/internal/storage"
)

// UnauthenticatedWarning is printed when no GitHub token is configured
const UnauthenticatedWarning = "Warning: No GH_TOKEN provided. Using unauthenticated client with limited rate limits."

// Result describes a completed generation
type Result struct {
	Repositories      []*domain.Repository
	Content           string
	GeneratedAt       time.Time
	TemplateWritten   bool
	SiteConfigWritten bool
	RunID             string // empty unless the run was archived
}

// Generator builds the index page of an organization
type Generator struct {
	cfg       *config.Config
	collector collector.Collector
	store     storage.Storage
	out       io.Writer
	warn      io.Writer
	now       func() time.Time
	logger    *zerolog.Logger
}

// New creates a generator. Progress and warnings are printed to out.
func New(cfg *config.Config, coll collector.Collector, out io.Writer) *Generator {
	return &Generator{
		cfg:       cfg,
		collector: coll,
		out:       out,
		warn:      out,
		now:       time.Now,
		logger:    logging.Default(),
	}
}

// WithArchive makes the generator record each successful run in store
func (g *Generator) WithArchive(store storage.Storage) *Generator {
	g.store = store
	return g
}

// WithWarnings sends warnings to w instead of the progress writer
func (g *Generator) WithWarnings(w io.Writer) *Generator {
	g.warn = w
	return g
}

// WithClock overrides the time source used for the generation timestamp
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Fetch lists the organization's repositories, warning first when unauthenticated
func (g *Generator) Fetch(ctx context.Context) ([]*domain.Repository, error) {
	if !g.cfg.Authenticated() {
		fmt.Fprintln(g.warn, UnauthenticatedWarning)
	}

	repos, err := g.collector.ListPublicRepositories(ctx, g.cfg.Org)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	return repos, nil
}

// Run fetches, renders and writes the index page.
// Nothing is written unless fetching and rendering both succeed.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	repos, err := g.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	generatedAt := g.now()
	content, templateFound, err := g.render(repos, generatedAt)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Repositories: repos,
		Content:      content,
		GeneratedAt:  generatedAt,
	}

	if g.cfg.Bootstrap && !templateFound {
		result.TemplateWritten, err = site.EnsureTemplate(g.cfg.TemplatePath, render.DefaultTemplate)
		if err != nil {
			return nil, err
		}
		if result.TemplateWritten {
			g.logger.Info().Str("path", g.cfg.TemplatePath).Msg("wrote default template")
		}
	}

	if err := site.WriteIndex(g.cfg.IndexPath, content); err != nil {
		return nil, err
	}

	if g.cfg.Bootstrap {
		result.SiteConfigWritten, err = site.EnsureSiteConfig(g.cfg.SiteConfigPath, domain.DefaultSiteConfig(g.cfg.Org))
		if err != nil {
			return nil, err
		}
		if result.SiteConfigWritten {
			g.logger.Info().Str("path", g.cfg.SiteConfigPath).Msg("wrote default site config")
		}
	}

	if g.store != nil {
		result.RunID = g.archive(ctx, result)
	}

	return result, nil
}

func (g *Generator) render(repos []*domain.Repository, generatedAt time.Time) (content string, templateFound bool, err error) {
	stamp := ""
	if g.cfg.IncludeTimestamp {
		stamp = generatedAt.Format(domain.GeneratedDateLayout)
	}
	page := domain.NewPageData(g.cfg.Org, stamp, repos)

	text, templateFound, err := render.LoadTemplate(g.cfg.TemplatePath)
	if err != nil {
		return "", false, err
	}
	if g.cfg.Plain {
		return render.RenderPlain(page), templateFound, nil
	}

	content, err = render.Render(text, page)
	if err != nil {
		return "", false, err
	}
	return content, templateFound, nil
}

// archive stores the run; failures are reported but do not fail the generation
func (g *Generator) archive(ctx context.Context, result *Result) string {
	run := &domain.Run{
		ID:          uuid.New().String(),
		Org:         g.cfg.Org,
		Count:       len(result.Repositories),
		IndexPath:   g.cfg.IndexPath,
		Summary:     aggregator.Summarize(result.Repositories, aggregator.DefaultTopTopics),
		GeneratedAt: result.GeneratedAt,
	}

	if err := g.store.SaveRun(ctx, run, result.Repositories); err != nil {
		fmt.Fprintf(g.warn, "Warning: failed to archive run: %v\n", err)
		return ""
	}
	g.logger.Debug().Str("run_id", run.ID).Int("count", run.Count).Msg("archived run")
	return run.ID
}
