package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/kurihiro0119/github-org-pages/internal/aggregator"
	"github.com/kurihiro0119/github-org-pages/internal/collector"
	"github.com/kurihiro0119/github-org-pages/internal/config"
	"github.com/kurihiro0119/github-org-pages/internal/domain"
	"github.com/kurihiro0119/github-org-pages/internal/generator"
	"github.com/kurihiro0119/github-org-pages/internal/logging"
	"github.com/kurihiro0119/github-org-pages/internal/storage"
	"github.com/kurihiro0119/github-org-pages/internal/storage/postgres"
	"github.com/kurihiro0119/github-org-pages/internal/storage/sqlite"
	"github.com/kurihiro0119/github-org-pages/pkg/client"
)

// cliOptions holds flag values shared by the commands
type cliOptions struct {
	cfgFile     string
	outputJSON  bool
	plain       bool
	noBootstrap bool
	archive     bool
	remote      bool
	limit       int
	out         io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &cliOptions{out: out}

	rootCmd := &cobra.Command{
		Use:   "github-org-pages",
		Short: "GitHub organization pages generator",
		Long: `A CLI tool for generating the landing page of a GitHub organization's Pages site.

This tool lists the organization's public repositories, sorts them by stars
and renders them into index.md through a text template.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is environment and .env)")

	generateCmd := &cobra.Command{
		Use:   "generate [org]",
		Short: "Generate index.md",
		Long:  `Fetch the organization's public repositories and write index.md, bootstrapping the template and _config.yml on first run.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, opts)
		},
	}
	generateCmd.Flags().BoolVar(&opts.plain, "plain", false, "build the page without the template engine")
	generateCmd.Flags().BoolVar(&opts.noBootstrap, "no-bootstrap", false, "do not create the default template and _config.yml")
	generateCmd.Flags().BoolVar(&opts.archive, "archive", false, "record the run in the archive database")

	listCmd := &cobra.Command{
		Use:   "list [org]",
		Short: "List repositories",
		Long:  `Fetch and display the organization's public repositories in page order without writing any files.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, opts)
		},
	}
	listCmd.Flags().BoolVar(&opts.outputJSON, "json", false, "output in JSON format")

	historyCmd := &cobra.Command{
		Use:   "history [org]",
		Short: "Show archived runs",
		Long:  `Display archived generation runs from the archive database or from a preview server.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args, opts)
		},
	}
	historyCmd.Flags().BoolVar(&opts.outputJSON, "json", false, "output in JSON format")
	historyCmd.Flags().BoolVar(&opts.remote, "remote", false, "read runs from the preview server at API_ENDPOINT")
	historyCmd.Flags().IntVar(&opts.limit, "limit", 20, "maximum number of runs to show")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	return rootCmd
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code
func execute(args []string, out, errOut io.Writer) int {
	rootCmd := newRootCmd(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(cmd *cobra.Command, args []string, opts *cliOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 1 {
		cfg.Org = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("plain") {
		cfg.Plain = opts.plain
	}
	if flags.Changed("no-bootstrap") {
		cfg.Bootstrap = !opts.noBootstrap
	}
	if flags.Changed("archive") {
		cfg.Archive = opts.archive
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logging.Configure(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func getStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageType {
	case "postgres":
		return postgres.NewPostgresStorage(cfg.PostgresURL)
	default:
		return sqlite.NewSQLiteStorage(cfg.SQLitePath)
	}
}

// archiveExists reports whether there is an archive to read runs from.
// A postgres archive is always assumed to exist.
func archiveExists(cfg *config.Config) bool {
	if cfg.StorageType == "postgres" {
		return true
	}
	_, err := os.Stat(cfg.SQLitePath)
	return err == nil
}

func newGenerator(cfg *config.Config, out io.Writer) (*generator.Generator, error) {
	coll, err := collector.NewGitHubCollector(collector.Options{
		Token:       cfg.GitHubToken,
		BaseURL:     cfg.GitHubAPI,
		HTTPTimeout: cfg.HTTPTimeout,
		MinDelay:    cfg.MinDelay,
		Logger:      logging.Default(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	return generator.New(cfg, coll, out), nil
}

func runGenerate(cmd *cobra.Command, args []string, opts *cliOptions) error {
	cfg, err := loadConfig(cmd, args, opts)
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg, opts.out)
	if err != nil {
		return err
	}

	if cfg.Archive {
		store, err := getStorage(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer store.Close()
		gen.WithArchive(store)
	}

	fmt.Fprintf(opts.out, "Generating %s for organization: %s\n", cfg.IndexPath, cfg.Org)
	result, err := gen.Run(context.Background())
	if err != nil {
		return err
	}

	if result.TemplateWritten {
		fmt.Fprintf(opts.out, "Created default template %s\n", cfg.TemplatePath)
	}
	if result.SiteConfigWritten {
		fmt.Fprintf(opts.out, "Created default site config %s\n", cfg.SiteConfigPath)
	}
	if result.RunID != "" {
		fmt.Fprintf(opts.out, "Archived run %s\n", result.RunID)
	}
	fmt.Fprintf(opts.out, "Successfully generated content with %d repositories\n", len(result.Repositories))
	return nil
}

func runList(cmd *cobra.Command, args []string, opts *cliOptions) error {
	cfg, err := loadConfig(cmd, args, opts)
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg, opts.out)
	if err != nil {
		return err
	}

	// stdout carries only the listing so --json stays parseable
	repos, err := gen.WithWarnings(cmd.ErrOrStderr()).Fetch(context.Background())
	if err != nil {
		return err
	}

	if opts.outputJSON {
		return writeJSON(opts.out, repos)
	}

	fmt.Fprintf(opts.out, "\nRepositories: %s\n\n", cfg.Org)

	table := tablewriter.NewWriter(opts.out)
	table.SetHeader([]string{"Repository", "Stars", "Language", "Last Updated", "Pages", "Topics"})
	for _, r := range repos {
		pages := ""
		if r.HasPages {
			pages = "yes"
		}
		table.Append([]string{
			r.Name,
			strconv.Itoa(r.Stars),
			r.Language,
			r.LastUpdated,
			pages,
			strings.Join(r.Topics, ", "),
		})
	}
	table.Render()

	summary := aggregator.Summarize(repos, aggregator.DefaultTopTopics)
	fmt.Fprintf(opts.out, "\n%d repositories, %d stars, %d with project sites\n", summary.Count, summary.TotalStars, summary.PagesCount)
	return nil
}

func runHistory(cmd *cobra.Command, args []string, opts *cliOptions) error {
	cfg, err := loadConfig(cmd, args, opts)
	if err != nil {
		return err
	}
	ctx := context.Background()

	runs := []*domain.Run{}
	switch {
	case opts.remote:
		remoteRuns, err := client.NewClient(cfg.APIEndpoint).GetRuns(ctx, cfg.Org, opts.limit)
		if err != nil {
			return fmt.Errorf("failed to get runs from %s: %w", cfg.APIEndpoint, err)
		}
		runs = append(runs, remoteRuns...)
	case !archiveExists(cfg):
		// nothing archived yet; do not create an empty database
	default:
		store, err := getStorage(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer store.Close()

		storedRuns, err := store.GetRuns(ctx, cfg.Org, opts.limit)
		if err != nil {
			return fmt.Errorf("failed to get runs: %w", err)
		}
		runs = append(runs, storedRuns...)
	}

	if opts.outputJSON {
		return writeJSON(opts.out, runs)
	}

	fmt.Fprintf(opts.out, "\nArchived runs: %s\n\n", cfg.Org)

	table := tablewriter.NewWriter(opts.out)
	table.SetHeader([]string{"Run", "Generated At", "Repositories", "Stars", "Project Sites", "Top Language"})
	for _, run := range runs {
		stars, pages, language := 0, 0, ""
		if run.Summary != nil {
			stars = run.Summary.TotalStars
			pages = run.Summary.PagesCount
			if shares := aggregator.LanguageShares(run.Summary); len(shares) > 0 {
				language = shares[0].Language
			}
		}
		table.Append([]string{
			run.ID,
			run.GeneratedAt.Local().Format(domain.GeneratedDateLayout),
			strconv.Itoa(run.Count),
			strconv.Itoa(stars),
			strconv.Itoa(pages),
			language,
		})
	}
	table.Render()

	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
