package domain

import "sort"

const (
	// DefaultDescription is used when a repository has no description
	DefaultDescription = "No description available"
	// DefaultLanguage is used when GitHub reports no primary language
	DefaultLanguage = "Not specified"
	// DateLayout is the layout of Repository.LastUpdated
	DateLayout = "2006-01-02"
)

// Repository is a flattened snapshot of one public repository of an organization
type Repository struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	RepoURL     string   `json:"repo_url"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stars"`
	HasPages    bool     `json:"has_pages"`
	LastUpdated string   `json:"last_updated"`
	Language    string   `json:"language"`
}

// PagesURL returns the GitHub Pages URL of a repository published by org
func PagesURL(org, name string) string {
	return "https://" + SiteRepoName(org) + "/" + name
}

// SiteRepoName returns the name of the organization's own site repository
func SiteRepoName(org string) string {
	return org + ".github.io"
}

// SortByStars sorts repositories by star count, highest first.
// Repositories with equal star counts keep their relative order.
func SortByStars(repos []*Repository) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Stars > repos[j].Stars
	})
}

// Vars returns the template variables of a single repository
func (r *Repository) Vars() map[string]any {
	topics := r.Topics
	if topics == nil {
		topics = []string{}
	}
	return map[string]any{
		"name":         r.Name,
		"description":  r.Description,
		"url":          r.URL,
		"repo_url":     r.RepoURL,
		"topics":       topics,
		"language":     r.Language,
		"stars":        r.Stars,
		"last_updated": r.LastUpdated,
		"has_pages":    r.HasPages,
	}
}
