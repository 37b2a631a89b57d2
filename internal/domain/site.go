package domain

// SiteConfig is the Jekyll _config.yml written on first run
type SiteConfig struct {
	Title           string     `yaml:"title"`
	Description     string     `yaml:"description"`
	Theme           string     `yaml:"theme"`
	ShowDownloads   bool       `yaml:"show_downloads"`
	GoogleAnalytics string     `yaml:"google_analytics"`
	Repository      string     `yaml:"repository"`
	GitHub          SiteGitHub `yaml:"github"`
}

// SiteGitHub describes who owns the pages site
type SiteGitHub struct {
	IsProjectPage bool   `yaml:"is_project_page"`
	OwnerURL      string `yaml:"owner_url"`
	OwnerName     string `yaml:"owner_name"`
}

// DefaultSiteConfig returns the site configuration for an organization
func DefaultSiteConfig(org string) *SiteConfig {
	return &SiteConfig{
		Title:           org + " Projects",
		Description:     "A collection of projects by " + org,
		Theme:           "jekyll-theme-cayman",
		ShowDownloads:   false,
		GoogleAnalytics: "",
		Repository:      org + "/" + SiteRepoName(org),
		GitHub: SiteGitHub{
			IsProjectPage: true,
			OwnerURL:      "https://github.com/" + org,
			OwnerName:     org,
		},
	}
}
