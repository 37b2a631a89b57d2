// Package render turns the sorted repository list into the index document.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/kurihiro0119/github-org-pages/internal/domain"
	apperrors "github.com/kurihiro0119/github-org-pages/internal/errors"
)

var funcs = template.FuncMap{
	"join": strings.Join,
}

// Render executes the template text against data
func Render(text string, data *domain.PageData) (string, error) {
	t, err := template.New("index").Funcs(funcs).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", apperrors.NewRenderError("failed to parse template", err)
	}

	buf := new(bytes.Buffer)
	if err := t.Execute(buf, data.Vars()); err != nil {
		return "", apperrors.NewRenderError("failed to render template", err)
	}
	return buf.String(), nil
}

// RenderPlain builds the same document as DefaultTemplate without the template engine
func RenderPlain(data *domain.PageData) string {
	org := data.OrgName
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Projects\n\n", org)
	if data.GeneratedDate != "" {
		fmt.Fprintf(&b, "*Last updated: %s*\n\n", data.GeneratedDate)
	}
	fmt.Fprintf(&b, "This page lists all %d public repositories from the [%s](https://github.com/%s) GitHub organization.\n", data.Count, org, org)

	for _, r := range data.Repositories {
		fmt.Fprintf(&b, "\n## [%s](%s)\n\n%s\n", r.Name, r.URL, r.Description)
		if len(r.Topics) > 0 {
			fmt.Fprintf(&b, "\n**Topics:** %s\n", strings.Join(r.Topics, ", "))
		}
		fmt.Fprintf(&b, "\n**Language:** %s | **Stars:** %d | **Last updated:** %s\n\n", r.Language, r.Stars, r.LastUpdated)
		if r.HasPages {
			fmt.Fprintf(&b, "[View Project Site](%s) | ", domain.PagesURL(org, r.Name))
		}
		fmt.Fprintf(&b, "[View on GitHub](%s)\n\n---\n", r.RepoURL)
	}

	fmt.Fprintf(&b, "\nGenerated automatically for [%s](https://github.com/%s). See the [source code](https://github.com/%s/%s) for this site.\n",
		org, org, org, domain.SiteRepoName(org))
	return b.String()
}
