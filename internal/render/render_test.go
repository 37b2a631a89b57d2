package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/github-org-pages/internal/domain"
	apperrors "github.com/kurihiro0119/github-org-pages/internal/errors"
)

func samplePage(generated string) *domain.PageData {
	return domain.NewPageData("acme", generated, []*domain.Repository{
		{
			Name:        "bar",
			Description: "Bar tool",
			URL:         "https://github.com/acme/bar",
			RepoURL:     "https://github.com/acme/bar",
			Topics:      []string{},
			Stars:       10,
			LastUpdated: "2024-01-02",
			Language:    "Go",
		},
		{
			Name:        "foo",
			Description: domain.DefaultDescription,
			URL:         "https://acme.github.io/foo",
			RepoURL:     "https://github.com/acme/foo",
			Topics:      []string{"cli", "docs"},
			Stars:       5,
			HasPages:    true,
			LastUpdated: "2023-06-30",
			Language:    domain.DefaultLanguage,
		},
	})
}

func TestRenderDefaultTemplate(t *testing.T) {
	out, err := Render(DefaultTemplate, samplePage("2024-05-01 12:00:00"))
	require.NoError(t, err)

	want := `# acme Projects

*Last updated: 2024-05-01 12:00:00*

This page lists all 2 public repositories from the [acme](https://github.com/acme) GitHub organization.

## [bar](https://github.com/acme/bar)

Bar tool

**Language:** Go | **Stars:** 10 | **Last updated:** 2024-01-02

[View on GitHub](https://github.com/acme/bar)

---

## [foo](https://acme.github.io/foo)

No description available

**Topics:** cli, docs

**Language:** Not specified | **Stars:** 5 | **Last updated:** 2023-06-30

[View Project Site](https://acme.github.io/foo) | [View on GitHub](https://github.com/acme/foo)

---

Generated automatically for [acme](https://github.com/acme). See the [source code](https://github.com/acme/acme.github.io) for this site.
`
	assert.Equal(t, want, out)
}

func TestRenderWithoutTimestamp(t *testing.T) {
	out, err := Render(DefaultTemplate, samplePage(""))
	require.NoError(t, err)

	assert.NotContains(t, out, "Last updated: ")
	assert.True(t, strings.HasPrefix(out, "# acme Projects\n\nThis page lists all 2"))
}

func TestRenderPlainMatchesDefaultTemplate(t *testing.T) {
	for _, generated := range []string{"", "2024-05-01 12:00:00"} {
		page := samplePage(generated)
		out, err := Render(DefaultTemplate, page)
		require.NoError(t, err)
		assert.Equal(t, out, RenderPlain(page))
	}

	empty := domain.NewPageData("acme", "", nil)
	out, err := Render(DefaultTemplate, empty)
	require.NoError(t, err)
	assert.Equal(t, out, RenderPlain(empty))
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render(DefaultTemplate, samplePage("2024-05-01 12:00:00"))
	require.NoError(t, err)
	second, err := Render(DefaultTemplate, samplePage("2024-05-01 12:00:00"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderCustomTemplate(t *testing.T) {
	text := `{{ .count }} repos{{ range .repositories }}
- {{ .name }} ({{ .stars }}){{ if .has_pages }} pages{{ end }}{{ end }}
`
	out, err := Render(text, samplePage(""))
	require.NoError(t, err)
	assert.Equal(t, "2 repos\n- bar (10)\n- foo (5) pages\n", out)
}

func TestRenderMalformedTemplate(t *testing.T) {
	_, err := Render("{{ range .repositories }}", samplePage(""))
	require.Error(t, err)
	assert.True(t, apperrors.IsRender(err))

	_, err = Render("{{ .no_such_field }}", samplePage(""))
	require.Error(t, err)
	assert.True(t, apperrors.IsRender(err))
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates", "index.md.tmpl")

	text, found, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, DefaultTemplate, text)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("custom {{ .org_name }}"), 0o644))

	text, found, err = LoadTemplate(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "custom {{ .org_name }}", text)
}

func TestLoadTemplateDirectoryIsIOError(t *testing.T) {
	_, _, err := LoadTemplate(t.TempDir())
	require.Error(t, err)
	assert.True(t, apperrors.IsIO(err))
}
