package render

import (
	"errors"
	"io/fs"
	"os"

	apperrors "github.com/kurihiro0119/github-org-pages/internal/errors"
)

// DefaultTemplate is the index template used when no template file exists
const DefaultTemplate = `# {{ .org_name }} Projects

{{ if .generated_date }}*Last updated: {{ .generated_date }}*

{{ end }}This page lists all {{ .count }} public repositories from the [{{ .org_name }}](https://github.com/{{ .org_name }}) GitHub organization.
{{ range .repositories }}
## [{{ .name }}]({{ .url }})

{{ .description }}
{{ if .topics }}
**Topics:** {{ join .topics ", " }}
{{ end }}
**Language:** {{ .language }} | **Stars:** {{ .stars }} | **Last updated:** {{ .last_updated }}

{{ if .has_pages }}[View Project Site](https://{{ $.org_name }}.github.io/{{ .name }}) | {{ end }}[View on GitHub]({{ .repo_url }})

---
{{ end }}
Generated automatically for [{{ .org_name }}](https://github.com/{{ .org_name }}). See the [source code](https://github.com/{{ .org_name }}/{{ .org_name }}.github.io) for this site.
`

// LoadTemplate reads the template at path.
// found is false when the file does not exist, in which case DefaultTemplate is returned.
func LoadTemplate(path string) (text string, found bool, err error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultTemplate, false, nil
	}
	if err != nil {
		return "", false, apperrors.NewIOError("failed to read template "+path, err)
	}
	return string(b), true, nil
}
