package domain

// GeneratedDateLayout is the layout of PageData.GeneratedDate
const GeneratedDateLayout = "2006-01-02 15:04:05"

// PageData is everything the index page is rendered from
type PageData struct {
	OrgName       string
	GeneratedDate string // empty when timestamps are disabled
	Count         int
	Repositories  []*Repository
}

// NewPageData builds page data for an already sorted repository list
func NewPageData(org, generatedDate string, repos []*Repository) *PageData {
	return &PageData{
		OrgName:       org,
		GeneratedDate: generatedDate,
		Count:         len(repos),
		Repositories:  repos,
	}
}

// Vars returns the variables exposed to the index template.
// Names follow the template contract: org_name, generated_date, count, repositories.
func (p *PageData) Vars() map[string]any {
	repos := make([]map[string]any, 0, len(p.Repositories))
	for _, r := range p.Repositories {
		repos = append(repos, r.Vars())
	}
	return map[string]any{
		"org_name":       p.OrgName,
		"generated_date": p.GeneratedDate,
		"count":          p.Count,
		"repositories":   repos,
	}
}
