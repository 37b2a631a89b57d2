package domain

import "time"

// Run is an archived record of one successful generation
type Run struct {
	ID          string    `json:"id"`
	Org         string    `json:"org"`
	Count       int       `json:"count"`
	IndexPath   string    `json:"index_path"`
	Summary     *Summary  `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Summary holds figures derived from the repositories of a run
type Summary struct {
	Count      int            `json:"count"`
	TotalStars int            `json:"total_stars"`
	PagesCount int            `json:"pages_count"`
	Languages  map[string]int `json:"languages"`
	TopTopics  []TopicCount   `json:"top_topics"`
}

// TopicCount is the number of repositories tagged with a topic
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// LanguageCount is the number of repositories written mainly in a language
type LanguageCount struct {
	Language string `json:"language"`
	Count    int    `json:"count"`
}
