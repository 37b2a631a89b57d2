package aggregator

import (
	"sort"

	"github.com/kurihiro0119/github-org-pages/internal/domain"
)

// DefaultTopTopics is the number of topics kept in a summary
const DefaultTopTopics = 10

// Summarize aggregates a repository list into run-level figures.
// topTopics limits the number of topics reported; zero or less keeps all of them.
func Summarize(repos []*domain.Repository, topTopics int) *domain.Summary {
	summary := &domain.Summary{
		Count:     len(repos),
		Languages: make(map[string]int),
	}

	topicCounts := make(map[string]int)
	for _, repo := range repos {
		summary.TotalStars += repo.Stars
		if repo.HasPages {
			summary.PagesCount++
		}
		summary.Languages[repo.Language]++
		for _, topic := range repo.Topics {
			topicCounts[topic]++
		}
	}

	summary.TopTopics = rankTopics(topicCounts, topTopics)
	return summary
}

// rankTopics orders topics by count descending, then by name
func rankTopics(counts map[string]int, limit int) []domain.TopicCount {
	ranked := make([]domain.TopicCount, 0, len(counts))
	for topic, count := range counts {
		ranked = append(ranked, domain.TopicCount{Topic: topic, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Topic < ranked[j].Topic
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// LanguageShares returns languages sorted by repository count descending, then by name
func LanguageShares(summary *domain.Summary) []domain.LanguageCount {
	shares := make([]domain.LanguageCount, 0, len(summary.Languages))
	for _, ranked := range rankTopics(summary.Languages, 0) {
		shares = append(shares, domain.LanguageCount{Language: ranked.Topic, Count: ranked.Count})
	}
	return shares
}
