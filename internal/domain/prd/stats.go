package prd

import (
	"cmp"
	"slices"
	"time"
)

// Statistics aggregates the active PRDs in a store.
type Statistics struct {
	TotalCount        int              `json:"total_count" yaml:"total_count" msgpack:"total_count"`
	StatusCounts      map[Status]int   `json:"status_counts" yaml:"status_counts" msgpack:"status_counts"`
	PriorityCounts    map[Priority]int `json:"priority_counts" yaml:"priority_counts" msgpack:"priority_counts"`
	AverageCompletion float64          `json:"average_completion" yaml:"average_completion" msgpack:"average_completion"`
	AuthorCounts      map[string]int   `json:"author_counts" yaml:"author_counts" msgpack:"author_counts"`
	TagCounts         map[string]int   `json:"tag_counts" yaml:"tag_counts" msgpack:"tag_counts"`
	GeneratedAt       time.Time        `json:"generated_at" yaml:"generated_at" msgpack:"generated_at"`
}

// AuthorCount pairs an author with the number of PRDs they wrote.
type AuthorCount struct {
	Author string
	Count  int
}

// ComputeStatistics builds the histograms for prds. Inactive entries are skipped.
// Every status and priority is present in the result, zero-filled.
func ComputeStatistics(prds []PRD, now time.Time) *Statistics {
	stats := &Statistics{
		StatusCounts:   make(map[Status]int, len(statuses)),
		PriorityCounts: make(map[Priority]int, len(priorities)),
		AuthorCounts:   make(map[string]int),
		TagCounts:      make(map[string]int),
		GeneratedAt:    now,
	}
	for _, s := range statuses {
		stats.StatusCounts[s] = 0
	}
	for _, p := range priorities {
		stats.PriorityCounts[p] = 0
	}

	totalCompletion := 0
	for _, p := range prds {
		if !p.IsActive {
			continue
		}
		stats.TotalCount++
		stats.StatusCounts[p.Status]++
		stats.PriorityCounts[p.Priority]++
		stats.AuthorCounts[p.Author]++
		for _, tag := range p.Tags {
			stats.TagCounts[tag]++
		}
		totalCompletion += p.CompletionPercentage
	}

	if stats.TotalCount > 0 {
		stats.AverageCompletion = float64(totalCompletion) / float64(stats.TotalCount)
	}
	return stats
}

// TopAuthors returns up to n authors ordered by PRD count, then name.
// n <= 0 returns all authors.
func (s *Statistics) TopAuthors(n int) []AuthorCount {
	authors := make([]AuthorCount, 0, len(s.AuthorCounts))
	for author, count := range s.AuthorCounts {
		authors = append(authors, AuthorCount{Author: author, Count: count})
	}
	slices.SortFunc(authors, func(a, b AuthorCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Author, b.Author)
	})
	if n > 0 && n < len(authors) {
		authors = authors[:n]
	}
	return authors
}
