package mcp

import (
	"time"

	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/domain/prd"
)

// Tool parameter types.

type CreatePRDParams struct {
	Title       string   `json:"title" jsonschema:"PRD title"`
	Description string   `json:"description" jsonschema:"What the PRD asks for"`
	Author      string   `json:"author" jsonschema:"Author or owning team"`
	Priority    string   `json:"priority,omitempty" jsonschema:"Low, Medium, High or Critical (default Medium)"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Initial tags"`
}

type PRDIDParams struct {
	ID string `json:"id" jsonschema:"PRD ID"`
}

type UpdateStatusParams struct {
	ID     string `json:"id" jsonschema:"PRD ID"`
	Status string `json:"status" jsonschema:"Draft, InReview, Approved, InDevelopment, Testing, Implemented or Archived"`
}

type SetCompletionParams struct {
	ID      string `json:"id" jsonschema:"PRD ID"`
	Percent int    `json:"percent" jsonschema:"Completion percentage, clamped to 0..100"`
}

type SetPriorityParams struct {
	ID       string `json:"id" jsonschema:"PRD ID"`
	Priority string `json:"priority" jsonschema:"Low, Medium, High or Critical"`
}

type AddTagParams struct {
	ID  string `json:"id" jsonschema:"PRD ID"`
	Tag string `json:"tag" jsonschema:"Tag to attach; stored lower-case"`
}

type ListPRDsParams struct {
	Status   string `json:"status,omitempty" jsonschema:"Only PRDs in this status"`
	Priority string `json:"priority,omitempty" jsonschema:"Only PRDs with this priority"`
	Author   string `json:"author,omitempty" jsonschema:"Only PRDs by this author"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
	Offset   int    `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type SearchPRDsParams struct {
	Query  string `json:"query" jsonschema:"Text matched against titles, descriptions and tags"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
	Offset int    `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type GetStatisticsParams struct{}

type GetRecentActivityParams struct {
	PRDID  string `json:"prd_id,omitempty" jsonschema:"Only activity for this PRD"`
	Type   string `json:"type,omitempty" jsonschema:"Only activity of this type"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of entries (default 20)"`
	Offset int    `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

// Tool result types. Timestamps are RFC 3339 strings.

type PRDView struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Author               string   `json:"author"`
	Status               string   `json:"status"`
	Priority             string   `json:"priority"`
	CompletionPercentage int      `json:"completion_percentage"`
	Tags                 []string `json:"tags"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

type PRDListResult struct {
	PRDs  []PRDView `json:"prds"`
	Count int       `json:"count"`
}

type DeactivateResult struct {
	ID          string `json:"id"`
	Deactivated bool   `json:"deactivated"`
}

type AuthorCountView struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

type StatisticsView struct {
	TotalCount        int               `json:"total_count"`
	StatusCounts      map[string]int    `json:"status_counts"`
	PriorityCounts    map[string]int    `json:"priority_counts"`
	AverageCompletion float64           `json:"average_completion"`
	TopAuthors        []AuthorCountView `json:"top_authors"`
	TagCounts         map[string]int    `json:"tag_counts"`
	GeneratedAt       string            `json:"generated_at"`
}

type ActivityView struct {
	ID        int64  `json:"id"`
	PRDID     string `json:"prd_id"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	Details   string `json:"details,omitempty"`
	CreatedAt string `json:"created_at"`
}

type ActivityListResult struct {
	Entries []ActivityView `json:"entries"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toPRDView(p *prd.PRD) PRDView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PRDView{
		ID:                   p.ID,
		Title:                p.Title,
		Description:          p.Description,
		Author:               p.Author,
		Status:               string(p.Status),
		Priority:             string(p.Priority),
		CompletionPercentage: p.CompletionPercentage,
		Tags:                 tags,
		CreatedAt:            formatTime(p.CreatedAt),
		UpdatedAt:            formatTime(p.UpdatedAt),
	}
}

func toPRDList(prds []prd.PRD) PRDListResult {
	views := make([]PRDView, 0, len(prds))
	for i := range prds {
		views = append(views, toPRDView(&prds[i]))
	}
	return PRDListResult{PRDs: views, Count: len(views)}
}

func toStatisticsView(stats *prd.Statistics) StatisticsView {
	view := StatisticsView{
		TotalCount:        stats.TotalCount,
		StatusCounts:      make(map[string]int, len(stats.StatusCounts)),
		PriorityCounts:    make(map[string]int, len(stats.PriorityCounts)),
		AverageCompletion: stats.AverageCompletion,
		TopAuthors:        []AuthorCountView{},
		TagCounts:         make(map[string]int, len(stats.TagCounts)),
		GeneratedAt:       formatTime(stats.GeneratedAt),
	}
	for s, n := range stats.StatusCounts {
		view.StatusCounts[string(s)] = n
	}
	for p, n := range stats.PriorityCounts {
		view.PriorityCounts[string(p)] = n
	}
	for tag, n := range stats.TagCounts {
		view.TagCounts[tag] = n
	}
	for _, a := range stats.TopAuthors(topAuthors) {
		view.TopAuthors = append(view.TopAuthors, AuthorCountView{Author: a.Author, Count: a.Count})
	}
	return view
}

func toActivityList(entries []activity.ActivityEntry) ActivityListResult {
	views := make([]ActivityView, 0, len(entries))
	for _, e := range entries {
		views = append(views, ActivityView{
			ID:        e.ID,
			PRDID:     e.PRDID,
			Type:      string(e.ActivityType),
			Summary:   e.Summary,
			Details:   e.Details,
			CreatedAt: formatTime(e.CreatedAt),
		})
	}
	return ActivityListResult{Entries: views}
}
