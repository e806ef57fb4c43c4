// Package demo runs the command-line demonstration of the PRD store.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/domain/prd"
	"github.com/jha-shubham/PRDs/internal/export"
)

// Store is the part of the PRD service the demonstration drives.
type Store interface {
	Create(ctx context.Context, req prd.CreateRequest) (*prd.PRD, error)
	UpdateStatus(ctx context.Context, id string, status prd.Status) (*prd.PRD, error)
	SetCompletion(ctx context.Context, id string, percent int) (*prd.PRD, error)
	SetPriority(ctx context.Context, id string, priority prd.Priority) (*prd.PRD, error)
	List(ctx context.Context, opts prd.ListOptions) ([]prd.PRD, error)
	ListByStatus(ctx context.Context, status prd.Status) ([]prd.PRD, error)
	Search(ctx context.Context, query string, opts prd.SearchOptions) ([]prd.PRD, error)
	Statistics(ctx context.Context) (*prd.Statistics, error)
}

// ActivityLog lists recorded store mutations.
type ActivityLog interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Options controls optional parts of the demonstration.
type Options struct {
	// ExportPath, when set, writes a snapshot of the store there.
	ExportPath   string
	ExportFormat export.Format
	// RecentActivity is the number of activity entries shown. Zero means 5.
	RecentActivity int
	// TopAuthors is the number of authors in the report. Zero means 3.
	TopAuthors int
	Now        func() time.Time
}

// UnknownID is looked up to show not-found handling.
const UnknownID = "PRD-0-0000"

type sample struct {
	title       string
	description string
	author      string
	priority    prd.Priority
	tags        []string
}

var samples = []sample{
	{"User Authentication System", "Implement secure login and registration", "Dev Team", prd.PriorityCritical, []string{"security", "authentication"}},
	{"Dark Mode Theme", "Add dark theme option for better UX", "UX Team", prd.PriorityLow, []string{"ui", "theme"}},
	{"Payment Gateway Integration", "Integrate secure payment processing", "Product Team", prd.PriorityCritical, []string{"payment", "integration"}},
	{"API Rate Limiting", "Implement API rate limiting for security", "Dev Team", prd.PriorityHigh, []string{"api", "security"}},
	{"Mobile App Redesign", "Complete redesign of mobile application", "Design Team", prd.PriorityMedium, []string{"mobile", "design"}},
	{"Real-time Notifications", "Add real-time notification system", "Dev Team", prd.PriorityMedium, []string{"notifications", "realtime"}},
	{"Performance Optimization", "Optimize database queries and caching", "Database Team", prd.PriorityHigh, []string{"performance", "database"}},
	{"Multi-language Support", "Add internationalization support", "Localization Team", prd.PriorityLow, []string{"i18n", "localization"}},
}

type statusChange struct {
	index      int
	status     prd.Status
	completion int
}

var changes = []statusChange{
	{1, prd.StatusInReview, 0},
	{2, prd.StatusApproved, 0},
	{3, prd.StatusInDevelopment, 65},
	{4, prd.StatusTesting, 90},
	{5, prd.StatusImplemented, 100},
}

// Run loads sample data into store and prints the demonstration to out.
// Store errors are reported in the output and do not stop the run; only a
// failed write to out is returned.
func Run(ctx context.Context, out io.Writer, store Store, activities ActivityLog, opts Options) error {
	if opts.RecentActivity <= 0 {
		opts.RecentActivity = 5
	}
	if opts.TopAuthors <= 0 {
		opts.TopAuthors = 3
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	p := &printer{w: out}

	p.println("PRD Management System - Go Implementation")
	p.println(strings.Repeat("=", 42))

	p.section("Loading sample PRDs")
	ids := make([]string, 0, len(samples))
	for _, s := range samples {
		created, err := store.Create(ctx, prd.CreateRequest{
			Title:       s.title,
			Description: s.description,
			Author:      s.author,
			Priority:    s.priority,
			Tags:        s.tags,
		})
		if err != nil {
			p.reportError(err, "")
			continue
		}
		ids = append(ids, created.ID)
		p.printf("PRD created successfully: %s\n", created.ID)
	}

	p.section("Updating PRDs")
	for _, c := range changes {
		if c.index >= len(ids) {
			continue
		}
		id := ids[c.index]
		updated, err := store.UpdateStatus(ctx, id, c.status)
		if err != nil {
			p.reportError(err, id)
			continue
		}
		p.printf("PRD %s status updated to: %s\n", id, updated.Status)
		if c.completion > 0 {
			updated, err = store.SetCompletion(ctx, id, c.completion)
			if err != nil {
				p.reportError(err, id)
				continue
			}
			p.printf("PRD %s completion set to: %d%%\n", id, updated.CompletionPercentage)
		}
	}
	if len(ids) > 1 {
		if updated, err := store.SetPriority(ctx, ids[1], prd.PriorityMedium); err != nil {
			p.reportError(err, ids[1])
		} else {
			p.printf("PRD %s priority set to: %s\n", updated.ID, updated.Priority)
		}
	}

	p.section("Error handling")
	if _, err := store.Create(ctx, prd.CreateRequest{Title: "", Description: "Missing a title", Author: "QA Team"}); err != nil {
		p.reportError(err, "")
	}
	if _, err := store.UpdateStatus(ctx, UnknownID, prd.StatusApproved); err != nil {
		p.reportError(err, UnknownID)
	}

	all, err := store.List(ctx, prd.ListOptions{})
	if err != nil {
		p.reportError(err, "")
	}
	p.section("Current PRDs")
	for _, item := range all {
		p.printf("  [%s] %s - %s, %s priority (%d%% complete)\n",
			item.ID, item.Title, item.Status, item.Priority, item.CompletionPercentage)
	}

	drafts, err := store.ListByStatus(ctx, prd.StatusDraft)
	if err != nil {
		p.reportError(err, "")
	}
	p.section(fmt.Sprintf("Draft PRDs (%d)", len(drafts)))
	for _, item := range drafts {
		p.printf("  %s\n", item)
	}

	found, err := store.Search(ctx, "authentication", prd.SearchOptions{})
	if err != nil {
		p.reportError(err, "")
	}
	p.section("Searching for 'authentication'")
	for _, item := range found {
		p.printf("  Found: %s\n", item)
	}

	stats, err := store.Statistics(ctx)
	if err != nil {
		p.reportError(err, "")
	} else {
		writeStatistics(p, stats, opts.TopAuthors)
	}

	if activities != nil {
		entries, err := activities.GetRecentActivity(ctx, activity.ListActivityOptions{Limit: opts.RecentActivity})
		if err != nil {
			p.reportError(err, "")
		} else {
			p.section("Recent activity")
			for _, e := range entries {
				p.printf("  %s %-18s %s %s\n", e.CreatedAt.Format(time.RFC3339), e.ActivityType, e.PRDID, e.Summary)
			}
		}
	}

	if opts.ExportPath != "" {
		p.section("Export")
		doc := export.Document{ExportedAt: opts.Now(), PRDs: all, Statistics: stats}
		if err := export.WriteFile(opts.ExportPath, opts.ExportFormat, doc); err != nil {
			p.printf("Error: %v\n", err)
		} else {
			p.printf("Exported %d PRDs to %s (%s)\n", len(all), opts.ExportPath, opts.ExportFormat)
		}
	}

	p.println("\nGo PRD Management System demonstration completed!")
	return p.err
}

func writeStatistics(p *printer, stats *prd.Statistics, topAuthors int) {
	p.section("PRD Management Statistics")
	p.printf("Total PRDs: %d\n", stats.TotalCount)
	p.printf("Average Completion: %.1f%%\n", stats.AverageCompletion)

	p.println("\nStatus Distribution:")
	for _, s := range prd.Statuses() {
		p.printf("  %s: %d\n", s, stats.StatusCounts[s])
	}

	p.println("\nPriority Distribution:")
	for _, pr := range prd.Priorities() {
		p.printf("  %s: %d\n", pr, stats.PriorityCounts[pr])
	}

	p.println("\nTop Authors:")
	for _, a := range stats.TopAuthors(topAuthors) {
		p.printf("  %s: %d\n", a.Author, a.Count)
	}
}

// printer remembers the first write error so the run can finish before
// reporting it.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) println(s string) {
	p.printf("%s\n", s)
}

func (p *printer) section(title string) {
	p.printf("\n=== %s ===\n", title)
}

func (p *printer) reportError(err error, id string) {
	if errors.Is(err, prd.ErrPRDNotFound) && id != "" {
		p.printf("Error: PRD with ID %s not found\n", id)
		return
	}
	p.printf("Error: %v\n", err)
}
