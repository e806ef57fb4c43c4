package prd_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/domain/prd"
	"github.com/jha-shubham/PRDs/internal/memory"
	"github.com/jha-shubham/PRDs/internal/repository"
	"github.com/jha-shubham/PRDs/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*prd.Service, *memory.ActivityRepository) {
	t.Helper()
	activities := memory.NewActivityRepository()
	return prd.NewService(memory.NewPRDRepository(0), activity.NewService(activities, nil), nil, nil), activities
}

func create(t *testing.T, svc *prd.Service, title string) *prd.PRD {
	t.Helper()
	p, err := svc.Create(context.Background(), prd.CreateRequest{
		Title:       title,
		Description: title + " description",
		Author:      "Product Team",
	})
	require.NoError(t, err)
	return p
}

func TestPRDService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created := create(t, svc, "A")
	require.NotEmpty(t, created.ID)

	found, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, prd.StatusDraft, found.Status)
	require.Equal(t, prd.PriorityMedium, found.Priority)
	require.Equal(t, 0, found.CompletionPercentage)
	require.True(t, found.IsActive)
	require.Equal(t, found.CreatedAt, found.UpdatedAt)
}

func TestPRDService_CreateUniqueIDs(t *testing.T) {
	svc, _ := newService(t)

	seen := make(map[string]struct{})
	for i := range 200 {
		p := create(t, svc, fmt.Sprintf("PRD %d", i))
		_, dup := seen[p.ID]
		require.False(t, dup, "duplicate id %s", p.ID)
		seen[p.ID] = struct{}{}
	}
}

func TestPRDService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	cases := map[string]prd.CreateRequest{
		"empty title":       {Title: "", Description: "d", Author: "a"},
		"blank description": {Title: "t", Description: "   ", Author: "a"},
		"missing author":    {Title: "t", Description: "d"},
		"title too long":    {Title: string(make([]rune, prd.MaxTitleLength+1)), Description: "d", Author: "a"},
		"unknown priority":  {Title: "t", Description: "d", Author: "a", Priority: "Urgent"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, req)
			require.ErrorIs(t, err, prd.ErrInvalidArgument)
		})
	}

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalCount)
}

func TestPRDService_CreateCapacityExceeded(t *testing.T) {
	ctx := context.Background()
	svc := prd.NewService(memory.NewPRDRepository(1), nil, nil, nil)

	create(t, svc, "A")
	_, err := svc.Create(ctx, prd.CreateRequest{Title: "B", Description: "d", Author: "a"})
	require.ErrorIs(t, err, prd.ErrCapacityExceeded)
}

func TestPRDService_CreateNormalizesTags(t *testing.T) {
	svc, _ := newService(t)

	p, err := svc.Create(context.Background(), prd.CreateRequest{
		Title:       "Dark Mode Theme",
		Description: "Add dark theme option",
		Author:      "UX Team",
		Priority:    prd.PriorityHigh,
		Tags:        []string{" UI ", "theme", "ui", ""},
	})
	require.NoError(t, err)
	require.Equal(t, prd.PriorityHigh, p.Priority)
	require.Equal(t, []string{"ui", "theme"}, p.Tags)
}

func TestPRDService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.Get(ctx, "PRD-missing")
	require.ErrorIs(t, err, prd.ErrPRDNotFound)
	_, err = svc.Get(ctx, "")
	require.ErrorIs(t, err, prd.ErrPRDNotFound)
}

func TestPRDService_UpdateStatusUnknownLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, activities := newService(t)
	create(t, svc, "A")

	before, err := svc.List(ctx, prd.ListOptions{})
	require.NoError(t, err)
	logged, err := activities.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, "PRD-unknown", prd.StatusApproved)
	require.ErrorIs(t, err, prd.ErrPRDNotFound)

	after, err := svc.List(ctx, prd.ListOptions{})
	require.NoError(t, err)
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("store changed (-before +after):\n%s", diff)
	}
	loggedAfter, err := activities.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, loggedAfter, len(logged))
}

func TestPRDService_UpdateStatusRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created := create(t, svc, "A")

	// Every status is reachable from every other.
	for _, from := range prd.Statuses() {
		for _, to := range prd.Statuses() {
			_, err := svc.UpdateStatus(ctx, created.ID, from)
			require.NoError(t, err)
			prev, err := svc.Get(ctx, created.ID)
			require.NoError(t, err)

			_, err = svc.UpdateStatus(ctx, created.ID, to)
			require.NoError(t, err)
			got, err := svc.Get(ctx, created.ID)
			require.NoError(t, err)
			require.Equal(t, to, got.Status)
			require.False(t, got.UpdatedAt.Before(prev.UpdatedAt))
		}
	}
}

func TestPRDService_UpdateStatusInvalid(t *testing.T) {
	svc, _ := newService(t)
	created := create(t, svc, "A")

	_, err := svc.UpdateStatus(context.Background(), created.ID, prd.Status("Shipped"))
	require.ErrorIs(t, err, prd.ErrInvalidStatus)
	require.ErrorIs(t, err, prd.ErrInvalidArgument)
}

func TestPRDService_UpdatedAtNeverMovesBackwards(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created := create(t, svc, "A")

	svc.SetClock(func() time.Time { return created.CreatedAt.Add(-time.Hour) })
	updated, err := svc.UpdateStatus(ctx, created.ID, prd.StatusTesting)
	require.NoError(t, err)
	require.Equal(t, created.UpdatedAt, updated.UpdatedAt)

	later := created.CreatedAt.Add(time.Minute)
	svc.SetClock(func() time.Time { return later })
	updated, err = svc.SetCompletion(ctx, created.ID, 10)
	require.NoError(t, err)
	require.Equal(t, later, updated.UpdatedAt)
}

func TestPRDService_SetCompletionClamps(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created := create(t, svc, "A")

	p, err := svc.SetCompletion(ctx, created.ID, 150)
	require.NoError(t, err)
	require.Equal(t, 100, p.CompletionPercentage)

	p, err = svc.SetCompletion(ctx, created.ID, -5)
	require.NoError(t, err)
	require.Equal(t, 0, p.CompletionPercentage)

	p, err = svc.SetCompletion(ctx, created.ID, 42)
	require.NoError(t, err)
	require.Equal(t, 42, p.CompletionPercentage)

	_, err = svc.SetCompletion(ctx, "PRD-unknown", 10)
	require.ErrorIs(t, err, prd.ErrPRDNotFound)
}

func TestPRDService_SetPriorityAndTags(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created := create(t, svc, "A")

	p, err := svc.SetPriority(ctx, created.ID, prd.PriorityCritical)
	require.NoError(t, err)
	require.Equal(t, prd.PriorityCritical, p.Priority)

	_, err = svc.SetPriority(ctx, created.ID, prd.Priority("Urgent"))
	require.ErrorIs(t, err, prd.ErrInvalidPriority)

	_, err = svc.AddTag(ctx, created.ID, "Security")
	require.NoError(t, err)
	p, err = svc.AddTag(ctx, created.ID, "security ")
	require.NoError(t, err)
	require.Equal(t, []string{"security"}, p.Tags)

	_, err = svc.AddTag(ctx, created.ID, "  ")
	require.ErrorIs(t, err, prd.ErrInvalidArgument)
}

func TestPRDService_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	created := create(t, svc, "A")
	_, err := svc.AddTag(ctx, created.ID, "api")
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	got.Status = prd.StatusArchived
	got.Tags[0] = "changed"

	again, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, prd.StatusDraft, again.Status)
	require.Equal(t, []string{"api"}, again.Tags)
}

func TestPRDService_Deactivate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a := create(t, svc, "A")
	b := create(t, svc, "B")
	_, err := svc.SetCompletion(ctx, a.ID, 80)
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, a.ID))

	_, err = svc.Get(ctx, a.ID)
	require.ErrorIs(t, err, prd.ErrPRDNotFound)
	_, err = svc.UpdateStatus(ctx, a.ID, prd.StatusApproved)
	require.ErrorIs(t, err, prd.ErrPRDNotFound)
	require.ErrorIs(t, svc.Deactivate(ctx, a.ID), prd.ErrPRDNotFound)

	drafts, err := svc.ListByStatus(ctx, prd.StatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Equal(t, b.ID, drafts[0].ID)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalCount)
	require.Equal(t, 0.0, stats.AverageCompletion)
}

func TestPRDService_ListByStatusAndPriority(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	a := create(t, svc, "A")
	b := create(t, svc, "B")
	c := create(t, svc, "C")

	_, err := svc.UpdateStatus(ctx, c.ID, prd.StatusApproved)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, a.ID, prd.StatusApproved)
	require.NoError(t, err)
	_, err = svc.SetPriority(ctx, b.ID, prd.PriorityLow)
	require.NoError(t, err)

	approved, err := svc.ListByStatus(ctx, prd.StatusApproved)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C"}, titles(approved))

	low, err := svc.ListByPriority(ctx, prd.PriorityLow)
	require.NoError(t, err)
	require.Equal(t, []string{"B"}, titles(low))

	_, err = svc.ListByStatus(ctx, prd.Status("bogus"))
	require.ErrorIs(t, err, prd.ErrInvalidStatus)
}

func TestPRDService_Search(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "User Authentication System")
	create(t, svc, "Dark Mode Theme")

	found, err := svc.Search(ctx, "authentication", prd.SearchOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"User Authentication System"}, titles(found))

	empty, err := svc.Search(ctx, "", prd.SearchOptions{})
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestPRDService_StatisticsEmpty(t *testing.T) {
	svc, _ := newService(t)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, stats.TotalCount)
	require.Equal(t, 0.0, stats.AverageCompletion)
	for _, s := range prd.Statuses() {
		require.Equal(t, 0, stats.StatusCounts[s])
	}
}

func TestPRDService_StatisticsScenario(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, "A")
	second := create(t, svc, "B")
	third := create(t, svc, "C")

	_, err := svc.UpdateStatus(ctx, second.ID, prd.StatusApproved)
	require.NoError(t, err)
	_, err = svc.SetCompletion(ctx, third.ID, 75)
	require.NoError(t, err)

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalCount)
	require.Equal(t, 1, stats.StatusCounts[prd.StatusApproved])
	require.Equal(t, 2, stats.StatusCounts[prd.StatusDraft])
	require.Equal(t, 3, stats.PriorityCounts[prd.PriorityMedium])
	require.InDelta(t, 25.0, stats.AverageCompletion, 1e-9)
	require.Equal(t, map[string]int{"Product Team": 3}, stats.AuthorCounts)
}

func TestPRDService_LogsActivity(t *testing.T) {
	ctx := context.Background()
	svc, activities := newService(t)
	created := create(t, svc, "A")
	_, err := svc.UpdateStatus(ctx, created.ID, prd.StatusInReview)
	require.NoError(t, err)
	_, err = svc.SetCompletion(ctx, created.ID, 30)
	require.NoError(t, err)

	entries, err := activities.List(ctx, activity.ListActivityOptions{PRDID: &created.ID})
	require.NoError(t, err)
	got := make([]activity.ActivityType, len(entries))
	for i, e := range entries {
		got[i] = e.ActivityType
	}
	want := []activity.ActivityType{
		activity.TypeCompletionChanged,
		activity.TypeStatusChanged,
		activity.TypePRDCreated,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("activity mismatch (-want +got):\n%s", diff)
	}
}

func TestPRDService_ActivityFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.Anything).Return(errors.New("log unavailable"))

	svc := prd.NewService(memory.NewPRDRepository(0), activity.NewService(activities, nil), nil, nil)
	p, err := svc.Create(ctx, prd.CreateRequest{Title: "A", Description: "d", Author: "a"})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	activities.AssertNumberOfCalls(t, "Log", 1)
}

func TestPRDService_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")

	repo := &mocks.PRDRepository{}
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrConflict).Once()
	repo.On("Get", ctx, "p1").Return((*prd.PRD)(nil), boom)
	repo.On("List", ctx, prd.ListOptions{}).Return(nil, boom)

	svc := prd.NewService(repo, nil, prd.NewSequenceGenerator("T", nil), nil)

	_, err := svc.Create(ctx, prd.CreateRequest{Title: "A", Description: "d", Author: "a"})
	require.ErrorIs(t, err, prd.ErrDuplicateID)

	_, err = svc.Get(ctx, "p1")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, prd.ErrPRDNotFound)

	_, err = svc.Statistics(ctx)
	require.ErrorIs(t, err, boom)
	repo.AssertExpectations(t)
}

func TestPRDService_UpdateVanishedRecord(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.PRDRepository{}
	repo.On("Get", ctx, "p1").Return(&prd.PRD{ID: "p1", Status: prd.StatusDraft, IsActive: true}, nil)
	repo.On("Update", ctx, mock.AnythingOfType("*prd.PRD")).Return(repository.ErrNotFound)

	svc := prd.NewService(repo, nil, nil, nil)
	_, err := svc.UpdateStatus(ctx, "p1", prd.StatusApproved)
	require.ErrorIs(t, err, prd.ErrPRDNotFound)
}

func titles(prds []prd.PRD) []string {
	out := make([]string, len(prds))
	for i, p := range prds {
		out[i] = p.Title
	}
	return out
}
