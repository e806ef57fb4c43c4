package prd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/repository"
)

// Service is the PRD store: it issues IDs, applies defaults and mutations,
// and derives statistics. Every method runs under a single lock, and callers
// only ever receive copies of stored PRDs.
type Service struct {
	mu         sync.Mutex
	repo       Repository
	activities ActivityLogger
	ids        IDGenerator
	now        func() time.Time
	logger     *slog.Logger
}

// NewService creates a new PRD service. activities may be nil.
func NewService(repo Repository, activities ActivityLogger, ids IDGenerator, logger *slog.Logger) *Service {
	if ids == nil {
		ids = NewSequenceGenerator(DefaultIDPrefix, nil)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		repo:       repo,
		activities: activities,
		ids:        ids,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

// CreateRequest describes a PRD creation request.
type CreateRequest struct {
	Title       string
	Description string
	Author      string
	Priority    Priority
	Tags        []string
}

// Create validates the request and stores a new Draft PRD.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*PRD, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := &PRD{
		ID:                   s.ids.NextID(),
		Title:                req.Title,
		Description:          req.Description,
		Author:               req.Author,
		Status:               StatusDraft,
		Priority:             priority,
		CompletionPercentage: 0,
		Tags:                 []string{},
		CreatedAt:            now,
		UpdatedAt:            now,
		IsActive:             true,
	}
	for _, tag := range req.Tags {
		addTag(p, tag)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityExceeded):
			return nil, ErrCapacityExceeded
		case errors.Is(err, repository.ErrConflict):
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		return nil, fmt.Errorf("creating prd: %w", err)
	}

	s.logger.Debug("prd created", "id", p.ID, "title", p.Title)
	s.logActivity(ctx, p.ID, activity.TypePRDCreated, fmt.Sprintf("created PRD %q", p.Title))

	out := p.Clone()
	return &out, nil
}

// Get returns the active PRD with the given ID.
func (s *Service) Get(ctx context.Context, id string) (*PRD, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := p.Clone()
	return &out, nil
}

// UpdateStatus moves a PRD to any status. There is no transition guard.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*PRD, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.mutate(ctx, id, activity.TypeStatusChanged, func(p *PRD) string {
		from := p.Status
		p.Status = status
		return fmt.Sprintf("status %s -> %s", from, status)
	})
}

// SetCompletion sets the completion percentage, clamped to [0, 100].
func (s *Service) SetCompletion(ctx context.Context, id string, percent int) (*PRD, error) {
	return s.mutate(ctx, id, activity.TypeCompletionChanged, func(p *PRD) string {
		p.CompletionPercentage = ClampCompletion(percent)
		return fmt.Sprintf("completion set to %d%%", p.CompletionPercentage)
	})
}

// SetPriority changes the priority of a PRD.
func (s *Service) SetPriority(ctx context.Context, id string, priority Priority) (*PRD, error) {
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	return s.mutate(ctx, id, activity.TypePriorityChanged, func(p *PRD) string {
		p.Priority = priority
		return fmt.Sprintf("priority set to %s", priority)
	})
}

// AddTag attaches a normalized tag. Adding an existing tag is a no-op that
// still refreshes UpdatedAt.
func (s *Service) AddTag(ctx context.Context, id, tag string) (*PRD, error) {
	if NormalizeTag(tag) == "" {
		return nil, fmt.Errorf("%w: tag is required", ErrInvalidArgument)
	}
	return s.mutate(ctx, id, activity.TypeTagAdded, func(p *PRD) string {
		addTag(p, tag)
		return fmt.Sprintf("tag %q added", NormalizeTag(tag))
	})
}

// Deactivate soft-deletes a PRD. It disappears from lookups, listings and
// statistics but its ID stays reserved.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	_, err := s.mutate(ctx, id, activity.TypePRDDeactivated, func(p *PRD) string {
		p.IsActive = false
		return "deactivated"
	})
	return err
}

// List returns active PRDs matching opts in insertion order.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]PRD, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prds, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing prds: %w", err)
	}
	return cloneAll(prds), nil
}

// ListByStatus returns active PRDs with the given status in insertion order.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]PRD, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return s.List(ctx, ListOptions{Status: status})
}

// ListByPriority returns active PRDs with the given priority in insertion order.
func (s *Service) ListByPriority(ctx context.Context, priority Priority) ([]PRD, error) {
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	return s.List(ctx, ListOptions{Priority: priority})
}

// Search matches query case-insensitively against titles, descriptions and tags.
// A blank query matches nothing.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]PRD, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []PRD{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prds, err := s.repo.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching prds: %w", err)
	}
	return cloneAll(prds), nil
}

// Statistics aggregates all active PRDs.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prds, err := s.repo.List(ctx, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading prds for statistics: %w", err)
	}
	return ComputeStatistics(prds, s.now()), nil
}

func (s *Service) mutate(ctx context.Context, id string, typ activity.ActivityType, apply func(p *PRD) string) (*PRD, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := current.Clone()
	summary := apply(&updated)
	updated.UpdatedAt = s.touch(current.UpdatedAt)

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPRDNotFound
		}
		return nil, fmt.Errorf("updating prd: %w", err)
	}

	s.logger.Debug("prd updated", "id", id, "change", summary)
	s.logActivity(ctx, id, typ, summary)

	out := updated.Clone()
	return &out, nil
}

func (s *Service) load(ctx context.Context, id string) (*PRD, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrPRDNotFound
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPRDNotFound
		}
		return nil, fmt.Errorf("getting prd: %w", err)
	}
	if !p.IsActive {
		return nil, ErrPRDNotFound
	}
	return p, nil
}

// touch returns the new UpdatedAt, never earlier than prev.
func (s *Service) touch(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func (s *Service) logActivity(ctx context.Context, id string, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	err := s.activities.LogActivity(ctx, &activity.ActivityEntry{
		PRDID:        id,
		ActivityType: typ,
		Summary:      summary,
		CreatedAt:    s.now(),
	})
	if err != nil {
		s.logger.Warn("failed to log activity", "id", id, "type", typ, "error", err)
	}
}

func addTag(p *PRD, tag string) {
	tag = NormalizeTag(tag)
	if tag == "" || p.HasTag(tag) {
		return
	}
	p.Tags = append(p.Tags, tag)
}

func cloneAll(prds []PRD) []PRD {
	out := make([]PRD, len(prds))
	for i, p := range prds {
		out[i] = p.Clone()
	}
	return out
}
