// Package memory provides in-process repositories backed by Go slices and maps.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/jha-shubham/PRDs/internal/domain/prd"
	"github.com/jha-shubham/PRDs/internal/repository"
)

// PRDRepository stores PRDs in an insertion-ordered arena with an ID index.
// A positive capacity bounds the number of records ever created; deactivated
// records keep their slot.
type PRDRepository struct {
	mu       sync.RWMutex
	records  []prd.PRD
	index    map[string]int
	capacity int
}

// NewPRDRepository creates an empty repository. capacity <= 0 means unbounded.
func NewPRDRepository(capacity int) *PRDRepository {
	return &PRDRepository{
		index:    make(map[string]int),
		capacity: max(capacity, 0),
	}
}

// Create appends a new PRD.
func (r *PRDRepository) Create(_ context.Context, p *prd.PRD) error {
	if p == nil || p.ID == "" {
		return repository.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[p.ID]; exists {
		return repository.ErrConflict
	}
	if r.capacity > 0 && len(r.records) >= r.capacity {
		return repository.ErrCapacityExceeded
	}

	r.index[p.ID] = len(r.records)
	r.records = append(r.records, p.Clone())
	return nil
}

// Get returns an active PRD by ID.
func (r *PRDRepository) Get(_ context.Context, id string) (*prd.PRD, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok || !r.records[pos].IsActive {
		return nil, repository.ErrNotFound
	}
	out := r.records[pos].Clone()
	return &out, nil
}

// Update replaces the stored PRD with the same ID, active or not.
func (r *PRDRepository) Update(_ context.Context, p *prd.PRD) error {
	if p == nil {
		return repository.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	r.records[pos] = p.Clone()
	return nil
}

// List returns active PRDs matching opts in insertion order.
func (r *PRDRepository) List(_ context.Context, opts prd.ListOptions) ([]prd.PRD, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prd.PRD, 0, len(r.records))
	for _, p := range r.records {
		if p.IsActive && opts.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	return prd.Page(out, opts.Limit, opts.Offset), nil
}

// Search returns active PRDs whose title or description contains query, or
// that carry a tag containing it. Matching is case-insensitive.
func (r *PRDRepository) Search(_ context.Context, query string, opts prd.SearchOptions) ([]prd.PRD, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []prd.PRD{}
	if needle == "" {
		return out, nil
	}
	for _, p := range r.records {
		if p.IsActive && matches(p, needle) {
			out = append(out, p.Clone())
		}
	}
	return prd.Page(out, opts.Limit, opts.Offset), nil
}

// Len returns the number of stored records, including deactivated ones.
func (r *PRDRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func matches(p prd.PRD, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(tag, needle) {
			return true
		}
	}
	return false
}
