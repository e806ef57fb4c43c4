package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jha-shubham/PRDs/internal/domain/activity"
	"github.com/jha-shubham/PRDs/internal/repository"
)

// ActivityRepository is an append-only activity log.
type ActivityRepository struct {
	mu      sync.RWMutex
	entries []activity.ActivityEntry
	nextID  int64
}

// NewActivityRepository creates an empty activity log.
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

// Log appends entry and assigns its ID.
func (r *ActivityRepository) Log(_ context.Context, entry *activity.ActivityEntry) error {
	if entry == nil {
		return repository.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, *entry)
	return nil
}

// List returns matching entries, newest first.
func (r *ActivityRepository) List(_ context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []activity.ActivityEntry{}
	skipped := 0
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		if !opts.Matches(entry) {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		out = append(out, entry)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}
