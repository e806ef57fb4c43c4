package prd

import (
	"context"

	"github.com/jha-shubham/PRDs/internal/domain/activity"
)

// Repository provides storage for PRDs.
//
// Get, List and Search only ever see active PRDs. Update addresses a PRD by ID
// whether or not it is active, which is how deactivation is persisted.
type Repository interface {
	Create(ctx context.Context, p *PRD) error
	Get(ctx context.Context, id string) (*PRD, error)
	Update(ctx context.Context, p *PRD) error
	List(ctx context.Context, opts ListOptions) ([]PRD, error)
	Search(ctx context.Context, query string, opts SearchOptions) ([]PRD, error)
}

// ActivityLogger records PRD mutations in the audit trail.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}

// IDGenerator issues PRD identifiers. Implementations must never return the
// same ID twice.
type IDGenerator interface {
	NextID() string
}
