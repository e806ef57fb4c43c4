package activity

import "time"

// ActivityType represents the kind of PRD mutation that was recorded
type ActivityType string

const (
	TypePRDCreated        ActivityType = "prd_created"
	TypeStatusChanged     ActivityType = "status_changed"
	TypeCompletionChanged ActivityType = "completion_changed"
	TypePriorityChanged   ActivityType = "priority_changed"
	TypeTagAdded          ActivityType = "tag_added"
	TypePRDDeactivated    ActivityType = "prd_deactivated"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	PRDID        string       `json:"prd_id"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
