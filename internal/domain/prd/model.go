package prd

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Status represents the lifecycle status of a PRD
type Status string

const (
	StatusDraft         Status = "Draft"
	StatusInReview      Status = "InReview"
	StatusApproved      Status = "Approved"
	StatusInDevelopment Status = "InDevelopment"
	StatusTesting       Status = "Testing"
	StatusImplemented   Status = "Implemented"
	StatusArchived      Status = "Archived"
)

var statuses = []Status{
	StatusDraft,
	StatusInReview,
	StatusApproved,
	StatusInDevelopment,
	StatusTesting,
	StatusImplemented,
	StatusArchived,
}

// Statuses returns every status in lifecycle order.
func Statuses() []Status {
	return slices.Clone(statuses)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return slices.Contains(statuses, s)
}

// ParseStatus resolves a status name. Matching ignores case, underscores,
// dashes and spaces, so "in_review" and "In Review" both yield StatusInReview.
func ParseStatus(name string) (Status, error) {
	key := normalizeName(name)
	for _, s := range statuses {
		if normalizeName(string(s)) == key {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}

// Priority represents the urgency of a PRD
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

var priorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

// Priorities returns every priority from lowest to highest.
func Priorities() []Priority {
	return slices.Clone(priorities)
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	return slices.Contains(priorities, p)
}

// ParsePriority resolves a priority name, ignoring case and separators.
func ParsePriority(name string) (Priority, error) {
	key := normalizeName(name)
	for _, p := range priorities {
		if normalizeName(string(p)) == key {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPriority, name)
}

func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// PRD represents a Product Requirements Document
type PRD struct {
	ID                   string    `json:"id" yaml:"id" msgpack:"id"`
	Title                string    `json:"title" yaml:"title" msgpack:"title"`
	Description          string    `json:"description" yaml:"description" msgpack:"description"`
	Author               string    `json:"author" yaml:"author" msgpack:"author"`
	Status               Status    `json:"status" yaml:"status" msgpack:"status"`
	Priority             Priority  `json:"priority" yaml:"priority" msgpack:"priority"`
	CompletionPercentage int       `json:"completion_percentage" yaml:"completion_percentage" msgpack:"completion_percentage"`
	Tags                 []string  `json:"tags" yaml:"tags" msgpack:"tags"`
	CreatedAt            time.Time `json:"created_at" yaml:"created_at" msgpack:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" yaml:"updated_at" msgpack:"updated_at"`
	IsActive             bool      `json:"is_active" yaml:"is_active" msgpack:"is_active"`
}

// Clone returns a copy that shares no mutable state with p.
func (p PRD) Clone() PRD {
	out := p
	out.Tags = slices.Clone(p.Tags)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

// HasTag reports whether the normalized tag is attached.
func (p PRD) HasTag(tag string) bool {
	return slices.Contains(p.Tags, NormalizeTag(tag))
}

func (p PRD) String() string {
	return fmt.Sprintf("PRD{ID='%s', Title='%s', Status=%s, Completion=%d%%}",
		p.ID, p.Title, p.Status, p.CompletionPercentage)
}
