package prd

// ListOptions provides filtering options for listing PRDs.
// Zero values mean "no filter".
type ListOptions struct {
	Status   Status
	Priority Priority
	Author   string
	Limit    int
	Offset   int
}

// SearchOptions provides filtering options for search.
type SearchOptions struct {
	Limit  int
	Offset int
}

// Matches reports whether p passes the status, priority and author filters.
func (o ListOptions) Matches(p PRD) bool {
	if o.Status != "" && p.Status != o.Status {
		return false
	}
	if o.Priority != "" && p.Priority != o.Priority {
		return false
	}
	if o.Author != "" && p.Author != o.Author {
		return false
	}
	return true
}

// Page applies offset and limit to an already filtered slice.
func Page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
