package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	PRDID        *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}

// Matches reports whether entry passes the PRD and type filters.
func (o ListActivityOptions) Matches(entry ActivityEntry) bool {
	if o.PRDID != nil && entry.PRDID != *o.PRDID {
		return false
	}
	if o.ActivityType != nil && entry.ActivityType != *o.ActivityType {
		return false
	}
	return true
}
