package config

import "time"

// Canonical status names. The catalog matches on these first and only falls
// back to the is_closed/is_active flags when an administrator renamed them.
const (
	StatusOpen           = "Open"
	StatusAssigned       = "Assigned"
	StatusInProgress     = "In Progress"
	StatusWaitingForUser = "Waiting for User"
	StatusResolved       = "Resolved"
	StatusClosed         = "Closed"
	StatusRejected       = "Rejected"
)

// EngineerAllowedStatuses are the only statuses an engineer may move a
// complaint to directly; closed statuses go through Resolve.
var EngineerAllowedStatuses = []string{
	StatusInProgress,
	StatusWaitingForUser,
}

const (
	// Rating bounds for complaint feedback.
	MinRating = 1
	MaxRating = 5

	// SLAWindow is how long a complaint may stay open before reporting
	// counts it as overdue.
	SLAWindow = 48 * time.Hour

	// DashboardCacheTTL bounds staleness of cached dashboard counters.
	DashboardCacheTTL = 1 * time.Minute
)
