// server/internal/reservation/status.go
package reservation

// Ride statuses for a booked reservation. Distinct from the quote-level
// lifecycle tag (incomplete/completed/abandoned).
const (
	StatusPending   = "Pending"
	StatusAccepted  = "Accepted"
	StatusOffered   = "Offered"
	StatusConfirmed = "Confirmed"
	StatusPrevious  = "Previous"
)

// allowedTransitions is the expected workflow:
// Pending -> {Accepted, Offered} -> Confirmed -> Previous.
// The enum is advisory: callers may set any status, and the update paths
// never reject on this table. Off-workflow transitions are only reported
// back as a warning so clients can surface them.
var allowedTransitions = map[string][]string{
	StatusPending:   {StatusAccepted, StatusOffered},
	StatusAccepted:  {StatusConfirmed},
	StatusOffered:   {StatusConfirmed},
	StatusConfirmed: {StatusPrevious},
	StatusPrevious:  {},
}

// IsKnownStatus reports whether s is one of the recognized ride statuses.
func IsKnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusOffered, StatusConfirmed, StatusPrevious:
		return true
	}
	return false
}

// TransitionWarning returns a human-readable warning when the from->to
// transition falls outside the expected workflow, and "" when it is on
// the happy path. A no-op transition (from == to) is never warned about.
func TransitionWarning(from, to string) string {
	if from == to {
		return ""
	}
	if !IsKnownStatus(to) {
		return "unknown ride status: " + to
	}
	if !IsKnownStatus(from) {
		// Legacy records may carry free-form statuses; accept anything.
		return ""
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return ""
		}
	}
	return "unexpected ride status transition: " + from + " -> " + to
}
