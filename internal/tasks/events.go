package tasks

// Event signals a state change in one of the orchestration components.
//
// Events are wake-ups, not payloads: consumers read the owning component's
// snapshot after receiving one. Err is set only for recoverable failures the
// UI should surface inline (search and submission errors; poll failures are
// logged, never published).
type Event struct {
	Kind EventKind
	Err  error
}

// EventKind enumerates the orchestration events.
type EventKind int

const (
	SearchStarted EventKind = iota
	SearchUpdated
	JobUpdated
	JobFinished
)

func (k EventKind) String() string {
	switch k {
	case SearchStarted:
		return "search_started"
	case SearchUpdated:
		return "search_updated"
	case JobUpdated:
		return "job_updated"
	case JobFinished:
		return "job_finished"
	default:
		return ""
	}
}

// sendEvent publishes an event without blocking.
// Uses select with default so a slow or absent consumer never stalls the core.
func sendEvent(events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	select {
	case events <- ev:
	default:
	}
}
