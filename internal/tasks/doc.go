// Package tasks implements the client-side orchestration core of the import assistant.
//
// Four components cover the flow from query text to a finished import job:
//
//   - [SearchController] : debounced, cancellable search-as-you-type with
//     stale-response suppression via monotonic sequence numbers
//   - [SelectionStore] : the set of chosen catalog entries, normalized so songs
//     resolve to their containing album and duplicates are impossible
//   - [ImportSubmitter] : converts the selection into one batch import request
//     and clears the selection only when the backend accepts it
//   - [JobTracker] : a polling state machine (Idle → Polling → Terminal) that
//     follows a submitted job until completed or failed
//
// Components publish [Event] values on a caller-owned channel for non-blocking
// status reporting to the CLI/TUI layers; consumers re-read component snapshots
// when an event arrives rather than carrying state in the event itself.
//
// All network calls take a context.Context; every timer or poll loop a
// component creates is torn down explicitly on cancellation, replacement, or
// Close.
package tasks
