package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"navimport/internal/models"
)

// DefaultPollInterval is the cadence at which a tracked job is re-fetched.
const DefaultPollInterval = 1500 * time.Millisecond

// TrackerState is the polling state machine's position.
type TrackerState int

const (
	Idle TrackerState = iota // no job id set
	Polling                  // job id set, status non-terminal or unknown
	Terminal                 // status observed as completed or failed
)

func (s TrackerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Polling:
		return "polling"
	case Terminal:
		return "terminal"
	default:
		return ""
	}
}

// JobFetcher is the slice of the backend surface the JobTracker needs.
type JobFetcher interface {
	GetJob(ctx context.Context, id string) (*models.Job, error)
}

// TrackerOpts configures a JobTracker. Zero values use the defaults.
type TrackerOpts struct {
	Interval   time.Duration
	Events     chan<- Event
	Logger     *log.Logger
	OnTerminal func() // invoked exactly once per tracked job, on reaching Terminal
}

// JobTracker follows a submitted job until a terminal status is observed.
//
// Track fetches immediately, then on a fixed interval. Polls are strictly
// serial per job id: the loop does not start a fetch before the previous
// one's outcome is known, so a slow backend never accumulates overlapping
// requests. Fetch failures are logged and tolerated; polling continues on
// the same cadence. Replacing or clearing the tracked job cancels the
// previous loop before anything else happens, so at most one poll loop is
// live per tracker.
type JobTracker struct {
	svc        JobFetcher
	interval   time.Duration
	events     chan<- Event
	logger     *log.Logger
	onTerminal func()

	mu     sync.Mutex
	state  TrackerState
	jobID  string
	job    *models.Job
	gen    uint64 // bumped on every Track/Clear; a loop's writes need a current gen
	cancel context.CancelFunc
}

// NewJobTracker creates a tracker polling through svc.
func NewJobTracker(svc JobFetcher, opts TrackerOpts) *JobTracker {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	return &JobTracker{
		svc:        svc,
		interval:   opts.Interval,
		events:     opts.Events,
		logger:     opts.Logger,
		onTerminal: opts.OnTerminal,
		state:      Idle,
	}
}

// Track starts following jobID, cancelling any previous poll loop first.
func (t *JobTracker) Track(ctx context.Context, jobID string) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}

	pollCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.jobID = jobID
	t.job = nil
	t.state = Polling
	t.gen++
	gen := t.gen
	t.mu.Unlock()

	go t.poll(pollCtx, jobID, gen)
}

// Clear stops tracking and returns the machine to Idle.
func (t *JobTracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.state = Idle
	t.jobID = ""
	t.job = nil
	t.gen++
}

// Snapshot returns the current state and the latest job snapshot (nil before
// the first successful fetch).
func (t *JobTracker) Snapshot() (TrackerState, *models.Job) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.job
}

// poll runs the fetch loop: one immediate fetch, then one per tick, until a
// terminal status arrives or the context is cancelled.
func (t *JobTracker) poll(ctx context.Context, jobID string, gen uint64) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		if done := t.fetch(ctx, jobID, gen); done {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// fetch performs one poll. Returns true when the loop should stop: terminal
// status observed, context cancelled, or the tracked job replaced underneath.
func (t *JobTracker) fetch(ctx context.Context, jobID string, gen uint64) bool {
	job, err := t.svc.GetJob(ctx, jobID)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		// Transient: the next cycle may succeed. Never surfaced to the user.
		t.logger.Warn("job poll failed", "job", jobID, "error", err)
		return false
	}

	t.mu.Lock()
	// Generation comparison, not job id: re-tracking the same id starts a new
	// loop that must own all writes from here on.
	if t.gen != gen {
		t.mu.Unlock()
		return true
	}
	t.job = job
	terminal := job.Terminal()
	if terminal {
		t.state = Terminal
		if t.cancel != nil {
			t.cancel()
			t.cancel = nil
		}
	}
	t.mu.Unlock()

	sendEvent(t.events, Event{Kind: JobUpdated})
	if terminal {
		t.logger.Info("job reached terminal state", "job", jobID, "status", job.Status)
		if t.onTerminal != nil {
			t.onTerminal()
		}
		sendEvent(t.events, Event{Kind: JobFinished})
	}
	return terminal
}
