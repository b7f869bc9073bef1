package watch

import "time"

// DefaultWindow is the quiet period required before a refresh.
const DefaultWindow = 300 * time.Millisecond

type Result int

const (
	None Result = iota
	Pending
	NeedsRefresh
)

func (r Result) String() string {
	switch r {
	case Pending:
		return "pending"
	case NeedsRefresh:
		return "needs-refresh"
	default:
		return "none"
	}
}

// Debouncer accumulates changed paths and reports NeedsRefresh once
// no new path has arrived for Window.
type Debouncer struct {
	Window     time.Duration
	pending    map[string]struct{}
	lastChange time.Time
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{Window: window, pending: make(map[string]struct{})}
}

// Observe records paths seen at now and decides.
func (d *Debouncer) Observe(paths []string, now time.Time) Result {
	if len(paths) > 0 {
		for _, p := range paths {
			d.pending[p] = struct{}{}
		}
		d.lastChange = now
	}
	if len(d.pending) == 0 {
		return None
	}
	if now.Sub(d.lastChange) < d.Window {
		return Pending
	}
	clear(d.pending)
	return NeedsRefresh
}

// PendingCount is the number of distinct paths waiting for a refresh.
func (d *Debouncer) PendingCount() int {
	return len(d.pending)
}

func (d *Debouncer) Reset() {
	clear(d.pending)
	d.lastChange = time.Time{}
}
