package watch

import "time"

// ChangeSource is polled for changed paths without blocking.
type ChangeSource interface {
	CollectChangedPaths() []string
}

// Controller polls a ChangeSource through a Debouncer.
type Controller struct {
	source    ChangeSource
	debouncer *Debouncer
	now       func() time.Time
}

func NewController(source ChangeSource, window time.Duration) *Controller {
	return &Controller{
		source:    source,
		debouncer: NewDebouncer(window),
		now:       time.Now,
	}
}

// Poll collects new paths and reports the debounce decision.
func (c *Controller) Poll() Result {
	return c.debouncer.Observe(c.source.CollectChangedPaths(), c.now())
}

func (c *Controller) PendingCount() int {
	return c.debouncer.PendingCount()
}

// Reset forgets pending changes, e.g. after a manual refresh.
func (c *Controller) Reset() {
	if d, ok := c.source.(interface{ Drain() }); ok {
		d.Drain()
	}
	c.debouncer.Reset()
}
