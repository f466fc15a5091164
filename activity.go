package morph

import (
	"sync"
	"time"
)

// ActivitySignal is a sampled rate of some user action.
type ActivitySignal interface {
	Rate() float64
}

// ClickRate counts user actions and reports them as actions per second over
// a sliding window.
type ClickRate struct {
	mu     sync.Mutex
	window time.Duration
	hits   []time.Time
	total  int

	now func() time.Time
}

// NewClickRate returns a counter averaging over window. A non-positive
// window defaults to one second.
func NewClickRate(window time.Duration) *ClickRate {
	if window <= 0 {
		window = time.Second
	}
	return &ClickRate{window: window, now: time.Now}
}

// Hit records one action.
func (c *ClickRate) Hit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.hits = append(c.hits, now)
	c.total++
	c.trim(now)
}

// Total returns the number of actions recorded since creation.
func (c *ClickRate) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Rate implements ActivitySignal.
func (c *ClickRate) Rate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.trim(c.now())
	return float64(len(c.hits)) / c.window.Seconds()
}

func (c *ClickRate) trim(now time.Time) {
	cutoff := now.Add(-c.window)
	i := 0
	for i < len(c.hits) && !c.hits[i].After(cutoff) {
		i++
	}
	c.hits = c.hits[i:]
}
