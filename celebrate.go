package morph

import (
	"math/rand"
	"sync"
	"time"
)

// Emojis are the faces a celebration picks from.
var Emojis = []string{"😻", "😽", "😇", "🥰", "😍"}

// Celebrator presents a celebration. Both calls are fire-and-forget.
type Celebrator interface {
	Celebrate(emoji string)
	Dismiss()
}

// Celebration is a two state machine, idle or active. A trigger while
// active is ignored; the active state ends after Hold.
type Celebration struct {
	Hold time.Duration

	mu     sync.Mutex
	active bool
	sched  Scheduler
	sink   Celebrator
	rnd    *rand.Rand
}

const defaultHold = 1500 * time.Millisecond

// NewCelebration returns an idle celebration presenting through sink.
func NewCelebration(sched Scheduler, sink Celebrator) *Celebration {
	return &Celebration{
		Hold:  defaultHold,
		sched: sched,
		sink:  sink,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Trigger starts a celebration unless one is already running. It reports
// whether a new one was started.
func (c *Celebration) Trigger() bool {
	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		return false
	}
	c.active = true
	emoji := Emojis[c.rnd.Intn(len(Emojis))]
	c.mu.Unlock()

	c.sink.Celebrate(emoji)
	c.sched.Schedule(c.Hold, func(time.Time) {
		c.mu.Lock()
		c.active = false
		c.mu.Unlock()
		c.sink.Dismiss()
	}, false)
	return true
}

// Active reports whether a celebration is running.
func (c *Celebration) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
