package morph

import (
	"image"
	"io"
	"log"
	"sync"
	"time"
)

// FrameSink receives every rendered frame together with the expression
// amount it was rendered at. The image is reused for the next frame.
type FrameSink interface {
	Frame(img image.Image, amount float64)
}

// FrameSinkFunc adapts a plain function to the FrameSink interface.
type FrameSinkFunc func(img image.Image, amount float64)

// Frame calls f(img, amount).
func (f FrameSinkFunc) Frame(img image.Image, amount float64) {
	f(img, amount)
}

// Options configures a Controller.
type Options struct {
	// Period is the scheduler tick period.
	Period time.Duration
	// FrameInterval is the minimum scheduler time between two rendered
	// frames. Half a period of slack is allowed to absorb tick jitter.
	FrameInterval time.Duration

	// Rise is added to the expression amount on every tick with activity,
	// Fall is subtracted on every tick without.
	Rise, Fall float64
	// Max and Min bound the expression amount.
	Max, Min float64
	// Initial is the amount a fresh animation starts from.
	Initial float64
	// CelebrateAbove is the activity rate above which a celebration fires.
	CelebrateAbove float64

	Logger *log.Logger
}

// DefaultOptions returns the options used when none are given: a 60Hz
// scheduler rendering at 30fps.
func DefaultOptions() Options {
	return Options{
		Period:         time.Second / 60,
		FrameInterval:  time.Second / 30,
		Rise:           0.005,
		Fall:           0.01,
		Max:            0.9,
		Min:            0.01,
		Initial:        0.01,
		CelebrateAbove: 8,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Period <= 0 {
		o.Period = def.Period
		if o.FrameInterval <= 0 {
			o.FrameInterval = def.FrameInterval
		}
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = 2 * o.Period
	}
	if o.Rise <= 0 {
		o.Rise = def.Rise
	}
	if o.Fall <= 0 {
		o.Fall = def.Fall
	}
	if o.Min <= 0 {
		o.Min = def.Min
	}
	if o.Max <= 0 {
		o.Max = def.Max
	}
	if o.Max < o.Min {
		o.Max = o.Min
	}
	if o.Initial <= 0 {
		o.Initial = o.Min
	}
	if o.CelebrateAbove <= 0 {
		o.CelebrateAbove = def.CelebrateAbove
	}
	return o
}

// Stats is a snapshot of an animation run.
type Stats struct {
	Ticks  int
	Frames int
	Amount float64
}

// animation is the state of one run. It is created by Start and dropped by
// Stop; ticks of a run never overlap.
type animation struct {
	mu sync.Mutex

	amount    float64
	rate      float64
	lastFrame time.Time
	rendered  bool
	stats     Stats
}

// Controller drives a Morph from a Scheduler. The expression amount eases
// towards Max while the activity signal is positive and back towards Min
// when it is not, and every rendered frame uses it as the morph parameter.
type Controller struct {
	opts   Options
	morph  *Morph
	sched  Scheduler
	signal ActivitySignal
	sink   FrameSink
	party  *Celebration
	logger *log.Logger

	mu      sync.Mutex
	running bool
	handle  Handle
	anim    *animation
}

// NewController returns an idle controller. party may be nil. Zero fields
// of opts take their DefaultOptions value; a zero FrameInterval renders
// every other tick and a zero Initial starts at Min.
func NewController(m *Morph, sched Scheduler, signal ActivitySignal, sink FrameSink, party *Celebration, opts Options) *Controller {
	opts = opts.withDefaults()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Controller{
		opts:   opts,
		morph:  m,
		sched:  sched,
		signal: signal,
		sink:   sink,
		party:  party,
		logger: logger,
	}
}

// Start begins a new animation run, cancelling the current one first.
func (c *Controller) Start() {
	c.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	anim := &animation{amount: c.opts.Initial}
	anim.stats.Amount = anim.amount
	c.anim = anim
	c.running = true
	c.handle = c.sched.Schedule(c.opts.Period, func(now time.Time) {
		c.tick(anim, now)
	}, true)
}

// Stop cancels the running animation. A tick already in flight completes,
// no further tick fires. Stopping an idle controller does nothing.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	h := c.handle
	c.running = false
	c.mu.Unlock()

	c.sched.Cancel(h)
}

// Running reports whether an animation is scheduled.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Stats returns the counters of the current or last run.
func (c *Controller) Stats() Stats {
	c.mu.Lock()
	anim := c.anim
	c.mu.Unlock()
	if anim == nil {
		return Stats{}
	}
	anim.mu.Lock()
	defer anim.mu.Unlock()
	return anim.stats
}

func (c *Controller) tick(a *animation, now time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stats.Ticks++
	a.rate = c.signal.Rate()
	if a.rate > 0 {
		a.amount = Min(a.amount+c.opts.Rise, c.opts.Max)
	} else {
		a.amount = Max(a.amount-c.opts.Fall, c.opts.Min)
	}
	a.stats.Amount = a.amount

	if c.party != nil && a.rate > c.opts.CelebrateAbove {
		c.party.Trigger()
	}

	if a.rendered && now.Before(a.lastFrame.Add(c.opts.FrameInterval-c.opts.Period/2)) {
		return
	}
	a.rendered = true
	a.lastFrame = now

	img, err := c.morph.Render(a.amount)
	if err != nil {
		c.logger.Printf("frame dropped: %v", err)
		return
	}
	a.stats.Frames++
	if c.sink != nil {
		c.sink.Frame(img, a.amount)
	}
}
