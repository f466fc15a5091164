package morph

import (
	"sync"
	"time"
)

// Handle identifies a scheduled job.
type Handle uint64

// Scheduler runs callbacks periodically. The callback receives the time of
// the tick.
type Scheduler interface {
	Schedule(period time.Duration, fn func(now time.Time), repeat bool) Handle
	Cancel(h Handle)
}

// TickerScheduler is a Scheduler backed by time.Ticker. Each job runs on its
// own goroutine, so the ticks of one job never overlap.
type TickerScheduler struct {
	mu   sync.Mutex
	next Handle
	jobs map[Handle]*job
}

type job struct {
	mu      sync.Mutex
	stopped bool
	done    chan struct{}
	once    sync.Once
}

// NewTickerScheduler returns an empty scheduler.
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{jobs: make(map[Handle]*job)}
}

// Schedule implements Scheduler.
func (s *TickerScheduler) Schedule(period time.Duration, fn func(now time.Time), repeat bool) Handle {
	j := &job{done: make(chan struct{})}

	s.mu.Lock()
	s.next++
	h := s.next
	s.jobs[h] = j
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		defer s.forget(h)

		for {
			select {
			case <-j.done:
				return
			case now := <-ticker.C:
				j.mu.Lock()
				if !j.stopped {
					fn(now)
				}
				j.mu.Unlock()
				if !repeat {
					return
				}
			}
		}
	}()
	return h
}

// Cancel implements Scheduler. A tick already in flight runs to completion
// before Cancel returns; no further tick starts afterwards. Cancel must not
// be called from inside the job's own callback.
func (s *TickerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	j, ok := s.jobs[h]
	s.mu.Unlock()
	if !ok {
		return
	}
	j.once.Do(func() { close(j.done) })

	j.mu.Lock()
	j.stopped = true
	j.mu.Unlock()
}

func (s *TickerScheduler) forget(h Handle) {
	s.mu.Lock()
	delete(s.jobs, h)
	s.mu.Unlock()
}
