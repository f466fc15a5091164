package morph

import (
	"image"
	"image/color"
	"sort"
	"time"

	"golang.org/x/image/draw"
)

// Feature points of the two cat portraits the morph was first tuned on.
var (
	catSource = []Feature{
		NewFeature(103, 99), NewFeature(135, 99), NewFeature(77, 93), NewFeature(138, 61),
		NewFeature(85, 58), NewFeature(107, 75), NewFeature(117, 37), NewFeature(123, 79),
		NewFeature(93, 78), NewFeature(126, 61), NewFeature(69, 56),
	}
	catTarget = []Feature{
		NewFeature(103, 99), NewFeature(135, 86), NewFeature(71, 78), NewFeature(145, 61),
		NewFeature(86, 56), NewFeature(107, 75), NewFeature(117, 37), NewFeature(126, 78),
		NewFeature(91, 75), NewFeature(126, 61), NewFeature(69, 56),
	}
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func catPair(w, h int) *Pair {
	p := NewPair(catSource, catTarget, nil)
	p.Size.Set(float64(w), float64(h))
	p.A = NewRaster(solid(w, h, color.NRGBA{R: 255, A: 255}))
	p.B = NewRaster(solid(w, h, color.NRGBA{B: 255, A: 255}))
	return p
}

type blitCall struct {
	s, d Corners
}

// recordingBlitter remembers every triangle it was asked to draw.
type recordingBlitter struct {
	calls []blitCall
}

func (r *recordingBlitter) DrawTriangle(_ draw.Image, _ image.Image, s, d Corners) {
	r.calls = append(r.calls, blitCall{s, d})
}

// manualScheduler runs jobs only when the test advances its clock.
type manualScheduler struct {
	now  time.Time
	next Handle
	jobs map[Handle]*manualJob
}

type manualJob struct {
	period time.Duration
	fn     func(time.Time)
	repeat bool
	due    time.Time
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{
		now:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		jobs: make(map[Handle]*manualJob),
	}
}

func (s *manualScheduler) Schedule(period time.Duration, fn func(time.Time), repeat bool) Handle {
	s.next++
	s.jobs[s.next] = &manualJob{period: period, fn: fn, repeat: repeat, due: s.now.Add(period)}
	return s.next
}

func (s *manualScheduler) Cancel(h Handle) {
	delete(s.jobs, h)
}

// Advance moves the clock forward by d, firing every job that falls due on
// the way in time order.
func (s *manualScheduler) Advance(d time.Duration) {
	target := s.now.Add(d)
	for {
		var (
			handles []Handle
			first   time.Time
		)
		for h, j := range s.jobs {
			if j.due.After(target) {
				continue
			}
			if len(handles) == 0 || j.due.Before(first) {
				first = j.due
			}
			handles = append(handles, h)
		}
		if len(handles) == 0 {
			break
		}
		sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

		for _, h := range handles {
			j, ok := s.jobs[h]
			if !ok || !j.due.Equal(first) {
				continue
			}
			s.now = j.due
			if j.repeat {
				j.due = j.due.Add(j.period)
			} else {
				delete(s.jobs, h)
			}
			j.fn(s.now)
		}
	}
	s.now = target
}

type constSignal float64

func (c constSignal) Rate() float64 { return float64(c) }
