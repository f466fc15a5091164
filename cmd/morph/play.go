package main

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/esimov/morph"
	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

// console prints status lines; in raw mode a bare newline does not return
// the carriage, so every line ends with \r\n.
type console struct {
	mu sync.Mutex
	au aurora.Aurora
}

func (c *console) line(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r"+format+"\x1b[K\r\n", args...)
}

func (c *console) status(format string, args ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r"+format+"\x1b[K", args...)
}

func (c *console) Celebrate(emoji string) {
	c.line("%s", c.au.Magenta(emoji+" "+emoji+" "+emoji))
}

func (c *console) Dismiss() {}

// lastFrame keeps a copy of the most recent frame.
type lastFrame struct {
	mu  sync.Mutex
	img *image.NRGBA
}

func (l *lastFrame) Frame(img image.Image, amount float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.img == nil || l.img.Bounds() != img.Bounds() {
		l.img = image.NewNRGBA(img.Bounds())
	}
	draw.Draw(l.img, l.img.Bounds(), img, img.Bounds().Min, draw.Src)
}

func (l *lastFrame) image() image.Image {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.img
}

func runPlay(pair *morph.Pair, au aurora.Aurora, logger *log.Logger) error {
	m, err := morph.NewMorph(pair, nil)
	if err != nil {
		return err
	}
	out := &console{au: au}
	clicks := morph.NewClickRate(time.Second)
	sched := morph.NewTickerScheduler()
	party := morph.NewCelebration(sched, out)
	frame := &lastFrame{}

	opts := morph.DefaultOptions()
	opts.Logger = logger
	sink := morph.FrameSinkFunc(func(img image.Image, amount float64) {
		frame.Frame(img, amount)
		out.status("amount %s  rate %s/s  total %s",
			au.Green(fmt.Sprintf("%.3f", amount)),
			au.Yellow(fmt.Sprintf("%.1f", clicks.Rate())),
			au.Cyan(clicks.Total()))
	})
	ctrl := morph.NewController(m, sched, clicks, sink, party, opts)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, state)
	}

	quit := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(quit) }) }

	go func() {
		buf := make([]byte, 1)
		for {
			if _, err := os.Stdin.Read(buf); err != nil {
				stop()
				return
			}
			switch buf[0] {
			case 'q', 3: // 3 is ctrl-c in raw mode
				stop()
				return
			default:
				clicks.Hit()
			}
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	var timeout <-chan time.Time
	if *duration > 0 {
		timeout = time.After(*duration)
	}

	out.line("Press any key to morph, %s to quit", au.Bold("q"))
	ctrl.Start()
	select {
	case <-quit:
	case <-sig:
	case <-timeout:
	}
	ctrl.Stop()

	stats := ctrl.Stats()
	out.line("%s ticks, %s frames", au.Green(stats.Ticks), au.Green(stats.Frames))

	img := frame.image()
	if img == nil {
		return nil
	}
	if err := savePNG(*playOut, img); err != nil {
		return err
	}
	out.line("Saved as: %s %s", *playOut, au.Green("✓"))
	showPreview(*playOut)
	return nil
}
