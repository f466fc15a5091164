package utils

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/logrusorgru/aurora"
)

// Spinner initializes the process indicator.
type Spinner struct {
	out      io.Writer
	au       aurora.Aurora
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSpinner instantiates a new Spinner writing to out.
func NewSpinner(out io.Writer, au aurora.Aurora) *Spinner {
	return &Spinner{out: out, au: au}
}

// Start starts the process indicator.
func (s *Spinner) Start(message string) {
	s.stopChan = make(chan struct{})
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		for {
			for _, r := range `-\|/` {
				select {
				case <-s.stopChan:
					fmt.Fprint(s.out, "\r")
					return
				default:
					fmt.Fprintf(s.out, "\r%s %s", message, s.au.Green(string(r)))
					time.Sleep(time.Millisecond * 100)
				}
			}
		}
	}()
}

// Stop stops the process indicator and waits for it to clear the line.
func (s *Spinner) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
