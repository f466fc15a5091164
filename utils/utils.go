package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

// Colorizer returns an aurora instance which only emits escape codes when fd
// is a terminal.
func Colorizer(fd int) aurora.Aurora {
	return aurora.NewAurora(term.IsTerminal(fd))
}

// FormatTime formats time.Duration output to a human readable value.
func FormatTime(d time.Duration) string {
	if d.Seconds() < 60.0 {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d.Minutes() < 60.0 {
		remainingSeconds := math.Mod(d.Seconds(), 60)
		return fmt.Sprintf("%dm:%ds", int64(d.Minutes()), int64(remainingSeconds))
	}
	remainingMinutes := math.Mod(d.Minutes(), 60)
	remainingSeconds := math.Mod(d.Seconds(), 60)
	return fmt.Sprintf("%dh:%dm:%ds",
		int64(d.Hours()), int64(remainingMinutes), int64(remainingSeconds))
}
