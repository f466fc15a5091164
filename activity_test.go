package morph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClickRate(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClickRate(0)
	c.now = func() time.Time { return now }

	assert.Zero(t, c.Rate())
	for i := 0; i < 4; i++ {
		c.Hit()
		now = now.Add(100 * time.Millisecond)
	}
	assert.Equal(t, 4.0, c.Rate())

	now = now.Add(750 * time.Millisecond)
	assert.Equal(t, 2.0, c.Rate(), "the first two hits left the window")

	now = now.Add(time.Second)
	assert.Zero(t, c.Rate())
	assert.Equal(t, 4, c.Total())
}

func TestClickRateWindow(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewClickRate(500 * time.Millisecond)
	c.now = func() time.Time { return now }

	c.Hit()
	c.Hit()
	assert.Equal(t, 4.0, c.Rate())
}

func TestCelebrationIsNotReentrant(t *testing.T) {
	sched := newManualScheduler()
	party := &partyCounter{}
	c := NewCelebration(sched, party)

	assert.True(t, c.Trigger())
	assert.False(t, c.Trigger())
	assert.Equal(t, 1, party.celebrated)

	sched.Advance(c.Hold - time.Millisecond)
	assert.True(t, c.Active())
	assert.False(t, c.Trigger())

	sched.Advance(time.Millisecond)
	assert.False(t, c.Active())
	assert.Equal(t, 1, party.dismissed)
	assert.True(t, c.Trigger())
	assert.Equal(t, 2, party.celebrated)
}
