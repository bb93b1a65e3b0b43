package stopwatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsedWithFakeClock(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	sw := StartWithClock(clock)
	now = now.Add(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, sw.Elapsed())
	assert.InDelta(t, 1.5, sw.ElapsedSeconds(), 1e-9)

	sw.Reset()
	now = now.Add(time.Second)
	assert.Equal(t, time.Second, sw.Elapsed())
}

func TestTime(t *testing.T) {
	wantErr := errors.New("boom")
	d, err := Time(func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
	assert.GreaterOrEqual(t, d, time.Duration(0))
}
