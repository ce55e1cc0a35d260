package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTenTicksWhilePlaying(t *testing.T) {
	draws := 0
	l := New(0.01, func(float64) { draws++ })
	for i := 0; i < 10; i++ {
		require.True(t, l.Tick())
	}
	assert.InDelta(t, 10*0.01, l.Time(), 1e-12)
	assert.Equal(t, 10, draws)
	assert.EqualValues(t, 10, l.Frames())
}

func TestStopHaltsFrames(t *testing.T) {
	draws := 0
	l := New(0.01, func(float64) { draws++ })
	l.Tick()
	before := l.Time()
	draws = 0

	assert.True(t, l.Stop())
	for i := 0; i < 5; i++ {
		assert.False(t, l.Tick())
	}
	assert.Equal(t, before, l.Time())
	assert.Zero(t, draws)
	assert.Equal(t, Stopped, l.State())
}

func TestPlayWhilePlayingIsNoop(t *testing.T) {
	draws := 0
	l := New(0.5, func(float64) { draws++ })
	assert.False(t, l.Play())
	assert.False(t, l.Play())
	l.Tick()
	assert.Equal(t, 1, draws)
	assert.Equal(t, 0.5, l.Time())
}

func TestPlayResumesAfterStop(t *testing.T) {
	var seen []float64
	l := New(0.25, func(t float64) { seen = append(seen, t) })
	l.Tick()
	l.Stop()
	l.Tick()
	assert.True(t, l.Play())
	l.Tick()
	assert.Equal(t, []float64{0.25, 0.5}, seen)
}

func TestTimeStrictlyIncreases(t *testing.T) {
	l := New(DefaultStep, nil)
	prev := l.Time()
	for i := 0; i < 100; i++ {
		l.Tick()
		assert.Greater(t, l.Time(), prev)
		assert.InDelta(t, DefaultStep, l.Time()-prev, 1e-12)
		prev = l.Time()
	}
}

func TestToggleAndDefaults(t *testing.T) {
	l := New(0, nil)
	assert.Equal(t, DefaultStep, l.Step())
	assert.True(t, l.Playing())
	assert.Equal(t, Stopped, l.Toggle())
	assert.Equal(t, Playing, l.Toggle())
	assert.Equal(t, "playing", l.State().String())
	assert.Equal(t, "stopped", Stopped.String())
}
