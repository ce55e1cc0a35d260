package postfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurfaceRebuildsOnlyOnSizeChange(t *testing.T) {
	var s Surface
	assert.False(t, s.Stale(), "no size yet")
	_, _, ok := s.Present()
	assert.False(t, ok)

	s.Resize(800, 600)
	assert.True(t, s.Stale())
	s.Built()
	assert.False(t, s.Stale())

	s.Resize(800, 0)
	assert.False(t, s.Stale(), "minimised window keeps the targets")
	w, h := s.Size()
	assert.Equal(t, [2]int{800, 600}, [2]int{w, h})

	s.Resize(1024, 768)
	assert.True(t, s.Stale())
	s.Resize(800, 600)
	assert.False(t, s.Stale(), "back to the built size")
}

func TestSurfacePresentStretchesStaleOutput(t *testing.T) {
	var s Surface
	s.Resize(800, 600)
	s.Built()
	s.Resize(1600, 900)

	src, dst, ok := s.Present()
	assert.True(t, ok)
	assert.Equal(t, [2]int{800, 600}, src)
	assert.Equal(t, [2]int{1600, 900}, dst)

	s.Built()
	src, dst, _ = s.Present()
	assert.Equal(t, src, dst)
}

func TestSurfaceBloomSize(t *testing.T) {
	var s Surface
	s.Resize(1, 3)
	w, h := s.BloomSize()
	assert.Equal(t, [2]int{1, 1}, [2]int{w, h})
	s.Resize(1280, 720)
	w, h = s.BloomSize()
	assert.Equal(t, [2]int{640, 360}, [2]int{w, h})
}
