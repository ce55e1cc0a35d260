package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopDrawable struct{ draws int }

func (d *nopDrawable) Draw() { d.draws++ }

func TestResizeSetsAspect(t *testing.T) {
	s := New()
	for _, tc := range []struct{ w, h int }{{800, 600}, {1920, 1080}, {300, 900}} {
		s.Resize(tc.w, tc.h)
		assert.InDelta(t, float32(tc.w)/float32(tc.h), s.Camera.Aspect, 1e-6)
	}
	s.Resize(1024, 0)
	assert.InDelta(t, float32(300)/900, s.Camera.Aspect, 1e-6)
}

func TestAddKeepsOrder(t *testing.T) {
	s := New()
	assert.Zero(t, s.Len())
	a, b := &Node{Name: "a", Drawable: &nopDrawable{}}, &Node{Name: "b", Drawable: &nopDrawable{}}
	s.Add(a)
	s.Add(b)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, []*Node{a, b}, s.Nodes())
}

func TestDefaultCamera(t *testing.T) {
	c := DefaultCamera()
	assert.Equal(t, float32(45), c.Fovy)
	assert.Equal(t, float32(0.25), c.Near)
	assert.Equal(t, float32(20), c.Far)
	assert.Equal(t, Vec3{0, 1, 0}, c.Up)
}

func TestOrbitRoundTripsCamera(t *testing.T) {
	cam := DefaultCamera()
	o := NewOrbit(cam)
	out := cam
	out.Position = Vec3{}
	o.Apply(&out)
	for i := range 3 {
		assert.InDelta(t, cam.Position[i], out.Position[i], 1e-4)
	}
}

func TestOrbitDragClampsPitch(t *testing.T) {
	o := NewOrbit(DefaultCamera())
	o.Drag(0, 1e6)
	assert.InDelta(t, maxPitch, o.Pitch, 1e-6)
	o.Drag(0, -1e7)
	assert.InDelta(t, -maxPitch, o.Pitch, 1e-6)

	yaw := o.Yaw
	o.Drag(100, 0)
	assert.InDelta(t, yaw-100*dragSensitivity, o.Yaw, 1e-6)
}

func TestOrbitZoomAndFrame(t *testing.T) {
	o := NewOrbit(DefaultCamera())
	d := o.Distance
	o.Zoom(1)
	assert.Less(t, o.Distance, d)
	o.Zoom(0)
	for range 100 {
		o.Zoom(1)
	}
	assert.Equal(t, o.MinDistance, o.Distance)
	for range 100 {
		o.Zoom(-5)
	}
	assert.Equal(t, o.MaxDistance, o.Distance)

	b := Bounds{Min: Vec3{-1, 0, -1}, Max: Vec3{1, 2, 1}}
	o.Frame(b)
	assert.Equal(t, Vec3{0, 1, 0}, o.Target)
	assert.InDelta(t, b.Radius()*frameMargin, o.Distance, 1e-5)

	o.Frame(Bounds{})
	assert.Equal(t, Vec3{0, 1, 0}, o.Target)
}

func TestOrbitWideDepthRange(t *testing.T) {
	cam := Camera{Position: Vec3{0, 0, 2}, Up: Vec3{0, 1, 0}, Fovy: 70, Aspect: 1, Near: 0.001, Far: 1000}
	o := NewOrbit(cam)
	assert.InDelta(t, 0.002, o.MinDistance, 1e-9)
	assert.InDelta(t, 500, o.MaxDistance, 1e-9)
	assert.InDelta(t, 2, o.Distance, 1e-6)

	for i := 0; i < 3; i++ {
		o.Zoom(-1000)
	}
	assert.InDelta(t, 500, o.Distance, 1e-6)
	for i := 0; i < 100; i++ {
		o.Zoom(9)
	}
	assert.InDelta(t, 0.002, o.Distance, 1e-9)

	o.Frame(Bounds{Min: Vec3{-0.5, 0, -0.5}, Max: Vec3{0.5, 1, 0.5}})
	o.Apply(&cam)
	assert.Equal(t, Vec3{0, 0.5, 0}, cam.Target)
	assert.Greater(t, cam.Position[2], float32(0.5))
}
