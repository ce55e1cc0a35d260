package scene

import "github.com/chewxy/math32"

const (
	// maxPitch keeps the orbit away from the poles where the view matrix degenerates.
	maxPitch = math32.Pi/2 - 0.01
	// dragSensitivity converts pixels of mouse drag into radians.
	dragSensitivity = 0.005
	// zoomStep scales distance per wheel notch.
	zoomStep = 0.1
	// frameMargin is how many bounding radii the camera sits from the target after Frame.
	frameMargin = 2.2
)

// Bounds is an axis-aligned box.
type Bounds struct {
	Min, Max Vec3
}

// Center returns the midpoint of b.
func (b Bounds) Center() Vec3 {
	return Vec3{(b.Min[0] + b.Max[0]) / 2, (b.Min[1] + b.Max[1]) / 2, (b.Min[2] + b.Max[2]) / 2}
}

// Radius returns half the diagonal of b.
func (b Bounds) Radius() float32 {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	dz := b.Max[2] - b.Min[2]
	return math32.Sqrt(dx*dx+dy*dy+dz*dz) / 2
}

// Orbit rotates the camera around its target. Yaw is measured around Y from +Z, pitch from the XZ plane.
type Orbit struct {
	Target      Vec3
	Yaw         float32
	Pitch       float32
	Distance    float32
	MinDistance float32
	MaxDistance float32
}

// NewOrbit derives an orbit from cam so that Apply reproduces cam's position.
func NewOrbit(cam Camera) *Orbit {
	dx := cam.Position[0] - cam.Target[0]
	dy := cam.Position[1] - cam.Target[1]
	dz := cam.Position[2] - cam.Target[2]
	dist := math32.Sqrt(dx*dx + dy*dy + dz*dz)
	o := &Orbit{
		Target:      cam.Target,
		Distance:    dist,
		MinDistance: cam.Near * 2,
		MaxDistance: cam.Far / 2,
	}
	if dist > 0 {
		o.Yaw = math32.Atan2(dx, dz)
		o.Pitch = math32.Asin(dy / dist)
	}
	return o
}

// Drag rotates by a mouse delta in pixels.
func (o *Orbit) Drag(dx, dy float32) {
	o.Yaw -= dx * dragSensitivity
	o.Pitch += dy * dragSensitivity
	o.Pitch = min(max(o.Pitch, -maxPitch), maxPitch)
}

// Zoom moves toward (positive wheel) or away from the target.
func (o *Orbit) Zoom(wheel float32) {
	if wheel == 0 {
		return
	}
	o.Distance *= 1 - wheel*zoomStep
	o.clampDistance()
}

// Frame centres the orbit on b and backs off so the whole box is visible.
func (o *Orbit) Frame(b Bounds) {
	r := b.Radius()
	if r <= 0 {
		return
	}
	o.Target = b.Center()
	o.Distance = r * frameMargin
	o.clampDistance()
}

func (o *Orbit) clampDistance() {
	if o.MinDistance > 0 && o.Distance < o.MinDistance {
		o.Distance = o.MinDistance
	}
	if o.MaxDistance > 0 && o.Distance > o.MaxDistance {
		o.Distance = o.MaxDistance
	}
}

// Apply writes the orbit position and target into cam.
func (o *Orbit) Apply(cam *Camera) {
	cp := math32.Cos(o.Pitch)
	cam.Target = o.Target
	cam.Position = Vec3{
		o.Target[0] + o.Distance*cp*math32.Sin(o.Yaw),
		o.Target[1] + o.Distance*math32.Sin(o.Pitch),
		o.Target[2] + o.Distance*cp*math32.Cos(o.Yaw),
	}
}
