package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Controls is the pointer and keyboard input read once per frame.
type Controls struct {
	DragX, DragY float32
	Wheel        float32
	Toggle       bool
}

// ReadControls samples input. Drag is only reported while the left mouse button is held.
func ReadControls() Controls {
	var c Controls
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		c.DragX, c.DragY = d.X, d.Y
	}
	c.Wheel = rl.GetMouseWheelMove()
	c.Toggle = rl.IsKeyPressed(rl.KeySpace)
	return c
}
