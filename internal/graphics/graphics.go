package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the window Run opens.
type Window struct {
	Width     int
	Height    int
	Title     string
	TargetFPS int
}

// Run opens a resizable window and drives the main loop. Each frame it reports a size change
// through onResize, calls update (input, asset attachment), then draw between BeginDrawing and
// EndDrawing. GPU resources may only be created from update and draw, and must be released in
// onClose, which runs while the GL context still exists.
func Run(w Window, onResize func(width, height int), update, draw, onClose func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // ESC opens the console; close via window button
	if w.TargetFPS > 0 {
		rl.SetTargetFPS(int32(w.TargetFPS))
	}

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			onResize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		draw()
		rl.EndDrawing()
	}
	if onClose != nil {
		onClose()
	}
}
