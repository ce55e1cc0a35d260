package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh the overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug draws the FPS counter and sketch status. All overlays are off by default.
type Debug struct {
	ShowFPS    bool
	ShowStatus bool
	frameCount uint32
	lastFps    string
	lastStatus string
}

// New returns a Debug overlay with everything hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowStatus sets whether the sketch status line is drawn under the FPS counter.
func (d *Debug) SetShowStatus(show bool) {
	d.ShowStatus = show
}

// Draw renders the enabled overlays. status is only called when the status text is refreshed,
// every updateInterval frames. Call after the scene and console in the draw loop.
func (d *Debug) Draw(status func() string) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFps == "") || (d.ShowStatus && d.lastStatus == "") {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(fpsPadding)
	if d.ShowFPS {
		if update {
			d.lastFps = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFps, screenW, y)
		y += fpsLineHeight
	}
	if d.ShowStatus {
		if update {
			d.lastStatus = status()
		}
		drawRight(d.lastStatus, screenW, y)
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, rl.Green)
}
