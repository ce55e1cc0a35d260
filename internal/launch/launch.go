// Package launch wires configuration, logging, the raylib backend and a sketch into a window.
package launch

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"gltf-sketch/internal/app"
	"gltf-sketch/internal/config"
	"gltf-sketch/internal/debug"
	"gltf-sketch/internal/graphics"
	"gltf-sketch/internal/logger"
	"gltf-sketch/internal/terminal"
)

// Run starts the sketch variant and blocks until its window closes.
func Run(variant string) error {
	prefs, err := config.Load(config.DefaultPath, variant)
	if err != nil {
		return err
	}
	log, err := logger.New(prefs.LogPath)
	if err != nil {
		return err
	}
	defer log.Close()

	c := prefs.ClearColor
	backend := graphics.NewBackend(rl.NewColor(c[0], c[1], c[2], 255))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := app.New(ctx, prefs, backend, app.DefaultLoaders(prefs.CacheDir, prefs.Env), log)
	defer s.Close()

	term := terminal.New(log, s.Commands())
	hud := debug.New()
	hud.SetShowFPS(prefs.ShowFPS)
	hud.SetShowStatus(prefs.ShowFPS)

	update := func() {
		term.Update()
		if !term.IsOpen() {
			c := graphics.ReadControls()
			if c.Toggle {
				log.Info("animation " + s.Toggle().String())
			}
			s.Orbit(c.DragX, c.DragY, c.Wheel)
		}
		s.Update()
	}
	draw := func() {
		s.Frame()
		hud.Draw(func() string { return app.FormatStatus(s.Status()) })
		term.Draw()
	}

	w := prefs.Window
	graphics.Run(graphics.Window{Width: w.Width, Height: w.Height, Title: w.Title, TargetFPS: w.TargetFPS}, s.Resize, update, draw, backend.Close)
	log.Info("sketch closed", zap.Int("errors", len(s.Errors())))
	return nil
}
