package app

import (
	"errors"
	"flag"

	"go.uber.org/zap"

	"gltf-sketch/internal/commands"
)

// registerCommands exposes the runtime controls on the console: play/stop plus the exposure
// and bloom parameters that the browser sketches drove with sliders.
func (s *Sketch) registerCommands() *commands.Registry {
	r := commands.NewRegistry()

	r.RegisterFunc("play", "resume the animation loop", func() error {
		if !s.Play() {
			s.log.Info("already playing")
		}
		return nil
	})
	r.RegisterFunc("stop", "pause the animation loop", func() error {
		s.Stop()
		return nil
	})
	r.RegisterFunc("toggle", "play/pause", func() error {
		s.log.Info("loop " + s.Toggle().String())
		return nil
	})

	r.Register("exposure", "-value N: tone mapping exposure", func(fs *flag.FlagSet) func() error {
		value := fs.Float64("value", 0, "tone mapping exposure")
		return func() error {
			if !visited(fs, "value") {
				return errors.New("exposure: -value is required")
			}
			p := s.Post()
			p.Exposure = float32(*value)
			s.SetPost(p)
			s.log.Info("exposure", zap.Float32("value", s.Post().Exposure))
			return nil
		}
	})

	r.Register("tonemap", "-enabled=BOOL: ACES tone mapping with exposure", func(fs *flag.FlagSet) func() error {
		enabled := fs.Bool("enabled", true, "apply exposure and tone mapping")
		return func() error {
			p := s.Post()
			p.ToneMapping = *enabled
			s.SetPost(p)
			s.log.Info("tone mapping", zap.Bool("enabled", p.ToneMapping))
			return nil
		}
	})

	r.Register("bloom", "[-enabled] [-strength N] [-threshold N] [-radius N]", func(fs *flag.FlagSet) func() error {
		enabled := fs.Bool("enabled", true, "enable the bloom pass")
		strength := fs.Float64("strength", 0, "bloom strength")
		threshold := fs.Float64("threshold", 0, "luminance threshold")
		radius := fs.Float64("radius", 0, "blur radius")
		return func() error {
			p := s.Post()
			fs.Visit(func(f *flag.Flag) {
				switch f.Name {
				case "enabled":
					p.Bloom.Enabled = *enabled
				case "strength":
					p.Bloom.Strength = float32(*strength)
				case "threshold":
					p.Bloom.Threshold = float32(*threshold)
				case "radius":
					p.Bloom.Radius = float32(*radius)
				}
			})
			s.SetPost(p)
			b := s.Post().Bloom
			s.log.Info("bloom",
				zap.Bool("enabled", b.Enabled),
				zap.Float32("strength", b.Strength),
				zap.Float32("threshold", b.Threshold),
				zap.Float32("radius", b.Radius))
			return nil
		}
	})

	r.RegisterFunc("status", "loop state, time and scene", func() error {
		s.log.Info("status",
			zap.String("variant", s.prefs.Variant),
			zap.Stringer("state", s.loop.State()),
			zap.Float64("time", s.loop.Time()),
			zap.Uint64("frames", s.loop.Frames()),
			zap.Int("nodes", s.scene.Len()),
			zap.Stringer("mode", s.mode))
		return nil
	})
	r.RegisterFunc("help", "list commands", func() error {
		for _, line := range r.Help() {
			s.log.Info(line)
		}
		return nil
	})
	return r
}

// visited reports whether name was given on the parsed line.
func visited(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
