package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"gltf-sketch/internal/anim"
	"gltf-sketch/internal/assets"
	"gltf-sketch/internal/postfx"
	"gltf-sketch/internal/scene"
)

// DefaultPath is the sketch config file, relative to the process working directory.
const DefaultPath = "config/sketch.yaml"

// Sketch variants.
const (
	// VariantBasic renders the model in flat unlit orange (static reflection when an envmap is
	// configured) with no bloom and no tone mapping.
	VariantBasic = "basic"
	// VariantRotating adds a rotating reflection, bloom and exposure tone mapping.
	VariantRotating = "rotating"
)

// Window holds the initial window size and frame pacing.
type Window struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

// Prefs is everything a sketch reads at startup.
type Prefs struct {
	Variant    string            `yaml:"variant"`
	Model      string            `yaml:"model"`
	EnvMap     string            `yaml:"envmap"`
	CacheDir   string            `yaml:"cache_dir"`
	LogPath    string            `yaml:"log_path"`
	Step       float64           `yaml:"step"`
	ShowFPS    bool              `yaml:"show_fps"`
	ClearColor [3]uint8          `yaml:"clear_color"`
	Camera     scene.Camera      `yaml:"camera"`
	Window     Window            `yaml:"window"`
	Env        assets.EnvOptions `yaml:"environment"`
	Post       postfx.Settings   `yaml:"post"`
}

// Default returns preferences for variant. The basic variant is a 70° camera two units back on
// +Z over a near-black clear colour, stepping time by anim.DefaultStep. The rotating variant
// uses a closer 45° camera, a finer step, an environment map, bloom and tone mapping.
func Default(variant string) Prefs {
	p := Prefs{
		Variant:    variant,
		Model:      "assets/models/DamagedHelmet.glb",
		CacheDir:   "assets/cache",
		LogPath:    "logs/sketch.txt",
		Step:       anim.DefaultStep,
		ClearColor: [3]uint8{0x01, 0x01, 0x01},
		Camera: scene.Camera{
			Position: scene.Vec3{0, 0, 2},
			Up:       scene.Vec3{0, 1, 0},
			Fovy:     70,
			Aspect:   1,
			Near:     0.001,
			Far:      1000,
		},
		Window: Window{Width: 1280, Height: 720, Title: "gltf sketch", TargetFPS: 60},
		Env:    assets.DefaultEnvOptions(),
		Post:   postfx.Default(),
	}
	if variant == VariantRotating {
		p.EnvMap = "assets/env/royal_esplanade.png"
		p.Step = 0.01
		p.ClearColor = [3]uint8{20, 20, 24}
		p.Camera = scene.DefaultCamera()
		p.Post.Bloom.Enabled = true
		p.Post.ToneMapping = true
	}
	return p
}

// Load resolves the variant (SKETCH_VARIANT, then the file's variant key, then the variant
// argument), then returns Default(resolved) overlaid with the YAML file at path and with SKETCH_*
// environment variables (a .env file next to the working directory is read first).
// A missing file is not an error. A malformed file returns the defaults and the parse error.
func Load(path, variant string) (Prefs, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Default(variant), fmt.Errorf("config: %w", err)
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		data = nil
	case err != nil:
		return Default(variant), fmt.Errorf("config: %w", err)
	}
	var head struct {
		Variant string `yaml:"variant"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Default(variant), fmt.Errorf("config %s: %w", path, err)
	}
	switch {
	case os.Getenv("SKETCH_VARIANT") != "":
		variant = os.Getenv("SKETCH_VARIANT")
	case head.Variant != "":
		variant = head.Variant
	}

	p := Default(variant)
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(variant), fmt.Errorf("config %s: %w", path, err)
	}
	if err := applyEnv(&p); err != nil {
		return Default(variant), fmt.Errorf("config: %w", err)
	}
	p.Post = p.Post.Clamp()
	return p, p.Validate()
}

// envOverrides mirrors the Prefs fields that may be set from the environment.
type envOverrides struct {
	Variant  string
	Model    string
	EnvMap   string
	CacheDir string
}

func applyEnv(p *Prefs) error {
	o := envOverrides{
		Variant:  os.Getenv("SKETCH_VARIANT"),
		Model:    os.Getenv("SKETCH_MODEL"),
		EnvMap:   os.Getenv("SKETCH_ENVMAP"),
		CacheDir: os.Getenv("SKETCH_CACHE"),
	}
	return copier.CopyWithOption(p, &o, copier.Option{IgnoreEmpty: true})
}

// Validate reports the first unusable setting.
func (p Prefs) Validate() error {
	switch {
	case p.Variant != VariantBasic && p.Variant != VariantRotating:
		return fmt.Errorf("config: unknown variant %q", p.Variant)
	case p.Model == "":
		return errors.New("config: model is required")
	case p.Variant == VariantRotating && p.EnvMap == "":
		return errors.New("config: rotating variant needs an envmap")
	case p.Window.Width <= 0 || p.Window.Height <= 0:
		return fmt.Errorf("config: bad window size %dx%d", p.Window.Width, p.Window.Height)
	case p.Step <= 0:
		return fmt.Errorf("config: step must be positive, got %g", p.Step)
	case p.Camera.Fovy <= 0 || p.Camera.Fovy >= 180:
		return fmt.Errorf("config: camera fovy must be in (0, 180), got %g", p.Camera.Fovy)
	case p.Camera.Near <= 0 || p.Camera.Far <= p.Camera.Near:
		return fmt.Errorf("config: camera needs 0 < near < far, got %g..%g", p.Camera.Near, p.Camera.Far)
	}
	return nil
}

// Save writes p as YAML to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
