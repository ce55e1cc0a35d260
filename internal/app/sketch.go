package app

import (
	"context"

	"go.uber.org/zap"

	"gltf-sketch/internal/anim"
	"gltf-sketch/internal/assets"
	"gltf-sketch/internal/commands"
	"gltf-sketch/internal/config"
	"gltf-sketch/internal/logger"
	"gltf-sketch/internal/postfx"
	"gltf-sketch/internal/scene"
	"gltf-sketch/internal/shading"
)

// Backend is the GPU side of a sketch. All methods are called on the render thread.
type Backend interface {
	// SetSize resizes the drawing surface and any offscreen targets.
	SetSize(width, height int)
	LoadEnvironment(env *assets.EnvMap) error
	CompileMaterial(src shading.Source) (shading.Program, error)
	// UploadModel creates GPU resources for m drawn with prog. prog may be nil (library default material).
	UploadModel(m *assets.Model, prog shading.Program) (scene.Drawable, error)
	// Draw renders the scene through the post chain and presents the result.
	Draw(s *scene.Scene, post postfx.Settings)
	// Present shows the last drawn image again without rendering.
	Present()
}

// Loaders fetch assets off the render thread.
type Loaders struct {
	Model func(ctx context.Context, src string) (*assets.Model, error)
	Env   func(ctx context.Context, src string) (*assets.EnvMap, error)
}

// DefaultLoaders reads models and environment maps from disk or HTTP, caching downloads in cacheDir.
func DefaultLoaders(cacheDir string, opts assets.EnvOptions) Loaders {
	return Loaders{
		Model: func(ctx context.Context, src string) (*assets.Model, error) {
			return assets.LoadModel(ctx, src, cacheDir)
		},
		Env: func(ctx context.Context, src string) (*assets.EnvMap, error) {
			return assets.LoadEnvMap(ctx, src, cacheDir, opts)
		},
	}
}

// Sketch owns the scene, camera controls, animation loop and material of one running sketch.
// Construction starts the asset loads; Update attaches them once they settle, and Frame is
// called once per display refresh.
type Sketch struct {
	prefs   config.Prefs
	log     *logger.Logger
	backend Backend
	scene   *scene.Scene
	orbit   *scene.Orbit
	loop    *anim.Loop
	post    postfx.Settings
	mode    shading.Mode
	reg     *commands.Registry

	width, height int

	cancel   context.CancelFunc
	env      *assets.Future[*assets.EnvMap]
	model    *assets.Future[*assets.Model]
	envDone  bool
	attached bool
	material *shading.Material
	errs     []error
}

// ModeFor picks the material mode of a variant. The basic sketch is flat unlit unless an
// environment map is configured, in which case it reflects statically.
func ModeFor(p config.Prefs) shading.Mode {
	switch {
	case p.Variant == config.VariantRotating:
		return shading.ModeRotating
	case p.EnvMap != "":
		return shading.ModeStatic
	}
	return shading.ModeFlat
}

// New bootstraps a sketch: camera, controls, post chain and loop, an initial Resize to the
// configured window size, and background loads for the environment (when the mode reflects)
// and the model.
func New(ctx context.Context, prefs config.Prefs, backend Backend, loaders Loaders, log *logger.Logger) *Sketch {
	ctx, cancel := context.WithCancel(ctx)
	s := &Sketch{
		prefs:   prefs,
		log:     log,
		backend: backend,
		scene:   scene.New(),
		post:    prefs.Post.Clamp(),
		mode:    ModeFor(prefs),
		cancel:  cancel,
	}
	if prefs.Camera.Fovy > 0 {
		s.scene.Camera = prefs.Camera
	}
	s.orbit = scene.NewOrbit(s.scene.Camera)
	s.loop = anim.New(prefs.Step, s.frame)
	s.Resize(prefs.Window.Width, prefs.Window.Height)

	if s.mode.Reflective() {
		s.env = assets.Go(ctx, func(ctx context.Context) (*assets.EnvMap, error) {
			return loaders.Env(ctx, prefs.EnvMap)
		})
	} else {
		s.envDone = true
	}
	s.model = assets.Go(ctx, func(ctx context.Context) (*assets.Model, error) {
		return loaders.Model(ctx, prefs.Model)
	})
	s.reg = s.registerCommands()
	log.Info("sketch started", zap.String("variant", prefs.Variant), zap.Stringer("mode", s.mode))
	return s
}

// Resize updates the camera aspect and the surface size. A zero or negative size (minimised
// window) is ignored so the size always matches the surface.
func (s *Sketch) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.scene.Resize(width, height)
	s.width, s.height = width, height
	s.backend.SetSize(width, height)
}

// Update attaches loads that have finished. The environment is settled before the material is
// built so a failed environment can downgrade the reflection mode. Never blocks.
func (s *Sketch) Update() {
	if !s.envDone {
		env, ok, err := s.env.Poll()
		if !ok {
			return
		}
		s.envDone = true
		s.attachEnv(env, err)
	}
	if s.attached {
		return
	}
	m, ok, err := s.model.Poll()
	if !ok {
		return
	}
	s.attached = true
	if err != nil {
		s.fail("model load failed", err)
		return
	}
	s.attachModel(m)
}

// WaitAssets blocks until every pending load has settled and attaches them.
func (s *Sketch) WaitAssets(ctx context.Context) error {
	if s.env != nil {
		_, _ = s.env.Wait(ctx)
	}
	_, _ = s.model.Wait(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	s.Update()
	return nil
}

func (s *Sketch) attachEnv(env *assets.EnvMap, err error) {
	if err == nil {
		err = s.backend.LoadEnvironment(env)
	}
	if err != nil {
		s.fail("environment unavailable, reflections disabled", err)
		s.mode = shading.ModeNone
		return
	}
	w, h := env.Size()
	s.log.Info("environment loaded", zap.String("path", env.Path), zap.Int("width", w), zap.Int("height", h))
}

func (s *Sketch) attachModel(m *assets.Model) {
	prog, err := s.backend.CompileMaterial(shading.Build(s.mode))
	if err != nil {
		s.fail("material compile failed, using default material", err)
		prog = nil
	}
	s.material = shading.NewMaterial(s.mode, prog)
	d, err := s.backend.UploadModel(m, prog)
	if err != nil {
		s.fail("model upload failed", err)
		return
	}
	s.scene.Add(&scene.Node{Name: m.Name, Drawable: d})
	s.orbit.Frame(m.Bounds)
	s.orbit.Apply(&s.scene.Camera)
	s.log.Info("model loaded",
		zap.String("path", m.Path),
		zap.Int("meshes", m.Meshes),
		zap.Int("vertices", m.Vertices),
		zap.Bool("animated", s.material.Animated()))
}

func (s *Sketch) fail(msg string, err error) {
	s.errs = append(s.errs, err)
	s.log.Error(msg, err)
}

// Frame runs one display refresh: a loop tick while playing, otherwise a re-present of the
// last image.
func (s *Sketch) Frame() {
	if !s.loop.Tick() {
		s.backend.Present()
	}
}

// frame is the loop callback: push time to the material, then draw once.
func (s *Sketch) frame(t float64) {
	if s.material != nil {
		s.material.SetTime(float32(t))
	}
	s.backend.Draw(s.scene, s.post)
}

// Orbit applies mouse drag (pixels) and wheel movement to the camera.
func (s *Sketch) Orbit(dx, dy, wheel float32) {
	if dx == 0 && dy == 0 && wheel == 0 {
		return
	}
	s.orbit.Drag(dx, dy)
	s.orbit.Zoom(wheel)
	s.orbit.Apply(&s.scene.Camera)
}

func (s *Sketch) Play() bool { return s.loop.Play() }
func (s *Sketch) Stop() bool { return s.loop.Stop() }
func (s *Sketch) Toggle() anim.State { return s.loop.Toggle() }
func (s *Sketch) Loop() *anim.Loop { return s.loop }
func (s *Sketch) Scene() *scene.Scene { return s.scene }
func (s *Sketch) Mode() shading.Mode { return s.mode }

// Size returns the current surface size.
func (s *Sketch) Size() (width, height int) { return s.width, s.height }

// Material returns the attached material, or nil before the model is loaded.
func (s *Sketch) Material() *shading.Material { return s.material }

// Post returns the current post-processing settings.
func (s *Sketch) Post() postfx.Settings { return s.post }

// SetPost replaces the post-processing settings, clamped to slider ranges.
func (s *Sketch) SetPost(p postfx.Settings) { s.post = p.Clamp() }

// Commands returns the console command registry bound to this sketch.
func (s *Sketch) Commands() *commands.Registry { return s.reg }

// Errors returns every load or upload failure so far.
func (s *Sketch) Errors() []error { return s.errs }

// Close cancels pending loads.
func (s *Sketch) Close() {
	s.cancel()
}
