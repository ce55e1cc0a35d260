package graphics

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gltf-sketch/internal/assets"
	"gltf-sketch/internal/gpu"
	"gltf-sketch/internal/postfx"
	"gltf-sketch/internal/scene"
	"gltf-sketch/internal/shading"
)

// lightDir is the direction toward the key light used by the reflection materials.
var lightDir = []float32{0.5, 1, 0.6}

// program is a compiled material shader.
type program struct {
	shader   rl.Shader
	mode     shading.Mode
	viewLoc  int32
	lightLoc int32
}

func (p *program) Location(name string) int32 {
	return rl.GetShaderLocation(p.shader, name)
}

func (p *program) SetFloat(loc int32, v float32) {
	rl.SetShaderValue(p.shader, loc, []float32{v}, rl.ShaderUniformFloat)
}

// modelNode is an uploaded glTF model.
type modelNode struct {
	b     *Backend
	model rl.Model
	prog  *program
}

func (n *modelNode) Draw() {
	if n.prog != nil {
		if n.prog.viewLoc >= 0 {
			rl.SetShaderValue(n.prog.shader, n.prog.viewLoc, n.b.camPos[:], rl.ShaderUniformVec3)
		}
		if n.prog.lightLoc >= 0 {
			rl.SetShaderValue(n.prog.shader, n.prog.lightLoc, lightDir, rl.ShaderUniformVec3)
		}
	}
	rl.DrawModel(n.model, rl.NewVector3(0, 0, 0), 1, rl.White)
}

type blurPass struct {
	shader       rl.Shader
	resLoc       int32
	dirLoc       int32
	thresholdLoc int32
	radiusLoc    int32
}

type compositePass struct {
	shader      rl.Shader
	bloomLoc    int32
	strengthLoc int32
	exposureLoc int32
	toneMapLoc  int32
}

// Backend renders sketches with raylib. GPU work is deferred until the first call made from
// inside the window loop, so a Backend may be built before the window exists.
type Backend struct {
	clear   rl.Color
	surface postfx.Surface

	ready      bool
	broken     error
	hasTargets bool
	sceneRT    rl.RenderTexture2D
	brightRT   rl.RenderTexture2D
	blurRT     rl.RenderTexture2D
	outRT      rl.RenderTexture2D
	blur       blurPass
	composite  compositePass

	env    rl.Texture2D
	hasEnv bool
	sky    skybox
	camPos [3]float32
	far    float32

	// owned holds material shaders and models; both outlive any single frame.
	owned gpu.Pool
}

// NewBackend returns a backend that clears the scene to clear.
func NewBackend(clear rl.Color) *Backend {
	return &Backend{clear: clear}
}

// SetSize records the surface size; offscreen targets are rebuilt on the next Draw.
func (b *Backend) SetSize(width, height int) {
	b.surface.Resize(width, height)
}

// ensure compiles the post shaders the first time it runs inside the window loop. A failed
// compile is remembered and not retried.
func (b *Backend) ensure() error {
	if b.ready || b.broken != nil {
		return b.broken
	}
	blur := rl.LoadShaderFromMemory(postfx.PassthroughVS, postfx.BlurFS)
	comp := rl.LoadShaderFromMemory(postfx.PassthroughVS, postfx.CompositeFS)
	if !rl.IsShaderValid(blur) || !rl.IsShaderValid(comp) {
		b.broken = errors.New("post shaders failed to compile")
		return b.broken
	}
	b.blur = blurPass{
		shader:       blur,
		resLoc:       rl.GetShaderLocation(blur, postfx.UniformResolution),
		dirLoc:       rl.GetShaderLocation(blur, postfx.UniformDirection),
		thresholdLoc: rl.GetShaderLocation(blur, postfx.UniformThreshold),
		radiusLoc:    rl.GetShaderLocation(blur, postfx.UniformRadius),
	}
	b.composite = compositePass{
		shader:      comp,
		bloomLoc:    rl.GetShaderLocation(comp, postfx.UniformBloomTex),
		strengthLoc: rl.GetShaderLocation(comp, postfx.UniformStrength),
		exposureLoc: rl.GetShaderLocation(comp, postfx.UniformExposure),
		toneMapLoc:  rl.GetShaderLocation(comp, postfx.UniformToneMap),
	}
	b.ready = true
	return nil
}

// ensureTargets (re)creates the render targets after a resize. Bloom targets are half size.
func (b *Backend) ensureTargets() {
	if !b.surface.Stale() {
		return
	}
	b.unloadTargets()
	w, h := b.surface.Size()
	hw, hh := b.surface.BloomSize()
	b.sceneRT = rl.LoadRenderTexture(int32(w), int32(h))
	b.outRT = rl.LoadRenderTexture(int32(w), int32(h))
	b.brightRT = rl.LoadRenderTexture(int32(hw), int32(hh))
	b.blurRT = rl.LoadRenderTexture(int32(hw), int32(hh))
	for _, rt := range []rl.RenderTexture2D{b.sceneRT, b.outRT, b.brightRT, b.blurRT} {
		rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
	}
	b.hasTargets = true
	b.surface.Built()
}

func (b *Backend) unloadTargets() {
	if !b.hasTargets {
		return
	}
	rl.UnloadRenderTexture(b.sceneRT)
	rl.UnloadRenderTexture(b.outRT)
	rl.UnloadRenderTexture(b.brightRT)
	rl.UnloadRenderTexture(b.blurRT)
	b.hasTargets = false
}

// LoadEnvironment uploads the prefiltered panorama and builds the background from it.
func (b *Backend) LoadEnvironment(env *assets.EnvMap) error {
	img := rl.NewImageFromImage(env.Image)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(tex) {
		return fmt.Errorf("upload environment %s: invalid texture", env.Path)
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	if b.hasEnv {
		rl.UnloadTexture(b.env)
	}
	b.env = tex
	b.hasEnv = true
	if !b.sky.load(tex) {
		return errors.New("skybox shader failed to compile")
	}
	return nil
}

// CompileMaterial compiles src. The view position and environment sampler are registered with
// raylib's shader locations so DrawModel binds the environment as material map BRDF.
func (b *Backend) CompileMaterial(src shading.Source) (shading.Program, error) {
	shader := rl.LoadShaderFromMemory(src.Vertex, src.Fragment)
	if !rl.IsShaderValid(shader) {
		return nil, fmt.Errorf("compile %s material: invalid shader", src.Mode)
	}
	p := &program{
		shader:   shader,
		mode:     src.Mode,
		viewLoc:  rl.GetShaderLocation(shader, shading.UniformViewPos),
		lightLoc: rl.GetShaderLocation(shader, shading.UniformLightDir),
	}
	p.shader.UpdateLocation(rl.ShaderLocVectorView, p.viewLoc)
	if src.Declares(shading.UniformEnvMap) {
		p.shader.UpdateLocation(rl.ShaderLocMapBrdf, rl.GetShaderLocation(shader, shading.UniformEnvMap))
	}
	b.owned.Add(func() { rl.UnloadShader(shader) })
	return p, nil
}

// UploadModel loads m with raylib and assigns prog (and the environment) to every material.
func (b *Backend) UploadModel(m *assets.Model, prog shading.Program) (scene.Drawable, error) {
	model := rl.LoadModel(m.Path)
	if !rl.IsModelValid(model) {
		return nil, fmt.Errorf("upload model %s: raylib could not load it", m.Path)
	}
	n := &modelNode{b: b, model: model}
	if p, ok := prog.(*program); ok && p != nil {
		n.prog = p
		mats := model.GetMaterials()
		for i := range mats {
			mats[i].Shader = p.shader
			if b.hasEnv && p.mode.Reflective() {
				mats[i].GetMap(rl.MapBrdf).Texture = b.env
			}
		}
	}
	b.owned.Add(func() { rl.UnloadModel(model) })
	return n, nil
}

// Draw renders s into the scene target, runs the post passes and presents the output.
func (b *Backend) Draw(s *scene.Scene, post postfx.Settings) {
	if err := b.ensure(); err != nil {
		return
	}
	b.ensureTargets()
	if !b.hasTargets {
		return
	}
	cam := toCamera(s.Camera)
	b.camPos = s.Camera.Position
	b.far = s.Camera.Far

	for _, pass := range post.Passes() {
		switch pass {
		case postfx.PassRender:
			b.renderScene(s, cam)
		case postfx.PassBloom:
			b.renderBloom(post.Bloom)
		case postfx.PassOutput:
			b.renderOutput(post)
		}
	}
	b.Present()
}

func (b *Backend) renderScene(s *scene.Scene, cam rl.Camera3D) {
	c := s.Camera
	rl.BeginTextureMode(b.sceneRT)
	rl.ClearBackground(b.clear)
	rl.BeginMode3D(cam)
	rl.SetMatrixProjection(rl.MatrixPerspective(c.Fovy*rl.Deg2rad, c.Aspect, c.Near, c.Far))
	if b.hasEnv {
		b.sky.draw(cam.Position, b.far)
	}
	for _, n := range s.Nodes() {
		n.Drawable.Draw()
	}
	rl.EndMode3D()
	rl.EndTextureMode()
}

// renderBloom runs the bright pass with a horizontal blur, then a vertical blur.
func (b *Backend) renderBloom(bloom postfx.Bloom) {
	hw, hh := float32(b.brightRT.Texture.Width), float32(b.brightRT.Texture.Height)
	res := []float32{hw, hh}
	dst := rl.NewRectangle(0, 0, hw, hh)

	rl.BeginTextureMode(b.brightRT)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(b.blur.shader)
	rl.SetShaderValue(b.blur.shader, b.blur.resLoc, res, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.blur.shader, b.blur.dirLoc, []float32{1, 0}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.blur.shader, b.blur.thresholdLoc, []float32{bloom.Threshold}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.blur.shader, b.blur.radiusLoc, []float32{bloom.Radius}, rl.ShaderUniformFloat)
	rl.DrawTexturePro(b.sceneRT.Texture, flipped(b.sceneRT), dst, rl.Vector2{}, 0, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()

	rl.BeginTextureMode(b.blurRT)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(b.blur.shader)
	rl.SetShaderValue(b.blur.shader, b.blur.dirLoc, []float32{0, 1}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.blur.shader, b.blur.thresholdLoc, []float32{-1}, rl.ShaderUniformFloat)
	rl.DrawTexturePro(b.brightRT.Texture, flipped(b.brightRT), dst, rl.Vector2{}, 0, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

// renderOutput composites bloom (strength 0 when disabled) into the output target, tone mapping
// when enabled.
func (b *Backend) renderOutput(post postfx.Settings) {
	strength := post.Bloom.Strength
	if !post.Bloom.Enabled {
		strength = 0
	}
	rl.BeginTextureMode(b.outRT)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(b.composite.shader)
	rl.SetShaderValue(b.composite.shader, b.composite.strengthLoc, []float32{strength}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.composite.shader, b.composite.exposureLoc, []float32{post.Exposure}, rl.ShaderUniformFloat)
	rl.SetShaderValue(b.composite.shader, b.composite.toneMapLoc, []float32{boolFloat(post.ToneMapping)}, rl.ShaderUniformFloat)
	rl.SetShaderValueTexture(b.composite.shader, b.composite.bloomLoc, b.blurRT.Texture)
	dst := rl.NewRectangle(0, 0, float32(b.outRT.Texture.Width), float32(b.outRT.Texture.Height))
	rl.DrawTexturePro(b.sceneRT.Texture, flipped(b.sceneRT), dst, rl.Vector2{}, 0, rl.White)
	rl.EndShaderMode()
	rl.EndTextureMode()
}

// Present draws the last output to the screen, stretched when the window was resized since.
// Before the first Draw it leaves the screen cleared.
func (b *Backend) Present() {
	src, dst, ok := b.surface.Present()
	if !ok || !b.hasTargets {
		return
	}
	from := rl.NewRectangle(0, 0, float32(src[0]), -float32(src[1]))
	to := rl.NewRectangle(0, 0, float32(dst[0]), float32(dst[1]))
	rl.DrawTexturePro(b.outRT.Texture, from, to, rl.Vector2{}, 0, rl.White)
}

// Close frees every GPU resource the backend created.
func (b *Backend) Close() {
	b.owned.Release()
	b.sky.unload()
	if b.hasEnv {
		rl.UnloadTexture(b.env)
		b.hasEnv = false
	}
	b.unloadTargets()
	if b.ready {
		rl.UnloadShader(b.blur.shader)
		rl.UnloadShader(b.composite.shader)
		b.ready = false
	}
}

func boolFloat(v bool) float32 {
	if v {
		return 1
	}
	return 0
}

// flipped is the source rectangle for drawing a render texture upright.
func flipped(rt rl.RenderTexture2D) rl.Rectangle {
	return rl.NewRectangle(0, 0, float32(rt.Texture.Width), -float32(rt.Texture.Height))
}

func toCamera(c scene.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Position[0], c.Position[1], c.Position[2]),
		Target:     rl.NewVector3(c.Target[0], c.Target[1], c.Target[2]),
		Up:         rl.NewVector3(c.Up[0], c.Up[1], c.Up[2]),
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
