package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Equirectangular background: samples the 2D panorama by view direction, the same mapping the
// reflection shader uses.
const (
	skyboxVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	skyboxFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D texture0;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = texture(texture0, vec2(u, v));
}
`
)

// skybox draws the environment map as the scene background.
type skybox struct {
	mesh      rl.Mesh
	mtl       rl.Material
	camPosLoc int32
	loaded    bool
}

// load builds the cube and shader for tex. Call only once a GL context exists.
func (s *skybox) load(tex rl.Texture2D) bool {
	shader := rl.LoadShaderFromMemory(skyboxVS, skyboxFS)
	if !rl.IsShaderValid(shader) {
		return false
	}
	if s.loaded {
		s.unload()
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	rl.SetMaterialTexture(&s.mtl, rl.MapAlbedo, tex)
	s.camPosLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.loaded = true
	return true
}

// draw renders a cube of edge size centred on the camera, behind everything else.
// size must keep the cube corners inside the far plane.
func (s *skybox) draw(camPos rl.Vector3, size float32) {
	if !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	if s.camPosLoc >= 0 {
		rl.SetShaderValueV(s.mtl.Shader, s.camPosLoc, []float32{camPos.X, camPos.Y, camPos.Z}, rl.ShaderUniformVec3, 1)
	}
	transform := rl.MatrixMultiply(rl.MatrixScale(size, size, size), rl.MatrixTranslate(camPos.X, camPos.Y, camPos.Z))
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// unload frees the cube mesh, the material maps and its shader. The panorama texture belongs to
// the backend, so it is detached before UnloadMaterial would free it.
func (s *skybox) unload() {
	if !s.loaded {
		return
	}
	rl.UnloadMesh(&s.mesh)
	rl.SetMaterialTexture(&s.mtl, rl.MapAlbedo, rl.Texture2D{})
	rl.UnloadMaterial(s.mtl)
	s.loaded = false
}
