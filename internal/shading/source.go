package shading

import (
	"fmt"
	"strings"
)

// RotationRate is the angular speed (radians per time unit) of the rotating reflection.
const RotationRate = 0.1

// FlatColor is the linear RGB of ModeFlat, 0xff6600.
var FlatColor = [3]float64{1, 0.4, 0}

// Uniform names declared by the generated programs. The vertex stage uses raylib's default
// attribute and matrix names so raylib binds them automatically.
const (
	UniformTime     = "time"
	UniformEnvMap   = "envMap"
	UniformViewPos  = "viewPos"
	UniformLightDir = "lightDir"
)

// Source is a complete vertex + fragment program for one Mode.
type Source struct {
	Mode     Mode
	Vertex   string
	Fragment string
	Uniforms []string
}

// Declares reports whether the program declares the named uniform.
func (s Source) Declares(name string) bool {
	for _, u := range s.Uniforms {
		if u == name {
			return true
		}
	}
	return false
}

const vertexGLSL = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 1.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const fragmentHeader = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
out vec4 finalColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
`

// equirectLookupGLSL matches the panorama mapping of the skybox: longitude from atan(z, x),
// latitude from asin(y).
const equirectLookupGLSL = `uniform sampler2D envMap;
vec3 sampleEquirect(vec3 dir) {
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  vec2 uv = vec2(lon / 6.28318530718 + 0.5, 0.5 - lat / 3.14159265359);
  return texture(envMap, uv).rgb;
}
`

const rotateGLSL = `uniform float time;
const float rotationRate = %s;
mat3 rotateY(float a) {
  float s = sin(a);
  float c = cos(a);
  return mat3(c, 0.0, -s, 0.0, 1.0, 0.0, s, 0.0, c);
}
`

const lightingGLSL = `vec3 shade(vec3 albedo, vec3 n, vec3 v) {
  vec3 l = normalize(lightDir);
  vec3 h = normalize(l + v);
  float diff = max(dot(n, l), 0.0);
  float spec = pow(max(dot(n, h), 0.0), 32.0);
  return albedo * (0.2 + 0.8 * diff) + vec3(0.25) * spec;
}
`

const mainOpen = `void main() {
  vec4 base = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 n = normalize(fragNormal);
  vec3 v = normalize(viewPos - fragPosition);
  vec3 color = shade(base.rgb, n, v);
`

const reflectGLSL = `  vec3 r = reflect(-v, n);
`

const rotateReflectionGLSL = `  r = rotateY(time * rotationRate) * r;
`

const mixReflectionGLSL = `  float fresnel = 0.04 + 0.96 * pow(1.0 - max(dot(n, v), 0.0), 5.0);
  color = mix(color, sampleEquirect(r), clamp(0.35 + fresnel, 0.0, 1.0));
`

const mainClose = `  finalColor = vec4(color, base.a);
}
`

const flatFragmentGLSL = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
out vec4 finalColor;
const vec3 flatColor = vec3(%s, %s, %s);
void main() {
  finalColor = vec4(flatColor, 1.0);
}
`

// Build assembles the program for mode. Every mode yields a complete, self-contained program;
// variants are chosen here rather than patched into a compiled shader afterwards.
func Build(mode Mode) Source {
	if mode == ModeFlat {
		c := FlatColor
		frag := fmt.Sprintf(flatFragmentGLSL, glslFloat(c[0]), glslFloat(c[1]), glslFloat(c[2]))
		return Source{Mode: mode, Vertex: vertexGLSL, Fragment: frag}
	}
	uniforms := []string{UniformViewPos, UniformLightDir}
	var fs strings.Builder
	fs.WriteString(fragmentHeader)
	if mode.Reflective() {
		fs.WriteString(equirectLookupGLSL)
		uniforms = append(uniforms, UniformEnvMap)
	}
	if mode.Animated() {
		fmt.Fprintf(&fs, rotateGLSL, glslFloat(RotationRate))
		uniforms = append(uniforms, UniformTime)
	}
	fs.WriteString(lightingGLSL)
	fs.WriteString(mainOpen)
	if mode.Reflective() {
		fs.WriteString(reflectGLSL)
		if mode.Animated() {
			fs.WriteString(rotateReflectionGLSL)
		}
		fs.WriteString(mixReflectionGLSL)
	}
	fs.WriteString(mainClose)
	return Source{Mode: mode, Vertex: vertexGLSL, Fragment: fs.String(), Uniforms: uniforms}
}

// glslFloat formats f so GLSL parses it as a float literal (always has a decimal point).
func glslFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
