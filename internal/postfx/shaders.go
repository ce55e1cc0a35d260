package postfx

// Uniform names used by the post shaders.
const (
	UniformThreshold  = "threshold"
	UniformRadius     = "radius"
	UniformDirection  = "direction"
	UniformResolution = "resolution"
	UniformBloomTex   = "bloomTexture"
	UniformStrength   = "strength"
	UniformExposure   = "exposure"
	UniformToneMap    = "toneMapping"
)

// BlurFS is a 9-tap separable gaussian. With threshold >= 0 it also acts as the bright pass:
// only luminance above threshold survives. Pass threshold < 0 for the second (vertical) pass.
const BlurFS = `#version 330
in vec2 fragTexCoord;
out vec4 finalColor;
uniform sampler2D texture0;
uniform vec2 resolution;
uniform vec2 direction;
uniform float threshold;
uniform float radius;
const float weights[5] = float[](0.2270270, 0.1945946, 0.1216216, 0.0540540, 0.0162162);
vec3 bright(vec3 c) {
  if (threshold < 0.0) {
    return c;
  }
  float l = dot(c, vec3(0.2126, 0.7152, 0.0722));
  return l > threshold ? c : vec3(0.0);
}
void main() {
  vec2 texel = direction * (1.0 + radius * 4.0) / resolution;
  vec3 sum = bright(texture(texture0, fragTexCoord).rgb) * weights[0];
  for (int i = 1; i < 5; i++) {
    sum += bright(texture(texture0, fragTexCoord + texel * float(i)).rgb) * weights[i];
    sum += bright(texture(texture0, fragTexCoord - texel * float(i)).rgb) * weights[i];
  }
  finalColor = vec4(sum, 1.0);
}
`

// CompositeFS adds bloom over the scene. With toneMapping > 0.5 it applies exposure and ACES
// filmic tone mapping; otherwise the sum is only clamped, exposure ignored.
const CompositeFS = `#version 330
in vec2 fragTexCoord;
out vec4 finalColor;
uniform sampler2D texture0;
uniform sampler2D bloomTexture;
uniform float strength;
uniform float exposure;
uniform float toneMapping;
vec3 aces(vec3 x) {
  return clamp((x * (2.51 * x + 0.03)) / (x * (2.43 * x + 0.59) + 0.14), 0.0, 1.0);
}
void main() {
  vec3 scene = texture(texture0, fragTexCoord).rgb;
  vec3 glow = texture(bloomTexture, fragTexCoord).rgb * strength;
  vec3 color = scene + glow;
  if (toneMapping > 0.5) {
    color = aces(color * exposure);
  }
  finalColor = vec4(clamp(color, 0.0, 1.0), 1.0);
}
`

// PassthroughVS feeds full-screen texture draws into the post fragment shaders.
const PassthroughVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
uniform mat4 mvp;
out vec2 fragTexCoord;
out vec4 fragColor;
void main() {
  fragTexCoord = vertexTexCoord;
  fragColor = vertexColor;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
