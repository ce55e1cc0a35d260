package postfx

// Slider ranges for the runtime controls.
const (
	MinExposure  = 0.1
	MaxExposure  = 2.0
	MaxStrength  = 3.0
	MaxThreshold = 1.0
	MaxRadius    = 1.0
)

// Bloom configures the bright-pass blur added back over the base render.
type Bloom struct {
	Enabled   bool    `yaml:"enabled"`
	Strength  float32 `yaml:"strength"`
	Threshold float32 `yaml:"threshold"`
	Radius    float32 `yaml:"radius"`
}

// Settings are the post-processing parameters read by the backend every frame. Exposure only
// takes effect while ToneMapping is on.
type Settings struct {
	ToneMapping bool    `yaml:"tone_mapping"`
	Exposure    float32 `yaml:"exposure"`
	Bloom       Bloom   `yaml:"bloom"`
}

// Default returns no tone mapping, exposure 1 and bloom off with strength 1.5, threshold 0,
// radius 0.
func Default() Settings {
	return Settings{
		Exposure: 1,
		Bloom:    Bloom{Strength: 1.5, Threshold: 0, Radius: 0},
	}
}

// Clamp returns s with every field inside its slider range.
func (s Settings) Clamp() Settings {
	s.Exposure = clamp(s.Exposure, MinExposure, MaxExposure)
	s.Bloom.Strength = clamp(s.Bloom.Strength, 0, MaxStrength)
	s.Bloom.Threshold = clamp(s.Bloom.Threshold, 0, MaxThreshold)
	s.Bloom.Radius = clamp(s.Bloom.Radius, 0, MaxRadius)
	return s
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}

// Pass is one stage of the post chain.
type Pass int

const (
	// PassRender draws the scene into the offscreen target.
	PassRender Pass = iota
	// PassBloom extracts and blurs bright regions.
	PassBloom
	// PassOutput composites bloom over the scene and, when enabled, applies exposure tone mapping.
	PassOutput
)

func (p Pass) String() string {
	switch p {
	case PassRender:
		return "render"
	case PassBloom:
		return "bloom"
	case PassOutput:
		return "output"
	}
	return "unknown"
}

// Passes returns the pass order for s. Bloom is always composited after the base render.
func (s Settings) Passes() []Pass {
	if s.Bloom.Enabled {
		return []Pass{PassRender, PassBloom, PassOutput}
	}
	return []Pass{PassRender, PassOutput}
}
