package shading

// Program is a compiled shader program. Location returns -1 for uniforms the driver does not expose.
type Program interface {
	Location(name string) int32
	SetFloat(loc int32, v float32)
}

// Material pairs a compiled program with the mode it was built for and caches the
// time uniform location so the frame loop can push time without a lookup.
type Material struct {
	mode    Mode
	prog    Program
	timeLoc int32
}

// NewMaterial resolves the uniform locations the frame loop writes. prog may be nil
// (compile failed); the material then ignores writes.
func NewMaterial(mode Mode, prog Program) *Material {
	m := &Material{mode: mode, prog: prog, timeLoc: -1}
	if prog != nil && mode.Animated() {
		m.timeLoc = prog.Location(UniformTime)
	}
	return m
}

func (m *Material) Mode() Mode { return m.mode }
func (m *Material) Program() Program { return m.prog }

// Animated reports whether SetTime will reach the program.
func (m *Material) Animated() bool {
	return m.prog != nil && m.timeLoc >= 0
}

// SetTime writes t into the time uniform. Returns false (and writes nothing) when the
// program has no time uniform.
func (m *Material) SetTime(t float32) bool {
	if !m.Animated() {
		return false
	}
	m.prog.SetFloat(m.timeLoc, t)
	return true
}
