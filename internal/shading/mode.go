package shading

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for names it does not recognise.
var ErrUnknownMode = errors.New("unknown reflection mode")

// Mode selects how a material samples the environment map.
type Mode int

const (
	// ModeNone lights the model without environment reflections.
	ModeNone Mode = iota
	// ModeStatic reflects the environment map along the view reflection vector.
	ModeStatic
	// ModeRotating rotates the reflection vector about Y by time*RotationRate before sampling.
	ModeRotating
	// ModeFlat paints every fragment FlatColor, unlit and untextured.
	ModeFlat
)

var modeNames = map[Mode]string{
	ModeNone:     "none",
	ModeStatic:   "static",
	ModeRotating: "rotating",
	ModeFlat:     "flat",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Reflective reports whether the mode samples an environment map.
func (m Mode) Reflective() bool {
	return m == ModeStatic || m == ModeRotating
}

// Animated reports whether the mode reads the time uniform.
func (m Mode) Animated() bool {
	return m == ModeRotating
}

// ParseMode maps "none", "static", "rotating" or "flat" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
