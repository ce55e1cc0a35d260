package postfx

// Surface tracks the drawing surface size against the size the offscreen targets were last
// built for.
type Surface struct {
	width, height  int
	builtW, builtH int
	built          bool
}

// Resize records a new surface size. Non-positive sizes (minimised window) are ignored.
func (s *Surface) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
}

// Size returns the current surface size.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Stale reports whether the targets must be (re)built before the next render.
func (s *Surface) Stale() bool {
	if s.width <= 0 || s.height <= 0 {
		return false
	}
	return !s.built || s.builtW != s.width || s.builtH != s.height
}

// Built records that the targets now match the current size.
func (s *Surface) Built() {
	s.builtW, s.builtH = s.width, s.height
	s.built = true
}

// BloomSize is the half-resolution size of the bloom targets, at least 1x1.
func (s *Surface) BloomSize() (width, height int) {
	return max(s.width/2, 1), max(s.height/2, 1)
}

// Present returns the size of the last output (src) and the size to draw it at (dst). After a
// resize the old output is stretched to the new surface until the targets are rebuilt. ok is
// false before anything was built.
func (s *Surface) Present() (src, dst [2]int, ok bool) {
	if !s.built {
		return src, dst, false
	}
	return [2]int{s.builtW, s.builtH}, [2]int{s.width, s.height}, true
}
