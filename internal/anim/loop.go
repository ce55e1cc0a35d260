package anim

// DefaultStep is the time added per processed frame. Animation speed follows the display refresh rate.
const DefaultStep = 0.05

// State is the run state of a Loop.
type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Loop is a frame-synchronized animation driver. The host calls Tick once per display frame;
// while Playing, each Tick advances the time accumulator by a fixed step and calls the frame
// callback exactly once. Stop only prevents future frames: the frame in progress still completes.
// Not safe for concurrent use; it belongs to the render thread.
type Loop struct {
	step   float64
	time   float64
	state  State
	frames uint64
	frame  func(t float64)
}

// New returns a playing loop. step <= 0 falls back to DefaultStep. frame may be nil.
func New(step float64, frame func(t float64)) *Loop {
	if step <= 0 {
		step = DefaultStep
	}
	return &Loop{step: step, state: Playing, frame: frame}
}

// Play resumes the loop. Returns false when it was already playing (no-op).
func (l *Loop) Play() bool {
	if l.state == Playing {
		return false
	}
	l.state = Playing
	return true
}

// Stop pauses the loop. Returns false when it was already stopped.
func (l *Loop) Stop() bool {
	if l.state == Stopped {
		return false
	}
	l.state = Stopped
	return true
}

// Toggle flips between Playing and Stopped and returns the new state.
func (l *Loop) Toggle() State {
	if l.state == Playing {
		l.Stop()
	} else {
		l.Play()
	}
	return l.state
}

// Tick processes one host frame. Returns true when a frame was run.
func (l *Loop) Tick() bool {
	if l.state != Playing {
		return false
	}
	l.time += l.step
	l.frames++
	if l.frame != nil {
		l.frame(l.time)
	}
	return true
}

func (l *Loop) State() State { return l.state }
func (l *Loop) Playing() bool { return l.state == Playing }
func (l *Loop) Time() float64 { return l.time }
func (l *Loop) Step() float64 { return l.step }
func (l *Loop) Frames() uint64 { return l.frames }
