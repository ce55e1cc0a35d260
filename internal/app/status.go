package app

import "fmt"

// Status is a snapshot of the sketch for the HUD and the status command.
type Status struct {
	Mode        string
	Playing     bool
	Time        float64
	Nodes       int
	ToneMapping bool
	Exposure    float32
}

// Status returns the current snapshot.
func (s *Sketch) Status() Status {
	return Status{
		Mode:        s.mode.String(),
		Playing:     s.loop.Playing(),
		Time:        s.loop.Time(),
		Nodes:       s.scene.Len(),
		ToneMapping: s.post.ToneMapping,
		Exposure:    s.post.Exposure,
	}
}

// FormatStatus renders st as a single overlay line. Exposure is shown only while tone mapping
// is on, since it has no effect otherwise.
func FormatStatus(st Status) string {
	state := "stopped"
	if st.Playing {
		state = "playing"
	}
	line := fmt.Sprintf("%s  %s  t=%.2f  nodes=%d", st.Mode, state, st.Time, st.Nodes)
	if st.ToneMapping {
		line += fmt.Sprintf("  exp=%.2f", st.Exposure)
	}
	return line
}
