// Package gpu tracks GPU resources so a backend can free them together while the context lives.
package gpu

// Pool owns release functions for resources created over a backend's lifetime.
type Pool struct {
	releases []func()
}

// Add registers release to run on the next Release.
func (p *Pool) Add(release func()) {
	if release != nil {
		p.releases = append(p.releases, release)
	}
}

// Len returns the number of resources still held.
func (p *Pool) Len() int {
	return len(p.releases)
}

// Release frees every resource, newest first, and empties the pool. It returns how many were
// freed; a second call frees nothing.
func (p *Pool) Release() int {
	n := len(p.releases)
	for i := n - 1; i >= 0; i-- {
		p.releases[i]()
	}
	p.releases = nil
	return n
}
