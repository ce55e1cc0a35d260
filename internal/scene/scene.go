package scene

// Vec3 is a position or direction in world space (Y up).
type Vec3 [3]float32

// Camera is a perspective camera. Fovy is the vertical field of view in degrees.
type Camera struct {
	Position Vec3    `yaml:"position"`
	Target   Vec3    `yaml:"target"`
	Up       Vec3    `yaml:"up"`
	Fovy     float32 `yaml:"fovy"`
	Aspect   float32 `yaml:"-"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
}

// DefaultCamera returns a 45° camera at (-1.8, 0.6, 2.7) looking at the origin, near 0.25, far 20.
func DefaultCamera() Camera {
	return Camera{
		Position: Vec3{-1.8, 0.6, 2.7},
		Target:   Vec3{0, 0, 0},
		Up:       Vec3{0, 1, 0},
		Fovy:     45,
		Aspect:   1,
		Near:     0.25,
		Far:      20,
	}
}

// Drawable is something the backend can draw inside a 3D pass (e.g. an uploaded glTF model).
type Drawable interface {
	Draw()
}

// Node is one renderable entry of the scene.
type Node struct {
	Name     string
	Drawable Drawable
}

// Scene holds a camera and the nodes drawn each frame. Nodes are only ever added by asset-load
// completion on the render thread and are never removed.
type Scene struct {
	Camera Camera
	nodes  []*Node
}

// New returns an empty scene with DefaultCamera.
func New() *Scene {
	return &Scene{Camera: DefaultCamera()}
}

// Add appends n. Draw order is insertion order.
func (s *Scene) Add(n *Node) {
	s.nodes = append(s.nodes, n)
}

// Nodes returns the nodes in draw order. The slice must not be modified.
func (s *Scene) Nodes() []*Node {
	return s.nodes
}

// Len returns the number of nodes.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Resize sets the camera aspect to width/height. A zero or negative height keeps the
// previous aspect (minimised window).
func (s *Scene) Resize(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	s.Camera.Aspect = float32(width) / float32(height)
}
