package assets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"gltf-sketch/internal/download"
	"gltf-sketch/internal/scene"
)

var (
	// ErrNoMeshes is returned for glTF documents that contain nothing to draw.
	ErrNoMeshes = errors.New("gltf document has no meshes")
	// ErrRemoteGLTF is returned for .gltf files fetched by URL: their buffers and images are
	// separate files that are not downloaded. Use a self-contained .glb instead.
	ErrRemoteGLTF = errors.New("remote .gltf is not self-contained, use .glb")
)

// Model is a validated glTF file ready for GPU upload. Counts and bounds come from the document;
// bounds are in mesh space (node transforms are not applied).
type Model struct {
	Path      string
	Name      string
	Version   string
	Nodes     int
	Meshes    int
	Materials int
	Vertices  int
	Bounds    scene.Bounds
}

// LoadModel resolves src (a file path or http(s) URL, fetched into cacheDir) and validates it as glTF.
func LoadModel(ctx context.Context, src, cacheDir string) (*Model, error) {
	path, err := resolve(ctx, src, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if download.IsURL(src) && strings.EqualFold(filepath.Ext(path), ".gltf") {
		return nil, fmt.Errorf("load model %s: %w", src, ErrRemoteGLTF)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("load model %s: %w", path, ErrNoMeshes)
	}
	m := &Model{
		Path:      path,
		Name:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Version:   doc.Asset.Version,
		Nodes:     len(doc.Nodes),
		Meshes:    len(doc.Meshes),
		Materials: len(doc.Materials),
	}
	if err := m.measure(doc); err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return m, nil
}

// measure accumulates vertex count and bounds over every primitive's POSITION accessor.
func (m *Model) measure(doc *gltf.Document) error {
	first := true
	var buf [][3]float32
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			idx, ok := prim.Attributes[gltf.POSITION]
			if !ok || int(idx) >= len(doc.Accessors) {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[idx], buf[:0])
			if err != nil {
				return fmt.Errorf("mesh %q positions: %w", mesh.Name, err)
			}
			buf = positions
			for _, p := range positions {
				if first {
					m.Bounds = scene.Bounds{Min: p, Max: p}
					first = false
					continue
				}
				for i := range 3 {
					m.Bounds.Min[i] = min(m.Bounds.Min[i], p[i])
					m.Bounds.Max[i] = max(m.Bounds.Max[i], p[i])
				}
			}
			m.Vertices += len(positions)
		}
	}
	return nil
}

func resolve(ctx context.Context, src, cacheDir string) (string, error) {
	if src == "" {
		return "", errors.New("empty asset path")
	}
	if download.IsURL(src) {
		return download.Download(ctx, src, cacheDir)
	}
	return filepath.Clean(src), nil
}
