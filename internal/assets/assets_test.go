package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gltf-sketch/internal/scene"
)

func writeTriangleGLB(t *testing.T, dir string) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{-1, 0, 0}, {1, 0, 0}, {0, 2, -0.5}})
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name:       "tri",
		Primitives: []*gltf.Primitive{{Attributes: gltf.Attribute{gltf.POSITION: pos}}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "tri", Mesh: gltf.Index(0)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	path := filepath.Join(dir, "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	path := filepath.Join(dir, "env.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoadModel(t *testing.T) {
	path := writeTriangleGLB(t, t.TempDir())
	m, err := LoadModel(context.Background(), path, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "tri", m.Name)
	assert.Equal(t, 1, m.Meshes)
	assert.Equal(t, 1, m.Nodes)
	assert.Equal(t, 3, m.Vertices)
	assert.Equal(t, scene.Bounds{Min: scene.Vec3{-1, 0, -0.5}, Max: scene.Vec3{1, 2, 0}}, m.Bounds)
}

func TestLoadModelFailures(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadModel(context.Background(), filepath.Join(dir, "missing.glb"), dir)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.glb")
	require.NoError(t, gltf.SaveBinary(gltf.NewDocument(), empty))
	_, err = LoadModel(context.Background(), empty, dir)
	assert.True(t, errors.Is(err, ErrNoMeshes))

	_, err = LoadModel(context.Background(), "", dir)
	assert.Error(t, err)
}

func TestLoadModelFromURL(t *testing.T) {
	data, err := os.ReadFile(writeTriangleGLB(t, t.TempDir()))
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	cache := t.TempDir()
	m, err := LoadModel(context.Background(), srv.URL+"/helmet.glb", cache)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache, "helmet.glb"), m.Path)
	assert.Equal(t, 3, m.Vertices)
}

func TestLoadModelRejectsRemoteGLTF(t *testing.T) {
	for _, tc := range []struct {
		name, path, contentType string
	}{
		{"by extension", "/scene.gltf", "application/octet-stream"},
		{"by content type", "/scene", "model/gltf+json"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				_, _ = w.Write([]byte(`{"asset":{"version":"2.0"},"buffers":[{"uri":"scene.bin","byteLength":4}]}`))
			}))
			defer srv.Close()

			_, err := LoadModel(context.Background(), srv.URL+tc.path, t.TempDir())
			assert.ErrorIs(t, err, ErrRemoteGLTF)
		})
	}
}

func TestLoadEnvMap(t *testing.T) {
	path := writePNG(t, t.TempDir(), 64, 32)
	env, err := LoadEnvMap(context.Background(), path, t.TempDir(), EnvOptions{MaxWidth: 32, Blur: 1})
	require.NoError(t, err)
	w, h := env.Size()
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)

	env, err = LoadEnvMap(context.Background(), path, t.TempDir(), EnvOptions{})
	require.NoError(t, err)
	w, h = env.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
}

func TestPrefilterRejectsNonPanorama(t *testing.T) {
	_, err := Prefilter(image.NewRGBA(image.Rect(0, 0, 32, 32)), DefaultEnvOptions())
	assert.ErrorIs(t, err, ErrNotEquirect)
	_, err = Prefilter(image.NewRGBA(image.Rect(0, 0, 0, 0)), DefaultEnvOptions())
	assert.ErrorIs(t, err, ErrNotEquirect)
}

func TestFuture(t *testing.T) {
	release := make(chan struct{})
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 42, nil
	})
	_, ok, _ := f.Poll()
	assert.False(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	v, ok, err = f.Poll()
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	boom := errors.New("boom")
	r := Resolved[*Model](nil, boom)
	_, ok, err = r.Poll()
	assert.True(t, ok)
	assert.Same(t, boom, err)
}
