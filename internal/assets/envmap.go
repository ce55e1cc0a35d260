package assets

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Width/height ratio accepted as an equirectangular panorama (nominally 2:1).
const (
	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

// ErrNotEquirect is returned when the environment image is not a 2:1 panorama.
var ErrNotEquirect = errors.New("environment map is not equirectangular")

// EnvOptions controls environment map preprocessing.
type EnvOptions struct {
	// MaxWidth downsizes wider panoramas (keeping 2:1). Zero keeps the source size.
	MaxWidth int `yaml:"max_width"`
	// Blur is the gaussian prefilter radius in pixels; approximates a rough reflector. Zero disables it.
	Blur float64 `yaml:"blur"`
}

// DefaultEnvOptions downsizes to 2048 wide and applies a light prefilter.
func DefaultEnvOptions() EnvOptions {
	return EnvOptions{MaxWidth: 2048, Blur: 1.5}
}

// EnvMap is a decoded, prefiltered equirectangular environment.
type EnvMap struct {
	Path  string
	Image *image.RGBA
}

// Size returns the pixel size of the prefiltered image.
func (e *EnvMap) Size() (w, h int) {
	b := e.Image.Bounds()
	return b.Dx(), b.Dy()
}

// LoadEnvMap resolves src (path or URL) and decodes it (PNG, JPEG, BMP, WebP, TIFF).
func LoadEnvMap(ctx context.Context, src, cacheDir string, opts EnvOptions) (*EnvMap, error) {
	path, err := resolve(ctx, src, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load environment %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rgba, err := Prefilter(img, opts)
	if err != nil {
		return nil, fmt.Errorf("load environment %s: %w", path, err)
	}
	return &EnvMap{Path: path, Image: rgba}, nil
}

// Prefilter checks the panorama aspect, downsizes and blurs img.
func Prefilter(img image.Image, opts EnvOptions) (*image.RGBA, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrNotEquirect)
	}
	aspect := float64(b.Dx()) / float64(b.Dy())
	if aspect < equirectAspectMin || aspect > equirectAspectMax {
		return nil, fmt.Errorf("%w: %dx%d", ErrNotEquirect, b.Dx(), b.Dy())
	}
	w, h := b.Dx(), b.Dy()
	if opts.MaxWidth > 0 && w > opts.MaxWidth {
		h = h * opts.MaxWidth / w
		w = opts.MaxWidth
	}
	out := transform.Resize(img, w, h, transform.Linear)
	if opts.Blur > 0 {
		out = blur.Gaussian(out, opts.Blur)
	}
	return out, nil
}
