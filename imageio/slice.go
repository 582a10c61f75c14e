package imageio

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/gift"

	"github.com/flavioheleno/splash"
)

// DefaultSliceDir is where SliceFile writes when no directory is given.
const DefaultSliceDir = "output_images"

// ErrInvalidCut is returned for a non-positive cut width.
var ErrInvalidCut = errors.New("imageio: cut width must be positive")

// Slice cuts img into vertical strips of cutWidth pixels, left to right.
// The last strip is narrower when the width is not a multiple of cutWidth.
// Every strip keeps the full image height and starts at (0, 0).
func Slice(img image.Image, cutWidth int) ([]image.Image, error) {
	if cutWidth <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCut, cutWidth)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", splash.ErrInvalidDimensions, b.Dx(), b.Dy())
	}

	n := (b.Dx() + cutWidth - 1) / cutWidth
	parts := make([]image.Image, 0, n)
	for i := 0; i < n; i++ {
		left := b.Min.X + i*cutWidth
		right := min(left+cutWidth, b.Max.X)

		g := gift.New(gift.Crop(image.Rect(left, b.Min.Y, right, b.Max.Y)))
		dst := image.NewNRGBA(g.Bounds(b))
		g.Draw(dst, img)
		parts = append(parts, dst)
	}
	return parts, nil
}

// SliceFile decodes the image at path, slices it and saves the strips as
// img_<i>.png in outDir, creating it when needed. An empty outDir means
// DefaultSliceDir. It returns the written file paths in order.
func SliceFile(path string, cutWidth int, outDir string) ([]string, error) {
	if outDir == "" {
		outDir = DefaultSliceDir
	}

	img, err := Decode(path)
	if err != nil {
		return nil, err
	}
	parts, err := Slice(img, cutWidth)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("imageio: cannot create %s: %w", outDir, err)
	}

	paths := make([]string, 0, len(parts))
	for i, part := range parts {
		p := filepath.Join(outDir, fmt.Sprintf("img_%d.png", i))
		if err := SavePNG(p, part); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
