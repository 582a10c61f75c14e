// Package imageio loads, converts and saves the images that feed the splash encoder.
//
// Decode understands PNG, JPEG, GIF, BMP, TIFF and WebP files. Monochrome
// reduces any image to on/off pixels with Floyd-Steinberg error diffusion,
// or with a plain threshold when requested.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/gift"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/flavioheleno/splash"
	"github.com/flavioheleno/splash/image1bit"
)

// ErrDecode wraps every codec failure returned by Decode.
var ErrDecode = errors.New("imageio: cannot decode image")

// ConvertOpts configures the monochrome conversion.
type ConvertOpts struct {
	// Fit scales the image down or up to fit within Fit.X x Fit.Y, keeping
	// the aspect ratio. Neither side shrinks below one pixel. Zero keeps the
	// original size.
	Fit image.Point

	// Contrast adjusts contrast before reduction, in percent (-100 to 100).
	Contrast float32

	// Invert swaps on and off pixels.
	Invert bool

	// Threshold uses a 50% threshold instead of error diffusion.
	Threshold bool
}

// Decode opens path and decodes it with the registered image codecs.
func Decode(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("imageio: %s is a directory, not a file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: cannot open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %s is %dx%d", splash.ErrInvalidDimensions, path, b.Dx(), b.Dy())
	}
	return img, nil
}

// Monochrome reduces img to on/off pixels. opts can be nil to use defaults.
// The result always starts at (0, 0).
func Monochrome(img image.Image, opts *ConvertOpts) *image1bit.Image {
	if opts == nil {
		opts = &ConvertOpts{}
	}

	g := gift.New()
	if opts.Fit.X > 0 && opts.Fit.Y > 0 {
		size := fitSize(img.Bounds().Size(), opts.Fit)
		if size != img.Bounds().Size() {
			g.Add(gift.Resize(size.X, size.Y, gift.LanczosResampling))
		}
	}
	g.Add(gift.Grayscale())
	if opts.Contrast != 0 {
		g.Add(gift.Contrast(opts.Contrast))
	}
	if opts.Invert {
		g.Add(gift.Invert())
	}
	if opts.Threshold {
		g.Add(gift.Threshold(50))
	}

	gray := image.NewGray(g.Bounds(img.Bounds()))
	g.Draw(gray, img)

	gb := gray.Bounds()
	out := image1bit.NewImage(image.Rect(0, 0, gb.Dx(), gb.Dy()))

	// Already two-level, copy it across
	if opts.Threshold {
		for y := 0; y < gb.Dy(); y++ {
			for x := 0; x < gb.Dx(); x++ {
				out.Set(x, y, gray.GrayAt(gb.Min.X+x, gb.Min.Y+y))
			}
		}
		return out
	}

	// Index 1 is white, so the color index is the bit value.
	pal := image.NewPaletted(out.Rect, color.Palette{color.Black, color.White})
	draw.FloydSteinberg.Draw(pal, pal.Bounds(), gray, gb.Min)
	for y := 0; y < gb.Dy(); y++ {
		for x := 0; x < gb.Dx(); x++ {
			out.SetBit(x, y, pal.ColorIndexAt(x, y) == 1)
		}
	}
	return out
}

// fitSize scales src to the largest size within fit with the same aspect
// ratio, rounding to the nearest pixel. Each side is at least 1.
func fitSize(src, fit image.Point) image.Point {
	if src.X <= 0 || src.Y <= 0 {
		return src
	}
	var w, h int
	if src.X*fit.Y >= src.Y*fit.X {
		// Width bound
		w = fit.X
		h = (2*src.Y*fit.X + src.X) / (2 * src.X)
	} else {
		h = fit.Y
		w = (2*src.X*fit.Y + src.Y) / (2 * src.Y)
	}
	return image.Pt(max(1, min(w, fit.X)), max(1, min(h, fit.Y)))
}

// Create opens path for writing, truncating it. The parent directory must exist.
func Create(path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("imageio: output directory does not exist: %s", dir)
		}
		return nil, fmt.Errorf("imageio: cannot access output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("imageio: output path parent is not a directory: %s", dir)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: cannot create %s: %w", path, err)
	}
	return f, nil
}

// SavePNG writes img to path as a PNG file.
func SavePNG(path string, img image.Image) (err error) {
	f, err := Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("imageio: cannot close %s: %w", path, cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("imageio: cannot encode %s: %w", path, err)
	}
	return nil
}
