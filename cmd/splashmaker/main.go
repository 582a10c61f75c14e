// Command splashmaker converts an image into a splash screen blob for a
// page-addressed monochrome display.
//
// The image is reduced to black and white, packed 8 rows per byte and
// written either as a raw blob (copy it to IMAGES/SPLASH on the SD card)
// or as a C array for compiling into firmware.
//
// Usage:
//
//	splashmaker [-in image.bmp] [-out splash] [-format bin|c] [-fit 128x64]
//	            [-threshold] [-invert] [-contrast N] [-preview preview.png] [-v]
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"strconv"
	"strings"

	"github.com/flavioheleno/splash"
	"github.com/flavioheleno/splash/imageio"
)

// Panel geometry the transmitter firmware draws the splash onto.
const (
	panelWidth  = 128
	panelHeight = 64
)

var (
	inPath    = flag.String("in", "image.bmp", "Input image file")
	outPath   = flag.String("out", "splash", "Output file")
	outFormat = flag.String("format", "bin", "Output format: bin (raw blob) or c (C array)")
	arrayName = flag.String("name", "splash", "Array name when -format is c")
	fitSize   = flag.String("fit", "", "Resize to fit within WxH before packing (e.g. 128x64)")
	threshold = flag.Bool("threshold", false, "Use a 50% threshold instead of dithering")
	invert    = flag.Bool("invert", false, "Invert pixels")
	contrast  = flag.Float64("contrast", 0, "Contrast adjustment in percent (-100 to 100)")
	preview   = flag.String("preview", "", "Also save the packed result as a PNG preview")
	verbose   = flag.Bool("v", false, "Verbose output")
)

type config struct {
	in, out string
	format  string
	name    string
	convert imageio.ConvertOpts
	preview string
	verbose bool
}

func main() {
	flag.Parse()

	fit, err := parseSize(*fitSize)
	if err != nil {
		log.Fatalf("Invalid -fit: %v", err)
	}

	cfg := config{
		in:     *inPath,
		out:    *outPath,
		format: *outFormat,
		name:   *arrayName,
		convert: imageio.ConvertOpts{
			Fit:       fit,
			Contrast:  float32(*contrast),
			Invert:    *invert,
			Threshold: *threshold,
		},
		preview: *preview,
		verbose: *verbose,
	}

	if err := run(cfg); err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Println("Done")
}

func run(cfg config) error {
	switch cfg.format {
	case "bin":
	case "c":
		if err := splash.CheckArrayName(cfg.name); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (want bin or c)", cfg.format)
	}

	src, err := imageio.Decode(cfg.in)
	if err != nil {
		return err
	}
	if cfg.verbose {
		log.Printf("Decoded %s: %dx%d", cfg.in, src.Bounds().Dx(), src.Bounds().Dy())
	}

	bw := imageio.Monochrome(src, &cfg.convert)
	w, h := bw.Bounds().Dx(), bw.Bounds().Dy()
	if w != panelWidth || h != panelHeight {
		log.Printf("Warning: image is %dx%d, the transmitter panel is %dx%d", w, h, panelWidth, panelHeight)
	}

	// Refuse before anything is written
	if err := splash.CheckBlobSize(splash.Size(w, h)); err != nil {
		return err
	}

	if err := writeBlob(cfg, bw); err != nil {
		return err
	}
	if cfg.verbose {
		log.Printf("Packed %d pages x %d columns = %d bytes", splash.Pages(h), w, splash.Size(w, h))
	}

	if cfg.preview != "" {
		if err := savePreview(cfg.preview, bw); err != nil {
			return err
		}
		if cfg.verbose {
			log.Printf("Preview saved to %s", cfg.preview)
		}
	}
	return nil
}

func writeBlob(cfg config, bw splash.Bitmap) (err error) {
	f, err := imageio.Create(cfg.out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close %s: %w", cfg.out, cerr)
		}
	}()

	if cfg.format == "c" {
		blob, err := splash.Pack(bw)
		if err != nil {
			return err
		}
		r := bw.Bounds()
		return splash.WriteCArray(f, cfg.name, blob, r.Dx(), r.Dy())
	}
	return splash.Encode(f, bw)
}

// savePreview renders the packed blob back to an image, so the preview
// shows exactly what the display will get.
func savePreview(path string, bw splash.Bitmap) error {
	blob, err := splash.Pack(bw)
	if err != nil {
		return err
	}
	r := bw.Bounds()
	img, err := splash.Unpack(blob, r.Dx(), r.Dy())
	if err != nil {
		return err
	}
	return imageio.SavePNG(path, img)
}

// parseSize parses "WxH". An empty string means no size.
func parseSize(s string) (image.Point, error) {
	if s == "" {
		return image.Point{}, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("%q is not WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return image.Point{}, fmt.Errorf("bad width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return image.Point{}, fmt.Errorf("bad height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, fmt.Errorf("%q: %w", s, splash.ErrInvalidDimensions)
	}
	return image.Pt(w, h), nil
}
