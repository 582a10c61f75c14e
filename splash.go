// Package splash encodes monochrome images into splash screen blobs for
// page-addressed display controllers.
package splash

import (
	"errors"
	"fmt"
	"image"
	"io"
	"reflect"

	"github.com/flavioheleno/splash/image1bit"
)

// PageHeight is the number of pixel rows stored in one page byte.
const PageHeight = 8

// MaxBlobSize is the largest splash blob the transmitter firmware will load.
// Larger files are skipped on boot.
const MaxBlobSize = 131072

var (
	// ErrInvalidDimensions is returned for images with zero or negative width or height.
	ErrInvalidDimensions = errors.New("splash: width and height must be positive")
	// ErrSizeMismatch is returned when a blob does not match the expected dimensions.
	ErrSizeMismatch = errors.New("splash: blob size does not match dimensions")
	// ErrSinkWrite is returned when the destination cannot accept the blob.
	// Bytes already written are not rolled back.
	ErrSinkWrite = errors.New("splash: write failed")
	// ErrTooLarge is returned for blobs over MaxBlobSize.
	ErrTooLarge = errors.New("splash: blob exceeds firmware size limit")
)

// Bitmap is a grid of on/off pixels. Coordinates are absolute, within Bounds.
//
// image1bit.Image and image1bit.VerticalLSB both implement Bitmap.
type Bitmap interface {
	Bounds() image.Rectangle
	BitAt(x, y int) image1bit.Bit
}

// Pages returns the number of 8-row pages needed for height rows.
func Pages(height int) int {
	return (height + PageHeight - 1) / PageHeight
}

// Size returns the blob length in bytes for a width x height image.
func Size(width, height int) int {
	return width * Pages(height)
}

// CheckBlobSize reports whether a blob of n bytes can be loaded by the firmware.
func CheckBlobSize(n int) error {
	if n > MaxBlobSize {
		return fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrTooLarge, n, MaxBlobSize)
	}
	return nil
}

// Pack encodes img into a splash blob.
//
// The blob holds one byte per column for each page, pages top to bottom and
// columns left to right. Bit b of a byte is row b of the page. When the height
// is not a multiple of 8 the last page only fills its low bits; the remaining
// bits are zero.
//
// A nil img, including a nil pointer of a concrete image type, is rejected
// with ErrInvalidDimensions.
func Pack(img Bitmap) ([]byte, error) {
	if isNil(img) {
		return nil, ErrInvalidDimensions
	}
	r := img.Bounds()
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, w, h)
	}

	full, rem := h/PageHeight, h%PageHeight
	out := make([]byte, 0, Size(w, h))
	for page := 0; page < full; page++ {
		for x := 0; x < w; x++ {
			out = append(out, packByte(img, r.Min, x, page, PageHeight))
		}
	}
	if rem > 0 {
		for x := 0; x < w; x++ {
			out = append(out, packByte(img, r.Min, x, full, rem))
		}
	}
	return out, nil
}

func isNil(img Bitmap) bool {
	if img == nil {
		return true
	}
	v := reflect.ValueOf(img)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// packByte builds the byte for column x of page from its first rows pixels.
// Bits at and above rows stay clear.
func packByte(img Bitmap, origin image.Point, x, page, rows int) byte {
	var b byte
	for bit := 0; bit < rows; bit++ {
		if img.BitAt(origin.X+x, origin.Y+page*PageHeight+bit) {
			b |= 1 << uint(bit)
		}
	}
	return b
}

// Encode packs img and writes the blob to w.
//
// Write failures are wrapped with ErrSinkWrite. A failed write may leave a
// truncated blob behind; the format has no framing to detect it.
func Encode(w io.Writer, img Bitmap) error {
	blob, err := Pack(img)
	if err != nil {
		return err
	}
	n, err := w.Write(blob)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	if n != len(blob) {
		return fmt.Errorf("%w: %w (%d of %d bytes)", ErrSinkWrite, io.ErrShortWrite, n, len(blob))
	}
	return nil
}

// Unpack returns the image stored in a blob of the given dimensions.
// The returned image shares memory with data.
func Unpack(data []byte, width, height int) (*image1bit.VerticalLSB, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if want := Size(width, height); len(data) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrSizeMismatch, len(data), want, width, height)
	}
	return &image1bit.VerticalLSB{
		Pix:    data,
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}
