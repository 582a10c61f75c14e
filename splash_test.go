package splash

import (
	"bytes"
	"errors"
	"image"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavioheleno/splash/image1bit"
)

// newBitmap returns a w x h image with the pixels for which on returns true lit.
func newBitmap(w, h int, on func(x, y int) bool) *image1bit.Image {
	img := image1bit.NewImage(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetBit(x, y, image1bit.Bit(on(x, y)))
		}
	}
	return img
}

func allOn(x, y int) bool  { return true }
func allOff(x, y int) bool { return false }

func TestPackSizeLaw(t *testing.T) {
	for w := 1; w <= 17; w += 4 {
		for h := 1; h <= 33; h++ {
			blob, err := Pack(newBitmap(w, h, allOff))
			require.NoError(t, err)
			assert.Len(t, blob, w*((h+7)/8), "%dx%d", w, h)
			assert.Equal(t, Size(w, h), len(blob), "%dx%d", w, h)
		}
	}
}

func TestPages(t *testing.T) {
	tests := []struct {
		height int
		want   int
	}{
		{1, 1},
		{7, 1},
		{8, 1},
		{9, 2},
		{10, 2},
		{16, 2},
		{64, 8},
		{65, 9},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Pages(tt.height), "Pages(%d)", tt.height)
	}
}

func TestPackAllOn(t *testing.T) {
	blob, err := Pack(newBitmap(8, 8, allOn))
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 8), blob)
}

func TestPackZeroFill(t *testing.T) {
	// One full page and two remainder rows, every pixel lit
	blob, err := Pack(newBitmap(5, 10, allOn))
	require.NoError(t, err)
	require.Len(t, blob, 10)

	for x, b := range blob[:5] {
		assert.Equal(t, byte(0xFF), b, "page 0, x=%d", x)
	}
	for x, b := range blob[5:] {
		assert.Equal(t, byte(0x03), b, "page 1, x=%d", x)
		assert.Zero(t, b&0xFC, "page 1, x=%d has bits 2-7 set", x)
	}
}

func TestPackZeroFillMixed(t *testing.T) {
	// Only row 9 lit: bit 1 of the partial page, nothing else
	blob, err := Pack(newBitmap(3, 10, func(x, y int) bool { return y == 9 }))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0x02, 0x02, 0x02}, blob)
}

func TestPackColumnMajorOrder(t *testing.T) {
	// Column 0 lights its even rows, column 1 its odd rows.
	// Page 1 additionally lights row 15 in column 0 to tell pages apart.
	img := newBitmap(2, 16, func(x, y int) bool {
		if x == 0 && y == 15 {
			return true
		}
		return y%2 == x
	})

	blob, err := Pack(img)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x55, // page 0, x=0
		0xAA, // page 0, x=1
		0xD5, // page 1, x=0
		0xAA, // page 1, x=1
	}, blob)
}

func TestPackBitOrder(t *testing.T) {
	// Single lit pixel at row offset b must land in bit b
	for b := 0; b < 8; b++ {
		blob, err := Pack(newBitmap(1, 8, func(x, y int) bool { return y == b }))
		require.NoError(t, err)
		assert.Equal(t, []byte{1 << uint(b)}, blob, "row %d", b)
	}
}

func TestPackDegenerate(t *testing.T) {
	tests := []struct {
		name string
		on   func(x, y int) bool
		want []byte
	}{
		{"1x1 on", allOn, []byte{0x01}},
		{"1x1 off", allOff, []byte{0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := Pack(newBitmap(1, 1, tt.on))
			require.NoError(t, err)
			assert.Equal(t, tt.want, blob)
		})
	}

	blob, err := Pack(newBitmap(1, 20, allOn))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFF, 0x0F}, blob)

	blob, err = Pack(newBitmap(4, 1, allOn))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x01, 0x01, 0x01}, blob)
}

func TestPackInvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		img  Bitmap
	}{
		{"nil image", nil},
		{"nil *Image", (*image1bit.Image)(nil)},
		{"nil *VerticalLSB", (*image1bit.VerticalLSB)(nil)},
		{"zero width", image1bit.NewImage(image.Rect(0, 0, 0, 8))},
		{"zero height", image1bit.NewImage(image.Rect(0, 0, 8, 0))},
		{"empty", image1bit.NewImage(image.Rectangle{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := Pack(tt.img)
			assert.ErrorIs(t, err, ErrInvalidDimensions)
			assert.Nil(t, blob)
		})
	}
}

func TestPackOffsetBounds(t *testing.T) {
	img := image1bit.NewImage(image.Rect(10, 20, 12, 29))
	img.SetBit(10, 20, image1bit.On)
	img.SetBit(11, 28, image1bit.On)

	blob, err := Pack(img)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x01}, blob)
}

func TestPackMatchesVerticalLSB(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	src := newBitmap(13, 27, func(x, y int) bool { return rng.Intn(2) == 1 })

	dst := image1bit.NewVerticalLSB(src.Bounds())
	for y := 0; y < 27; y++ {
		for x := 0; x < 13; x++ {
			dst.SetBit(x, y, src.BitAt(x, y))
		}
	}

	blob, err := Pack(src)
	require.NoError(t, err)
	assert.Equal(t, dst.Pix, blob)
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sizes := []image.Point{{1, 1}, {1, 9}, {2, 16}, {7, 3}, {8, 8}, {31, 17}, {128, 64}, {5, 63}}

	for _, sz := range sizes {
		src := newBitmap(sz.X, sz.Y, func(x, y int) bool { return rng.Intn(2) == 1 })

		blob, err := Pack(src)
		require.NoError(t, err)

		got, err := Unpack(blob, sz.X, sz.Y)
		require.NoError(t, err)
		require.Equal(t, src.Bounds(), got.Bounds())

		for y := 0; y < sz.Y; y++ {
			for x := 0; x < sz.X; x++ {
				if got.BitAt(x, y) != src.BitAt(x, y) {
					t.Fatalf("%v: pixel (%d, %d) = %v, want %v", sz, x, y, got.BitAt(x, y), src.BitAt(x, y))
				}
			}
		}

		// Repacking the decoded image reproduces the blob exactly
		again, err := Pack(got)
		require.NoError(t, err)
		assert.Equal(t, blob, again, "%v", sz)
	}
}

func TestUnpackErrors(t *testing.T) {
	_, err := Unpack(make([]byte, 8), 0, 8)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = Unpack(make([]byte, 8), 8, -1)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = Unpack(make([]byte, 7), 8, 8)
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Unpack(make([]byte, 16), 8, 8)
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

type failingWriter struct {
	err error
}

func (w failingWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

type shortWriter struct {
	limit int
	buf   bytes.Buffer
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		p = p[:w.limit]
	}
	return w.buf.Write(p)
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, newBitmap(8, 8, allOn)))
	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 8), buf.Bytes())
}

func TestEncodeSinkFailure(t *testing.T) {
	diskFull := errors.New("no space left on device")

	err := Encode(failingWriter{err: diskFull}, newBitmap(8, 8, allOn))
	assert.ErrorIs(t, err, ErrSinkWrite)
	assert.ErrorIs(t, err, diskFull)

	w := &shortWriter{limit: 3}
	err = Encode(w, newBitmap(8, 8, allOn))
	assert.ErrorIs(t, err, ErrSinkWrite)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	// Partial output stays written
	assert.Equal(t, 3, w.buf.Len())
}

func TestEncodeInvalidDimensions(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, image1bit.NewImage(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	assert.Zero(t, buf.Len(), "nothing should reach the sink")
}

func TestCheckBlobSize(t *testing.T) {
	assert.NoError(t, CheckBlobSize(Size(128, 64)))
	assert.NoError(t, CheckBlobSize(MaxBlobSize))
	assert.ErrorIs(t, CheckBlobSize(MaxBlobSize+1), ErrTooLarge)
}

func TestWriteCArray(t *testing.T) {
	data := make([]byte, 18)
	for i := range data {
		data[i] = byte(i)
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCArray(&buf, "splash", data, 9, 16))

	want := strings.Join([]string{
		"// 9x16 pixels, 2 pages",
		"const unsigned char splash[18] = {",
		"  0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,",
		"  0x10, 0x11",
		"};",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteCArrayRejects(t *testing.T) {
	tests := []struct {
		name    string
		array   string
		data    []byte
		w, h    int
		wantErr error
	}{
		{"dash in name", "my-logo", []byte{0}, 1, 1, ErrInvalidName},
		{"leading digit", "1logo", []byte{0}, 1, 1, ErrInvalidName},
		{"empty name", "", []byte{0}, 1, 1, ErrInvalidName},
		{"empty data", "logo", nil, 1, 1, ErrSizeMismatch},
		{"short data", "logo", []byte{0, 0}, 2, 16, ErrSizeMismatch},
		{"zero width", "logo", nil, 0, 8, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteCArray(&buf, tt.array, tt.data, tt.w, tt.h)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, buf.Len(), "nothing should be written")
		})
	}
}

func TestCheckArrayName(t *testing.T) {
	for _, name := range []string{"splash", "_logo", "boot_logo2", "A"} {
		assert.NoError(t, CheckArrayName(name), name)
	}
	for _, name := range []string{"my logo", "logo.h", "ünicode"} {
		assert.ErrorIs(t, CheckArrayName(name), ErrInvalidName, name)
	}
}

func TestWriteCArraySinkFailure(t *testing.T) {
	err := WriteCArray(failingWriter{err: io.ErrClosedPipe}, "splash", []byte{1}, 1, 1)
	assert.ErrorIs(t, err, ErrSinkWrite)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
