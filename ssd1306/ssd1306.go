// Package ssd1306 controls a monochrome SSD1306 OLED display via SPI.
//
// The SSD1306 stores pixels in 8-row pages, one byte per column, which is
// the splash blob layout. Blobs can be written to the display unchanged.
//
// See the examples for how to use this package.
package ssd1306

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/flavioheleno/splash"
	"github.com/flavioheleno/splash/image1bit"
)

var errHalted = errors.New("ssd1306: halted")

var _ display.Drawer = (*Dev)(nil)

// Opts is the configuration for the SSD1306 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (default: 128, must be ≤128)
	H int // Height (default: 64, must be a multiple of 8 and ≤64)

	// Rotation and COM pin layout
	Rotated    bool // 180° rotation
	Sequential bool // Sequential COM pin configuration (most 128x32 panels)

	// Optional hardware reset pin
	RST gpio.PinIO // Reset pin (optional, nil if not used)
}

// Dev is the device handle for the SSD1306 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinIO  // Reset pin (optional)

	// Display geometry
	rect image.Rectangle

	// Pixel buffers
	buffer []byte                 // Current frame, blob layout
	next   *image1bit.VerticalLSB // For lazy double buffering

	// State
	halted bool
}

// NewSPI creates a new SSD1306 device connected via SPI.
//
// The SPI port is configured for 8MHz, Mode0 (CPOL=0, CPHA=0), 8-bit transfers.
// The dc (Data/Command) GPIO pin must be provided and configured as an output.
//
// opts can be nil to use defaults (128x64 display).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{W: 128, H: 64}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("ssd1306: %w", err)
	}

	d := newDev(c, dc, opts)
	if err := d.init(opts); err != nil {
		return nil, err
	}
	return d, nil
}

func (o *Opts) validate() error {
	if o.W <= 0 || o.W > 128 {
		return errors.New("ssd1306: width must be between 1 and 128")
	}
	if o.H <= 0 || o.H > 64 || o.H%splash.PageHeight != 0 {
		return errors.New("ssd1306: height must be a multiple of 8 between 8 and 64")
	}
	return nil
}

func newDev(c conn.Conn, dc gpio.PinOut, opts *Opts) *Dev {
	return &Dev{
		c:      c,
		dc:     dc,
		rst:    opts.RST,
		rect:   image.Rect(0, 0, opts.W, opts.H),
		buffer: make([]byte, splash.Size(opts.W, opts.H)),
	}
}

// init sends the initialization sequence to the display.
func (d *Dev) init(opts *Opts) error {
	// Hardware reset sequence (if RST pin is provided)
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1306: failed to pull RST low: %w", err)
		}
		time.Sleep(10 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1306: failed to pull RST high: %w", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cmds := []byte{
		0xAE,       // Display OFF
		0xD5, 0x80, // Clock divider and oscillator frequency
		0xA8, byte(opts.H - 1), // MUX ratio
		0xD3, 0x00, // Display offset
		0x40,       // Start line 0
		0x8D, 0x14, // Enable charge pump
		0x20, 0x00, // Horizontal addressing: columns first, then pages
	}

	// Segment remap and COM scan direction
	seg, com := byte(0xA1), byte(0xC8)
	if opts.Rotated {
		seg, com = 0xA0, 0xC0
	}
	pins := byte(0x12)
	if opts.Sequential {
		pins = 0x02
	}

	cmds = append(cmds,
		seg, com,
		0xDA, pins, // COM pins hardware configuration
		0x81, 0xCF, // Contrast
		0xD9, 0xF1, // Pre-charge period
		0xDB, 0x40, // VCOMH deselect level
		0x2E, // Deactivate scroll
		0xA4, // Display follows RAM
		0xA6, // Normal display mode
	)

	if err := d.sendCommands(cmds); err != nil {
		return err
	}

	// Clear display RAM
	if err := d.writeFullFrame(make([]byte, len(d.buffer))); err != nil {
		return err
	}

	// Turn display ON
	return d.sendCommand(0xAF)
}

// sendCommand sends a single command byte.
func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommands([]byte{cmd})
}

// sendCommands sends a slice of command bytes.
func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

// sendData sends a slice of data bytes.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writeRect writes page data to the columns [col0, col1] of pages [page0, page1].
// data holds one byte per column for each page, pages first to last.
func (d *Dev) writeRect(col0, col1, page0, page1 int, data []byte) error {
	commands := []byte{
		0x21, byte(col0), byte(col1), // Column address
		0x22, byte(page0), byte(page1), // Page address
	}
	if err := d.sendCommands(commands); err != nil {
		return err
	}
	return d.sendData(data)
}

// writeFullFrame writes an entire blob to the display.
func (d *Dev) writeFullFrame(blob []byte) error {
	return d.writeRect(0, d.rect.Dx()-1, 0, splash.Pages(d.rect.Dy())-1, blob)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes a splash blob to the display.
// The blob must be exactly splash.Size(width, height) bytes.
func (d *Dev) Write(blob []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(blob) != len(d.buffer) {
		return 0, errors.New("ssd1306: invalid buffer size")
	}
	if err := d.writeFullFrame(blob); err != nil {
		return 0, err
	}
	copy(d.buffer, blob)
	if d.next != nil {
		copy(d.next.Pix, blob)
	}
	return len(blob), nil
}

// Draw draws an image onto the display, sending only the changed pages and columns.
// The dst rectangle specifies the destination region on the display.
// The src image is positioned at src point sp within the destination.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: a full-size VerticalLSB is already a blob
	if srcImg, ok := src.(*image1bit.VerticalLSB); ok {
		if dst == d.rect && sp == (image.Point{}) && srcImg.Rect == d.rect {
			_, err := d.Write(srcImg.Pix)
			return err
		}
	}

	if d.next == nil {
		d.next = image1bit.NewVerticalLSB(d.rect)
		copy(d.next.Pix, d.buffer)
	}

	draw.Draw(d.next, dst, src, sp, draw.Src)

	col0, col1, page0, page1 := d.calculateDiff()
	if col0 > col1 {
		// No changes
		return nil
	}

	if err := d.writeRect(col0, col1, page0, page1, d.extractRegion(col0, col1, page0, page1)); err != nil {
		return err
	}

	copy(d.buffer, d.next.Pix)
	return nil
}

// calculateDiff compares the current and next frames to find the smallest
// changed window. Returns (col0, col1, page0, page1), or col0 > col1 when
// nothing changed.
func (d *Dev) calculateDiff() (col0, col1, page0, page1 int) {
	width := d.rect.Dx()
	pages := splash.Pages(d.rect.Dy())

	col0, col1 = width, -1
	page0, page1 = pages, -1

	for page := 0; page < pages; page++ {
		start := page * width
		end := start + width
		if bytes.Equal(d.buffer[start:end], d.next.Pix[start:end]) {
			continue
		}
		page0 = min(page0, page)
		page1 = max(page1, page)

		for x := 0; x < width; x++ {
			if d.buffer[start+x] != d.next.Pix[start+x] {
				col0 = min(col0, x)
				col1 = max(col1, x)
			}
		}
	}
	return
}

// extractRegion extracts the bytes of a page/column window from the next frame.
func (d *Dev) extractRegion(col0, col1, page0, page1 int) []byte {
	width := d.rect.Dx()
	n := col1 - col0 + 1

	result := make([]byte, 0, n*(page1-page0+1))
	for page := page0; page <= page1; page++ {
		start := page*width + col0
		result = append(result, d.next.Pix[start:start+n]...)
	}
	return result
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if d.halted {
		return errHalted
	}
	return d.sendCommands([]byte{0x81, contrast})
}

// Invert inverts the display colors (lit pixels become dark and vice versa).
func (d *Dev) Invert(invert bool) error {
	if d.halted {
		return errHalted
	}
	mode := byte(0xA6) // Normal display
	if invert {
		mode = 0xA7 // Inverted display
	}
	return d.sendCommand(mode)
}

// Halt powers off the display.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	return d.sendCommand(0xAE) // Display OFF
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ScrollSpeed is the horizontal scroll step interval, in frames.
type ScrollSpeed byte

const (
	Speed2Frames   ScrollSpeed = 0x07
	Speed3Frames   ScrollSpeed = 0x04
	Speed4Frames   ScrollSpeed = 0x05
	Speed5Frames   ScrollSpeed = 0x00
	Speed25Frames  ScrollSpeed = 0x06
	Speed64Frames  ScrollSpeed = 0x01
	Speed128Frames ScrollSpeed = 0x02
	Speed256Frames ScrollSpeed = 0x03
)

// ScrollHorizontal starts horizontal scrolling of pages [startPage, endPage].
// If right is true, scrolls right; otherwise scrolls left.
func (d *Dev) ScrollHorizontal(startPage, endPage byte, speed ScrollSpeed, right bool) error {
	if d.halted {
		return errHalted
	}

	pages := splash.Pages(d.rect.Dy())
	if int(startPage) >= pages || int(endPage) >= pages || startPage > endPage {
		return errors.New("ssd1306: scroll page out of range")
	}

	scrollCmd := byte(0x26) // Left
	if right {
		scrollCmd = 0x27 // Right
	}

	return d.sendCommands([]byte{
		scrollCmd,
		0x00,        // Dummy byte
		startPage,   // Start page
		byte(speed), // Step interval
		endPage,     // End page
		0x00, 0xFF,  // Dummy bytes
		0x2F, // Activate scroll
	})
}

// StopScroll stops scrolling and rewrites the current frame, since the
// controller leaves RAM shifted when a scroll is deactivated.
func (d *Dev) StopScroll() error {
	if d.halted {
		return errHalted
	}
	if err := d.sendCommand(0x2E); err != nil { // Deactivate scroll
		return err
	}
	return d.writeFullFrame(d.buffer)
}
