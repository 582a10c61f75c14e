// Package ssd1306 controls a monochrome SSD1306 OLED display via SPI.
//
// The SSD1306 is a 1-bit OLED controller with 128x64 pixels of display RAM.
// This driver implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 1 bit per pixel, lit or dark
// - Support for 128x64, 128x32 and other panels up to 128 columns and 8 pages
// - RAM organized in pages of 8 rows, one byte per column, bit 0 on top
// - Hardware scrolling support (horizontal only)
// - Adjustable contrast (0-255)
// - Display inversion
//
// The page layout is the splash blob layout, so a blob made for the panel
// size can be written to the display unchanged.
//
// # Hardware Connection
//
// Connect the SSD1306 display to your system via SPI (4-wire mode):
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	D0/CLK      → SPI Clock (SCLK)
//	D1/MOSI     → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	package main
//
//	import (
//		"os"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//
//		"github.com/flavioheleno/splash/ssd1306"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open SPI bus
//		spiBus, _ := spireg.Open("")
//
//		// Get Data/Command GPIO pin
//		dcPin := gpioreg.ByName("GPIO25")
//
//		// Create device
//		dev, _ := ssd1306.NewSPI(spiBus, dcPin, &ssd1306.Opts{
//			W: 128,
//			H: 64,
//		})
//		defer dev.Halt()
//
//		// Show a splash blob made by splashmaker
//		blob, _ := os.ReadFile("splash")
//		dev.Write(blob)
//	}
//
// # Using Hardware Reset Pin (Optional)
//
// If the RES pin is wired to a GPIO, pass it in Opts:
//
//	dev, _ := ssd1306.NewSPI(spiBus, dcPin, &ssd1306.Opts{
//		W:   128,
//		H:   64,
//		RST: gpioreg.ByName("GPIO24"),
//	})
//
// The driver pulls RST low for 10ms and releases it for 10ms before the init
// sequence. Without RST it relies on the power-on reset.
//
// # Drawing Modes
//
// ## Full-Frame Update
//
// Write sends a complete blob, splash.Size(W, H) bytes, in one transfer:
//
//	dev.Write(blob)
//
// ## Differential Updates
//
// Draw accepts any image.Image. Colors are reduced with image1bit.BitModel,
// and only the smallest page and column window that changed is sent:
//
//	dev.Draw(dev.Bounds(), myImage, image.Point{})
//
// A full-size image1bit.VerticalLSB at the origin skips the diff and is
// written directly.
//
// # Hardware Scrolling
//
// Scrolling works on whole pages:
//
//	// Scroll all 8 pages left, one step every 5 frames
//	dev.ScrollHorizontal(0, 7, ssd1306.Speed5Frames, false)
//	time.Sleep(5 * time.Second)
//
//	// Stop scrolling; the frame is rewritten since RAM is left shifted
//	dev.StopScroll()
//
// # Display Resolution
//
//	Opts{W: 128, H: 64} // 128x64 (default)
//	Opts{W: 128, H: 32, Sequential: true} // 128x32 panels
//
// Width must be between 1 and 128. Height must be a multiple of 8 up to 64.
//
// # Datasheet
//
// For command descriptions and timing information, see:
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
