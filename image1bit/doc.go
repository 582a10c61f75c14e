// Package image1bit provides 1-bit image formats for monochrome OLED and LCD controllers.
//
// Controllers such as the SSD1306, SH1106 and KS0108 address their RAM in
// pages of 8 rows. Each byte covers one column of one page, with the least
// significant bit mapped to the top row of the page.
//
// Memory layout example for a 2x10 image (two pages, the second one partial):
//
//	Pix[0] = page 0, x=0  (rows 0-7, bit 0 = row 0)
//	Pix[1] = page 0, x=1
//	Pix[2] = page 1, x=0  (rows 8-9 in bits 0-1, bits 2-7 always 0)
//	Pix[3] = page 1, x=1
//
// This package provides:
//
// - Bit: A color type that is either On (white) or Off (black)
// - BitModel: A color model converting standard Go colors to Bit
// - Image: A row-major, MSB-first bitmap, the usual layout of decoded 1-bit files
// - VerticalLSB: An image.Image whose Pix is the display RAM layout
//
// Example usage:
//
//	// Create a 128x64 frame
//	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
//
//	// Light a pixel
//	img.SetBit(10, 20, image1bit.On)
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(image1bit.On), image.Point{}, draw.Src)
package image1bit
