// Package splash encodes monochrome images into splash screen blobs for
// page-addressed display controllers.
//
// Controllers like the SSD1306, SH1106 and KS0108 organize their RAM in
// pages of 8 pixel rows. A splash blob is a headerless dump of that RAM,
// ready to be streamed to the controller one byte per column.
//
// # Wire Format
//
// There is no header: width and height are agreed out of band.
//
//	byte[0 .. W-1]              page 0, x=0..W-1
//	byte[W .. 2W-1]             page 1, x=0..W-1
//	...
//	byte[(P-1)*W .. P*W-1]      last page, x=0..W-1
//
// where P = ceil(H/8). Bit b (0 = least significant) of a byte is row
// page*8+b of its column; a set bit is a lit pixel. When H is not a
// multiple of 8 the last page only uses its low H%8 bits and the other
// bits are always zero.
//
// # Basic Usage
//
//	src, err := imageio.Decode("image.bmp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	bw := imageio.Monochrome(src, nil)
//
//	f, err := imageio.Create("splash")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	if err := splash.Encode(f, bw); err != nil {
//		log.Fatal(err)
//	}
//
// To inspect a blob, Unpack it with the same dimensions:
//
//	img, err := splash.Unpack(blob, 128, 64)
//
// The result is an image1bit.VerticalLSB, which implements image.Image and
// can be saved as PNG or drawn onto an ssd1306.Dev.
//
// # Firmware Limits
//
// The transmitter firmware reads IMAGES/SPLASH from the SD card and streams
// it to a 128x64 KS0108 panel, 128 columns by 8 pages. Files larger than
// MaxBlobSize are ignored. Blobs for other sizes are valid but will be
// drawn wrapped on that panel.
package splash
