// Command slicer cuts an image into vertical strips of a fixed width.
//
// It is used to split font and icon sheets into per-glyph images before
// converting them. Strips are saved as img_0.png, img_1.png, ... from left
// to right; the last strip is narrower when the width does not divide evenly.
//
// Usage:
//
//	slicer -in sheet.png -width 6 [-out output_images]
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/flavioheleno/splash/imageio"
)

var (
	inPath   = flag.String("in", "", "Input image file")
	cutWidth = flag.Int("width", 0, "Strip width in pixels")
	outDir   = flag.String("out", imageio.DefaultSliceDir, "Output directory")
	verbose  = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if *inPath == "" || *cutWidth <= 0 {
		fmt.Println("Usage: slicer -in image -width N [-out dir]")
		flag.PrintDefaults()
		log.Fatal("Input file and a positive -width are required")
	}

	paths, err := imageio.SliceFile(*inPath, *cutWidth, *outDir)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if *verbose {
		for _, p := range paths {
			log.Printf("Wrote %s", p)
		}
	}
	fmt.Printf("Saved %d images to %s\n", len(paths), *outDir)
}
