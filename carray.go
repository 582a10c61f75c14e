package splash

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
)

const bytesPerLine = 16

// ErrInvalidName is returned for array names that are not C identifiers.
var ErrInvalidName = errors.New("splash: array name is not a valid C identifier")

var cIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// CheckArrayName reports whether name can be used as a C array name.
func CheckArrayName(name string) error {
	if !cIdent.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// WriteCArray writes data as a C array initializer named name, for
// compiling a splash blob into firmware instead of loading it from a card.
// data must be a complete blob for width x height.
func WriteCArray(w io.Writer, name string, data []byte, width, height int) error {
	if err := CheckArrayName(name); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	if want := Size(width, height); len(data) != want {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrSizeMismatch, len(data), want, width, height)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// %dx%d pixels, %d pages\n", width, height, Pages(height))
	fmt.Fprintf(bw, "const unsigned char %s[%d] = {\n", name, len(data))
	for i, b := range data {
		if i%bytesPerLine == 0 {
			bw.WriteString("  ")
		}
		fmt.Fprintf(bw, "0x%02X", b)
		switch {
		case i == len(data)-1:
			bw.WriteString("\n")
		case (i+1)%bytesPerLine == 0:
			bw.WriteString(",\n")
		default:
			bw.WriteString(", ")
		}
	}
	bw.WriteString("};\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}
	return nil
}
