// Package export writes generated caves in interchange and preview formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/Faultbox/midgard-caves/internal/generator"
)

// Export errors.
var (
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrNothingToRender  = errors.New("mesh has no triangles to render")
	ErrInvalidImageSize = errors.New("invalid image size")
)

// Format names.
const (
	FormatOBJ   = "obj"
	FormatJSON  = "json"
	FormatPNG   = "png"
	FormatBMP   = "bmp"
	FormatASCII = "ascii"
	FormatGAT   = "gat"
)

// Options controls format-specific output.
type Options struct {
	Scale int // Raster pixels per square
}

type writerFunc func(w io.Writer, res *generator.Result, opts Options) error

var writers = map[string]writerFunc{
	FormatOBJ: func(w io.Writer, res *generator.Result, _ Options) error {
		return WriteOBJ(w, res.Mesh, res.Seed)
	},
	FormatJSON: func(w io.Writer, res *generator.Result, _ Options) error {
		return WriteJSON(w, NewDocument(res))
	},
	FormatPNG: func(w io.Writer, res *generator.Result, opts Options) error {
		img, err := Render(res.Mesh, res.SquareSize, opts.Scale)
		if err != nil {
			return err
		}
		return WritePNG(w, img)
	},
	FormatBMP: func(w io.Writer, res *generator.Result, opts Options) error {
		img, err := Render(res.Mesh, res.SquareSize, opts.Scale)
		if err != nil {
			return err
		}
		return WriteBMP(w, img)
	},
	FormatASCII: func(w io.Writer, res *generator.Result, _ Options) error {
		return WriteGrid(w, res.Map.Bordered)
	},
	FormatGAT: func(w io.Writer, res *generator.Result, _ Options) error {
		return WriteGAT(w, res.Map.Bordered)
	},
}

// Formats returns the supported format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBinary reports whether format produces binary output.
func IsBinary(format string) bool {
	return format == FormatPNG || format == FormatBMP || format == FormatGAT
}

// Write encodes res in the named format.
func Write(w io.Writer, format string, res *generator.Result, opts Options) error {
	fn, ok := writers[format]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return fn(w, res, opts)
}
