package export

import (
	"io"

	"github.com/Faultbox/midgard-caves/pkg/cave"
)

// WriteGrid writes the grid's text form: '#' walls, '.' open, top row first.
func WriteGrid(w io.Writer, grid *cave.Grid) error {
	_, err := io.WriteString(w, grid.String())
	return err
}
