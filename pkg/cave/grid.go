package cave

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Cell values.
const (
	Open = 0
	Wall = 1
)

// Occupancy is the read-only view of a grid that meshing needs.
type Occupancy interface {
	Width() int
	Height() int
	IsWall(x, y int) bool
}

// Grid is a width x height array of cells indexed (x, y).
// Larger y is "top". Cells are stored x-major: cells[x*height+y].
type Grid struct {
	width  int
	height int
	cells  []uint8
}

// NewGrid allocates an all-open grid. Negative dimensions are treated as zero.
func NewGrid(width, height int) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]uint8, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the cell value at (x, y). Out-of-bounds reads return Wall,
// since the grid is conceptually surrounded by walls.
func (g *Grid) At(x, y int) int {
	if !g.InBounds(x, y) {
		return Wall
	}
	return int(g.cells[x*g.height+y])
}

// IsWall reports whether the cell at (x, y) is a wall.
func (g *Grid) IsWall(x, y int) bool {
	return g.At(x, y) == Wall
}

// Set stores v at (x, y). Any non-zero value is stored as Wall.
// Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y, v int) {
	if !g.InBounds(x, y) {
		return
	}
	if v != Open {
		v = Wall
	}
	g.cells[x*g.height+y] = uint8(v)
}

// Fill sets every cell to v.
func (g *Grid) Fill(v int) {
	c := uint8(Open)
	if v != Open {
		c = Wall
	}
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]uint8, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// WallCount returns the number of wall cells.
func (g *Grid) WallCount() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// WithBorder returns a new grid padded by size wall cells on every side.
func (g *Grid) WithBorder(size int) *Grid {
	size = max(size, 0)
	b := NewGrid(g.width+2*size, g.height+2*size)
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			if x >= size && x < g.width+size && y >= size && y < g.height+size {
				b.cells[x*b.height+y] = g.cells[(x-size)*g.height+(y-size)]
			} else {
				b.cells[x*b.height+y] = Wall
			}
		}
	}
	return b
}

// Fingerprint returns a 64-bit xxhash of the dimensions and cells.
// Equal grids always have equal fingerprints.
func (g *Grid) Fingerprint() uint64 {
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(g.width))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(g.height))

	d := xxhash.New()
	_, _ = d.Write(dims[:])
	_, _ = d.Write(g.cells)
	return d.Sum64()
}

// String renders the grid as text: '#' for walls, '.' for open cells.
// The first line is the top row (y = height-1).
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			if g.cells[x*g.height+y] == Wall {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid parses the text form produced by String. Walls may be written as
// '#' or '1' and open cells as '.' or '0'. Blank lines are skipped and
// trailing carriage returns are ignored.
func ParseGrid(text string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r \t")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}

	width := len(rows[0])
	height := len(rows)
	g := NewGrid(width, height)
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrMalformedGrid, i+1, len(row), width)
		}
		y := height - 1 - i
		for x := 0; x < width; x++ {
			switch row[x] {
			case '#', '1':
				g.cells[x*height+y] = Wall
			case '.', '0':
				g.cells[x*height+y] = Open
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d column %d", ErrMalformedGrid, row[x], i+1, x+1)
			}
		}
	}
	return g, nil
}
