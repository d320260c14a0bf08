package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Faultbox/midgard-caves/pkg/cave"
)

// GAT errors.
var (
	ErrInvalidGATMagic       = errors.New("invalid GAT magic: expected 'GRAT'")
	ErrUnsupportedGATVersion = errors.New("unsupported GAT version")
	ErrTruncatedGATData      = errors.New("truncated GAT data")
)

// GATCellType is the walkability type stored per GAT cell.
type GATCellType uint32

// Cell types.
const (
	GATWalkable      GATCellType = 0
	GATBlocked       GATCellType = 1
	GATWater         GATCellType = 2
	GATWalkableWater GATCellType = 3
	GATSnipeable     GATCellType = 4
	GATBlockedSnipe  GATCellType = 5
)

// IsWalkable reports whether the cell type allows walking.
func (t GATCellType) IsWalkable() bool {
	return t == GATWalkable || t == GATWalkableWater
}

const (
	gatMagic      = "GRAT"
	gatHeaderSize = 14
	gatCellSize   = 20 // four float32 heights and a uint32 type
	gatMaxSide    = 4096
)

// WriteGAT writes grid as a version 1.2 Ground Altitude Table. Walls become
// blocked cells and open cells walkable ones. All heights are zero. Rows are
// stored bottom first, matching the grid's y axis.
func WriteGAT(w io.Writer, grid *cave.Grid) error {
	bw := bufio.NewWriter(w)

	var header [gatHeaderSize]byte
	copy(header[0:4], gatMagic)
	header[4] = 2 // minor
	header[5] = 1 // major
	binary.LittleEndian.PutUint32(header[6:10], uint32(grid.Width()))
	binary.LittleEndian.PutUint32(header[10:14], uint32(grid.Height()))
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	var cell [gatCellSize]byte
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			t := GATWalkable
			if grid.IsWall(x, y) {
				t = GATBlocked
			}
			binary.LittleEndian.PutUint32(cell[16:20], uint32(t))
			if _, err := bw.Write(cell[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadGAT loads a Ground Altitude Table as a grid. Every cell that cannot be
// walked on, water included, becomes a wall. Heights are ignored.
func ReadGAT(data []byte) (*cave.Grid, error) {
	if len(data) < gatHeaderSize {
		return nil, ErrTruncatedGATData
	}
	if string(data[0:4]) != gatMagic {
		return nil, ErrInvalidGATMagic
	}

	// Version is stored as [minor, major]. The cell layout is the same for
	// 1.x through 3.x.
	minor, major := data[4], data[5]
	if major < 1 || major > 3 {
		return nil, fmt.Errorf("%w: %d.%d", ErrUnsupportedGATVersion, major, minor)
	}

	width := binary.LittleEndian.Uint32(data[6:10])
	height := binary.LittleEndian.Uint32(data[10:14])
	if width == 0 || height == 0 || width > gatMaxSide || height > gatMaxSide {
		return nil, fmt.Errorf("%w: invalid GAT dimensions %dx%d", cave.ErrMalformedGrid, width, height)
	}

	r := bytes.NewReader(data[gatHeaderSize:])
	grid := cave.NewGrid(int(width), int(height))

	var cell [gatCellSize]byte
	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {
			if _, err := io.ReadFull(r, cell[:]); err != nil {
				return nil, fmt.Errorf("%w: cell (%d, %d)", ErrTruncatedGATData, x, y)
			}
			t := GATCellType(binary.LittleEndian.Uint32(cell[16:20]))
			if !t.IsWalkable() {
				grid.Set(x, y, cave.Wall)
			}
		}
	}
	return grid, nil
}
