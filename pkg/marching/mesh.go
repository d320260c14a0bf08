package marching

import (
	"encoding/binary"
	"errors"
	"fmt"
	stdmath "math"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/midgard-caves/pkg/cave"
	"github.com/Faultbox/midgard-caves/pkg/math"
)

// ErrEmptyGrid is returned when meshing a grid with zero area.
var ErrEmptyGrid = errors.New("cannot mesh an empty grid")

// polygons maps a square configuration to the ordered points of the polygon
// covering its active region. Cases 5 and 10 emit a single hexagon.
var polygons = [16][]Corner{
	0:  nil,
	1:  {Bottom, BottomLeft, LeftEdge},
	2:  {RightEdge, BottomRight, Bottom},
	3:  {RightEdge, BottomRight, BottomLeft, LeftEdge},
	4:  {Top, TopRight, RightEdge},
	5:  {Top, TopRight, RightEdge, Bottom, BottomLeft, LeftEdge},
	6:  {Top, TopRight, BottomRight, Bottom},
	7:  {Top, TopRight, BottomRight, BottomLeft, LeftEdge},
	8:  {TopLeft, Top, LeftEdge},
	9:  {TopLeft, Top, Bottom, BottomLeft},
	10: {TopLeft, Top, RightEdge, BottomRight, Bottom, LeftEdge},
	11: {TopLeft, Top, RightEdge, BottomRight, BottomLeft},
	12: {TopLeft, TopRight, RightEdge, LeftEdge},
	13: {TopLeft, TopRight, RightEdge, Bottom, BottomLeft},
	14: {TopLeft, TopRight, BottomRight, Bottom, LeftEdge},
	15: {TopLeft, TopRight, BottomRight, BottomLeft},
}

// Polygon returns the ordered corners emitted for a configuration.
// The returned slice must not be modified.
func Polygon(configuration uint8) []Corner {
	return polygons[configuration&15]
}

// GenerateMesh triangulates the wall region of grid. Each cell becomes a
// control node squareSize apart, centred on the origin.
func GenerateMesh(grid cave.Occupancy, squareSize float32) (*Mesh, error) {
	if grid == nil || grid.Width() <= 0 || grid.Height() <= 0 {
		return nil, ErrEmptyGrid
	}
	if !cave.ValidSquareSize(squareSize) {
		return nil, fmt.Errorf("%w: square size %v must be positive", cave.ErrInvalidConfiguration, squareSize)
	}
	return Triangulate(NewSquareGrid(grid, squareSize)), nil
}

// Triangulate emits every square of sg in order (x outer, y inner).
// It assigns vertex indices on sg's nodes, so a SquareGrid is single use.
func Triangulate(sg *SquareGrid) *Mesh {
	b := &builder{nodes: sg.Nodes}
	for i := range sg.Squares {
		b.square(&sg.Squares[i])
	}
	return &Mesh{
		Vertices:  b.vertices,
		Triangles: b.triangles,
		Stats:     b.stats,
	}
}

type builder struct {
	nodes     []Node
	vertices  []math.Vec3
	triangles []uint32
	stats     Stats
}

func (b *builder) square(s *Square) {
	b.stats.Squares++
	b.stats.Cases[s.Configuration&15]++

	points := Polygon(s.Configuration)
	if len(points) == 0 {
		return
	}
	b.stats.Polygons++
	b.stats.Corners += len(points)

	for _, c := range points {
		n := &b.nodes[s.Points[c]]
		if n.VertexIndex == noVertex {
			n.VertexIndex = len(b.vertices)
			b.vertices = append(b.vertices, n.Position)
		}
	}

	// Fan from the first point.
	first := uint32(b.nodes[s.Points[points[0]]].VertexIndex)
	for i := 1; i+1 < len(points); i++ {
		b.triangles = append(b.triangles,
			first,
			uint32(b.nodes[s.Points[points[i]]].VertexIndex),
			uint32(b.nodes[s.Points[points[i+1]]].VertexIndex),
		)
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Triangle returns the vertex positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c math.Vec3) {
	return m.Vertices[m.Triangles[3*i]], m.Vertices[m.Triangles[3*i+1]], m.Vertices[m.Triangles[3*i+2]]
}

// Bounds returns the bounding box of all vertices. The second result is
// false for a mesh without vertices.
func (m *Mesh) Bounds() (Bounds, bool) {
	if len(m.Vertices) == 0 {
		return Bounds{}, false
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	return b, true
}

// Fingerprint returns a 64-bit xxhash over the vertex bit patterns and
// indices. Byte-identical meshes have equal fingerprints.
func (m *Mesh) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [12]byte

	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(m.Vertices)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(m.Triangles)))
	_, _ = d.Write(buf[:8])

	for _, v := range m.Vertices {
		binary.LittleEndian.PutUint32(buf[0:4], stdmath.Float32bits(v.X))
		binary.LittleEndian.PutUint32(buf[4:8], stdmath.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(buf[8:12], stdmath.Float32bits(v.Z))
		_, _ = d.Write(buf[:])
	}
	for _, idx := range m.Triangles {
		binary.LittleEndian.PutUint32(buf[0:4], idx)
		_, _ = d.Write(buf[:4])
	}
	return d.Sum64()
}
