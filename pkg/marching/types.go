// Package marching converts cave occupancy grids into triangle meshes using
// Marching Squares.
package marching

import (
	"github.com/Faultbox/midgard-caves/pkg/math"
)

// noVertex marks a node that has not been emitted into the vertex list.
const noVertex = -1

// Node is a mesh vertex candidate.
type Node struct {
	Position    math.Vec3
	VertexIndex int // Index into Mesh.Vertices, or -1 until first emitted
}

// ControlNode is a grid cell centre. It owns the midpoint nodes half a square
// above (+Z) and to the right (+X) of it. All fields are node arena indices.
type ControlNode struct {
	Node   int
	Active bool
	Above  int
	Right  int
}

// Corner selects one of a square's eight candidate points.
type Corner uint8

// Square corners and edge midpoints.
const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft
	Top
	RightEdge
	Bottom
	LeftEdge
)

var cornerNames = [...]string{"topLeft", "topRight", "bottomRight", "bottomLeft", "top", "right", "bottom", "left"}

// String returns the corner name.
func (c Corner) String() string {
	if int(c) < len(cornerNames) {
		return cornerNames[c]
	}
	return "unknown"
}

// Square is a 2x2 block of control nodes.
type Square struct {
	// Points holds node arena indices, indexed by Corner.
	Points [8]int
	// Configuration has bit 3 set for an active top-left corner, bit 2 for
	// top-right, bit 1 for bottom-right and bit 0 for bottom-left.
	Configuration uint8
}

// Point returns the node arena index for c.
func (s *Square) Point(c Corner) int {
	return s.Points[c]
}

// Mesh is a planar triangle mesh in the XZ plane.
type Mesh struct {
	Vertices  []math.Vec3
	Triangles []uint32 // Vertex indices, three per triangle
	Stats     Stats
}

// Stats summarizes a triangulation.
type Stats struct {
	Squares  int     // Squares visited
	Polygons int     // Non-empty polygons emitted
	Corners  int     // Polygon corners emitted, before deduplication
	Cases    [16]int // Squares per configuration
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}
