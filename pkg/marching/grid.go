package marching

import (
	"github.com/Faultbox/midgard-caves/pkg/cave"
	"github.com/Faultbox/midgard-caves/pkg/math"
)

// SquareGrid holds the control nodes and squares built from an occupancy grid.
// Midpoint nodes are owned by exactly one control node and shared by up to two
// squares, which is what deduplicates vertices along shared edges.
type SquareGrid struct {
	Nodes   []Node        // Arena of every vertex candidate
	Control []ControlNode // Control nodes, x-major: [x*CountY+y]
	Squares []Square      // Squares, x-major: [x*(CountY-1)+y]
	CountX  int           // Control nodes along X
	CountY  int           // Control nodes along Z
}

// NewSquareGrid builds control nodes centred on each cell of grid and one
// square per interior 2x2 block. The grid is centred on the origin.
func NewSquareGrid(grid cave.Occupancy, squareSize float32) *SquareGrid {
	countX := grid.Width()
	countY := grid.Height()

	mapWidth := float32(countX) * squareSize
	mapHeight := float32(countY) * squareSize
	half := squareSize / 2

	sg := &SquareGrid{
		Nodes:   make([]Node, 0, countX*countY*3),
		Control: make([]ControlNode, countX*countY),
		CountX:  countX,
		CountY:  countY,
	}

	for x := 0; x < countX; x++ {
		for y := 0; y < countY; y++ {
			pos := math.Vec3{
				X: -mapWidth/2 + float32(x)*squareSize + half,
				Y: 0,
				Z: -mapHeight/2 + float32(y)*squareSize + half,
			}
			sg.Control[x*countY+y] = ControlNode{
				Node:   sg.addNode(pos),
				Active: grid.IsWall(x, y),
				Above:  sg.addNode(pos.Add(math.Forward.Scale(half))),
				Right:  sg.addNode(pos.Add(math.Right.Scale(half))),
			}
		}
	}

	if countX < 2 || countY < 2 {
		return sg
	}

	sg.Squares = make([]Square, 0, (countX-1)*(countY-1))
	for x := 0; x < countX-1; x++ {
		for y := 0; y < countY-1; y++ {
			sg.Squares = append(sg.Squares, newSquare(
				sg.control(x, y+1),
				sg.control(x+1, y+1),
				sg.control(x+1, y),
				sg.control(x, y),
			))
		}
	}
	return sg
}

func (sg *SquareGrid) addNode(pos math.Vec3) int {
	sg.Nodes = append(sg.Nodes, Node{Position: pos, VertexIndex: noVertex})
	return len(sg.Nodes) - 1
}

func (sg *SquareGrid) control(x, y int) ControlNode {
	return sg.Control[x*sg.CountY+y]
}

// Square returns the square whose bottom-left control node is (x, y).
func (sg *SquareGrid) Square(x, y int) *Square {
	if x < 0 || y < 0 || x >= sg.CountX-1 || y >= sg.CountY-1 {
		return nil
	}
	return &sg.Squares[x*(sg.CountY-1)+y]
}

func newSquare(topLeft, topRight, bottomRight, bottomLeft ControlNode) Square {
	var s Square
	s.Points[TopLeft] = topLeft.Node
	s.Points[TopRight] = topRight.Node
	s.Points[BottomRight] = bottomRight.Node
	s.Points[BottomLeft] = bottomLeft.Node
	s.Points[Top] = topLeft.Right
	s.Points[RightEdge] = bottomRight.Above
	s.Points[Bottom] = bottomLeft.Right
	s.Points[LeftEdge] = bottomLeft.Above

	if topLeft.Active {
		s.Configuration |= 8
	}
	if topRight.Active {
		s.Configuration |= 4
	}
	if bottomRight.Active {
		s.Configuration |= 2
	}
	if bottomLeft.Active {
		s.Configuration |= 1
	}
	return s
}
