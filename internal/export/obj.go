package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/Faultbox/midgard-caves/pkg/marching"
)

// WriteOBJ writes mesh as Wavefront OBJ. Every face shares a single +Y normal
// and indices are 1-based.
func WriteOBJ(w io.Writer, mesh *marching.Mesh, seed string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# midgard-caves mesh\n")
	if seed != "" {
		fmt.Fprintf(bw, "# seed %s\n", strconv.Quote(seed))
	}
	fmt.Fprintf(bw, "# vertices %d triangles %d\n", mesh.VertexCount(), mesh.TriangleCount())
	fmt.Fprintf(bw, "o cave\n")

	for _, v := range mesh.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	fmt.Fprintf(bw, "vn 0 1 0\n")

	for i := 0; i+2 < len(mesh.Triangles); i += 3 {
		fmt.Fprintf(bw, "f %d//1 %d//1 %d//1\n",
			mesh.Triangles[i]+1, mesh.Triangles[i+1]+1, mesh.Triangles[i+2]+1)
	}

	return bw.Flush()
}

func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
