package export

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/Faultbox/midgard-caves/internal/generator"
)

// Document is the JSON form of a generated cave.
type Document struct {
	Seed            string       `json:"seed" jsonschema:"description=Seed that reproduces this cave"`
	Width           int          `json:"width" jsonschema:"description=Bordered grid width in cells,minimum=0"`
	Height          int          `json:"height" jsonschema:"description=Bordered grid height in cells,minimum=0"`
	SquareSize      float32      `json:"squareSize" jsonschema:"description=World size of one cell"`
	Grid            []string     `json:"grid" jsonschema:"description=Bordered grid rows top first; # is wall and . is open"`
	Vertices        [][3]float32 `json:"vertices" jsonschema:"description=Vertex positions as x y z triples in the XZ plane"`
	Triangles       []uint32     `json:"triangles" jsonschema:"description=Vertex indices; three per triangle"`
	GridFingerprint string       `json:"gridFingerprint" jsonschema:"description=xxhash64 of the bordered grid"`
	MeshFingerprint string       `json:"meshFingerprint" jsonschema:"description=xxhash64 of the vertex and index buffers"`
}

// NewDocument converts a pipeline result to its JSON document.
func NewDocument(res *generator.Result) *Document {
	grid := res.Map.Bordered
	doc := &Document{
		Seed:            res.Seed,
		Width:           grid.Width(),
		Height:          grid.Height(),
		SquareSize:      res.SquareSize,
		Grid:            strings.Split(strings.TrimSuffix(grid.String(), "\n"), "\n"),
		Vertices:        make([][3]float32, len(res.Mesh.Vertices)),
		Triangles:       res.Mesh.Triangles,
		GridFingerprint: generator.Hex(grid.Fingerprint()),
		MeshFingerprint: generator.Hex(res.Mesh.Fingerprint()),
	}
	if grid.Height() == 0 {
		doc.Grid = []string{}
	}
	if doc.Triangles == nil {
		doc.Triangles = []uint32{}
	}
	for i, v := range res.Mesh.Vertices {
		doc.Vertices[i] = v.Array()
	}
	return doc
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Schema returns the JSON Schema describing Document.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&Document{})
	return json.MarshalIndent(s, "", "  ")
}
