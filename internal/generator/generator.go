// Package generator runs the cave pipeline: configuration to grid to mesh.
package generator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-caves/pkg/cave"
	"github.com/Faultbox/midgard-caves/pkg/marching"
)

// Result is the output of one pipeline run.
type Result struct {
	Seed       string
	SquareSize float32
	Map        *cave.Map
	Mesh       *marching.Mesh
	GridTime   time.Duration
	MeshTime   time.Duration
}

// Generator produces caves from a fixed configuration.
type Generator struct {
	cfg   cave.Config
	log   *zap.Logger
	clock cave.Clock
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithClock sets the clock used to derive seeds when UseRandomSeed is set.
func WithClock(c cave.Clock) Option {
	return func(g *Generator) {
		if c != nil {
			g.clock = c
		}
	}
}

// New creates a generator for cfg.
func New(cfg cave.Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:   cfg,
		log:   zap.NewNop(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config returns the configuration the generator was built with.
func (g *Generator) Config() cave.Config {
	return g.cfg
}

// Run generates a cave and meshes its bordered grid. With UseRandomSeed set
// every call draws a fresh seed, so Run doubles as "regenerate".
func (g *Generator) Run() (*Result, error) {
	cfg := g.cfg.Resolve(g.clock)

	start := time.Now()
	m, err := cave.Generate(cfg)
	if err != nil {
		g.log.Error("cave generation failed", zap.Error(err))
		return nil, err
	}
	gridTime := time.Since(start)
	g.log.Debug("grid generated",
		zap.String("seed", m.Seed),
		zap.Int("width", m.Grid.Width()),
		zap.Int("height", m.Grid.Height()),
		zap.Int("smoothing_iterations", cfg.SmoothingIterations),
		zap.Stringer("smoothing", cfg.Smoothing),
		zap.Duration("elapsed", gridTime),
	)

	mesh, meshTime, err := g.mesh(m.Bordered, cfg.SquareSize)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Seed:       m.Seed,
		SquareSize: cfg.SquareSize,
		Map:        m,
		Mesh:       mesh,
		GridTime:   gridTime,
		MeshTime:   meshTime,
	}
	g.log.Info("cave generated",
		zap.String("seed", res.Seed),
		zap.Int("width", m.Bordered.Width()),
		zap.Int("height", m.Bordered.Height()),
		zap.Int("walls", m.Bordered.WallCount()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.String("grid_fingerprint", Hex(m.Bordered.Fingerprint())),
		zap.String("mesh_fingerprint", Hex(mesh.Fingerprint())),
	)
	return res, nil
}

// MeshGrid meshes an existing grid, for callers that load grids instead of
// generating them. The grid is used as is, without adding a border.
func (g *Generator) MeshGrid(grid *cave.Grid) (*Result, error) {
	if grid == nil {
		return nil, marching.ErrEmptyGrid
	}
	mesh, meshTime, err := g.mesh(grid, g.cfg.SquareSize)
	if err != nil {
		return nil, err
	}
	g.log.Info("grid meshed",
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)
	return &Result{
		SquareSize: g.cfg.SquareSize,
		Map:        &cave.Map{Grid: grid, Bordered: grid},
		Mesh:       mesh,
		MeshTime:   meshTime,
	}, nil
}

func (g *Generator) mesh(grid *cave.Grid, squareSize float32) (*marching.Mesh, time.Duration, error) {
	start := time.Now()
	mesh, err := marching.GenerateMesh(grid, squareSize)
	if err != nil {
		g.log.Error("meshing failed", zap.Error(err))
		return nil, 0, err
	}
	elapsed := time.Since(start)
	g.log.Debug("mesh generated",
		zap.Int("squares", mesh.Stats.Squares),
		zap.Int("polygons", mesh.Stats.Polygons),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
		zap.Duration("elapsed", elapsed),
	)
	return mesh, elapsed, nil
}

// Hex formats a fingerprint as 16 lowercase hex digits.
func Hex(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
