package cave

import "time"

// Map is the result of one generation run.
type Map struct {
	Grid     *Grid  // Smoothed grid before the border frame
	Bordered *Grid  // Grid framed by BorderSize walls on every side
	Seed     string // Seed actually used, reusable to reproduce this map
}

// Generate runs random fill, smoothing and bordering for cfg.
// A config with UseRandomSeed set is resolved against time.Now first; call
// Config.Resolve with your own clock to keep generation pure.
func Generate(cfg Config) (*Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Resolve(time.Now)

	grid := NewGrid(cfg.Width, cfg.Height)
	RandomFill(grid, NewRandomFromString(cfg.Seed), cfg.RandomFillPercent)

	for i := 0; i < cfg.SmoothingIterations; i++ {
		Smooth(grid, cfg.Smoothing)
	}

	return &Map{
		Grid:     grid,
		Bordered: grid.WithBorder(cfg.BorderSize),
		Seed:     cfg.Seed,
	}, nil
}

// RandomFill walls the outer rectangle of g and fills every other cell with
// a wall when rng.Next(0, 100) < percent. Cells are visited x outer, y inner,
// and outer-rectangle cells do not consume a draw.
func RandomFill(g *Grid, rng *Random, percent int) {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if x == 0 || x == g.width-1 || y == 0 || y == g.height-1 {
				g.cells[x*g.height+y] = Wall
				continue
			}
			if rng.Next(0, 100) < percent {
				g.cells[x*g.height+y] = Wall
			} else {
				g.cells[x*g.height+y] = Open
			}
		}
	}
}

// Smooth runs one cellular automaton pass over g: a cell with more than four
// wall neighbours becomes a wall, one with fewer than four becomes open, and
// one with exactly four keeps its value.
func Smooth(g *Grid, mode SmoothMode) {
	src := g
	if mode == SmoothDoubleBuffered {
		src = g.Clone()
	}

	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			n := NeighborWallCount(src, x, y)
			if n > 4 {
				g.cells[x*g.height+y] = Wall
			} else if n < 4 {
				g.cells[x*g.height+y] = Open
			}
		}
	}
}

// NeighborWallCount sums the eight cells around (x, y). Neighbours outside
// the grid count as walls.
func NeighborWallCount(g *Grid, x, y int) int {
	count := 0
	for nx := x - 1; nx <= x+1; nx++ {
		for ny := y - 1; ny <= y+1; ny++ {
			if nx == x && ny == y {
				continue
			}
			count += g.At(nx, ny)
		}
	}
	return count
}
