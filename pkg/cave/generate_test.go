package cave

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -3 }, true},
		{"fill below range", func(c *Config) { c.RandomFillPercent = -1 }, true},
		{"fill above range", func(c *Config) { c.RandomFillPercent = 101 }, true},
		{"fill zero", func(c *Config) { c.RandomFillPercent = 0 }, false},
		{"fill hundred", func(c *Config) { c.RandomFillPercent = 100 }, false},
		{"negative iterations", func(c *Config) { c.SmoothingIterations = -1 }, true},
		{"zero iterations", func(c *Config) { c.SmoothingIterations = 0 }, false},
		{"negative border", func(c *Config) { c.BorderSize = -1 }, true},
		{"zero square size", func(c *Config) { c.SquareSize = 0 }, true},
		{"unknown smoothing", func(c *Config) { c.Smoothing = "sideways" }, true},
		{"empty smoothing", func(c *Config) { c.Smoothing = "" }, false},
		{"double buffered", func(c *Config) { c.Smoothing = SmoothDoubleBuffered }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	m, err := Generate(cfg)
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if m != nil {
		t.Error("no map should be returned on error")
	}
}

func testConfig(width, height int, seed string, fill int) Config {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	cfg.Seed = seed
	cfg.RandomFillPercent = fill
	return cfg
}

func TestGenerateInvariants(t *testing.T) {
	for i, fill := range []int{0, 25, 45, 50, 60, 100} {
		cfg := testConfig(31, 17, fmt.Sprintf("seed-%d", i), fill)
		m, err := Generate(cfg)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		g := m.Grid
		for x := 0; x < g.Width(); x++ {
			for y := 0; y < g.Height(); y++ {
				v := g.At(x, y)
				if v != Open && v != Wall {
					t.Fatalf("cell (%d,%d) = %d, want 0 or 1", x, y, v)
				}
				edge := x == 0 || y == 0 || x == g.Width()-1 || y == g.Height()-1
				if edge && v != Wall {
					t.Errorf("fill %d: outer cell (%d,%d) is open", fill, x, y)
				}
			}
		}

		b := m.Bordered
		if b.Width() != 33 || b.Height() != 19 {
			t.Fatalf("bordered grid is %dx%d, want 33x19", b.Width(), b.Height())
		}
		for x := 0; x < b.Width(); x++ {
			if b.At(x, 0) != Wall || b.At(x, b.Height()-1) != Wall {
				t.Errorf("frame column %d is open", x)
			}
		}
		for y := 0; y < b.Height(); y++ {
			if b.At(0, y) != Wall || b.At(b.Width()-1, y) != Wall {
				t.Errorf("frame row %d is open", y)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := testConfig(10, 10, "SAME", 50)

	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !a.Grid.Equal(b.Grid) || !a.Bordered.Equal(b.Bordered) {
		t.Error("two runs with the same config produced different grids")
	}
	if a.Bordered.Fingerprint() != b.Bordered.Fingerprint() {
		t.Error("fingerprints differ between identical runs")
	}
	if a.Seed != "SAME" {
		t.Errorf("expected seed SAME, got %q", a.Seed)
	}
}

func TestGenerateKnownSeed(t *testing.T) {
	m, err := Generate(testConfig(10, 10, "SAME", 50))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := "" +
		"##########\n" +
		"##########\n" +
		"#####...##\n" +
		"####.....#\n" +
		"###......#\n" +
		"###......#\n" +
		"####....##\n" +
		"##########\n" +
		"##########\n" +
		"##########\n"
	if got := m.Grid.String(); got != want {
		t.Errorf("grid for seed SAME:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateDoubleBufferedKnownSeed(t *testing.T) {
	cfg := testConfig(10, 10, "SAME", 50)
	cfg.Smoothing = SmoothDoubleBuffered
	m, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := "" +
		"##########\n" +
		"##########\n" +
		"####...###\n" +
		"###.....##\n" +
		"##......##\n" +
		"##......##\n" +
		"##.....###\n" +
		"###..#####\n" +
		"##########\n" +
		"##########\n"
	if got := m.Grid.String(); got != want {
		t.Errorf("double-buffered grid for seed SAME:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateDifferentSeeds(t *testing.T) {
	a, err := Generate(testConfig(40, 40, "first", 50))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(testConfig(40, 40, "second", 50))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if a.Grid.Equal(b.Grid) {
		t.Error("different seeds produced identical grids")
	}
}

func TestGenerateFullFill(t *testing.T) {
	m, err := Generate(testConfig(3, 3, "*", 100))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if m.Bordered.Width() != 5 || m.Bordered.Height() != 5 {
		t.Fatalf("expected 5x5 bordered grid, got %dx%d", m.Bordered.Width(), m.Bordered.Height())
	}
	if m.Bordered.WallCount() != 25 {
		t.Errorf("expected 25 walls, got %d", m.Bordered.WallCount())
	}
}

// Corner cells of an open room have five wall neighbours, so in-place
// smoothing closes a small empty map from its corners inward.
func TestGenerateEmptyFillClosesSmallMap(t *testing.T) {
	cfg := testConfig(5, 5, "A", 0)
	cfg.SmoothingIterations = 0
	m, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want := "#####\n#...#\n#...#\n#...#\n#####\n"
	if got := m.Grid.String(); got != want {
		t.Errorf("unsmoothed grid:\n%s\nwant:\n%s", got, want)
	}

	cfg.SmoothingIterations = 1
	m, err = Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	want = "#####\n##.##\n#...#\n##.##\n#####\n"
	if got := m.Grid.String(); got != want {
		t.Errorf("grid after one pass:\n%s\nwant:\n%s", got, want)
	}

	cfg.SmoothingIterations = 5
	m, err = Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if m.Grid.WallCount() != 25 {
		t.Errorf("expected fully walled grid after 5 passes, got:\n%s", m.Grid)
	}
	if m.Bordered.WallCount() != 49 {
		t.Errorf("expected 49 walls in bordered grid, got %d", m.Bordered.WallCount())
	}
}

func TestRandomFillPercentage(t *testing.T) {
	g := NewGrid(102, 102)
	RandomFill(g, NewRandomFromString("density"), 45)

	interior := 100 * 100
	walls := g.WallCount() - (102*4 - 4)
	ratio := float64(walls) / float64(interior)
	if ratio < 0.40 || ratio > 0.50 {
		t.Errorf("interior wall ratio %.3f, want about 0.45", ratio)
	}
}

func TestRandomFillSkipsDrawsOnFrame(t *testing.T) {
	// A 3x3 grid has one interior cell, so exactly one draw is consumed.
	g := NewGrid(3, 3)
	rng := NewRandomFromString("A")
	RandomFill(g, rng, 50)

	// First draw for seed "A" is 50, which is not < 50.
	if g.At(1, 1) != Open {
		t.Error("expected interior cell to be open")
	}
	// The second draw for seed "A" is 60.
	if got := rng.Next(0, 100); got != 60 {
		t.Errorf("next draw = %d, want 60", got)
	}
}

func TestNeighborWallCount(t *testing.T) {
	g := NewGrid(3, 3)
	if got := NeighborWallCount(g, 1, 1); got != 0 {
		t.Errorf("center of open grid: got %d, want 0", got)
	}
	if got := NeighborWallCount(g, 0, 0); got != 5 {
		t.Errorf("corner of open grid: got %d, want 5", got)
	}
	if got := NeighborWallCount(g, 1, 0); got != 3 {
		t.Errorf("edge of open grid: got %d, want 3", got)
	}

	g.Set(1, 1, Wall)
	if got := NeighborWallCount(g, 1, 1); got != 0 {
		t.Errorf("center cell must not count itself: got %d", got)
	}
	if got := NeighborWallCount(g, 0, 1); got != 4 {
		t.Errorf("edge next to wall: got %d, want 4", got)
	}
}

func TestSmoothModes(t *testing.T) {
	start := NewGrid(3, 3)
	start.Set(1, 1, Wall)

	inPlace := start.Clone()
	Smooth(inPlace, SmoothInPlace)
	if inPlace.WallCount() != 9 {
		t.Errorf("in-place pass: expected all walls, got:\n%s", inPlace)
	}

	buffered := start.Clone()
	Smooth(buffered, SmoothDoubleBuffered)
	if got, want := buffered.String(), "#.#\n...\n#.#\n"; got != want {
		t.Errorf("double-buffered pass:\n%s\nwant:\n%s", got, want)
	}

	// The empty mode behaves like in_place.
	empty := start.Clone()
	Smooth(empty, "")
	if !empty.Equal(inPlace) {
		t.Error("empty smoothing mode should match in_place")
	}
}

func TestGenerateResolvesRandomSeed(t *testing.T) {
	cfg := testConfig(8, 8, "ignored", 50)
	cfg.UseRandomSeed = true

	m, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if m.Seed == "ignored" || m.Seed == "" {
		t.Errorf("expected clock-derived seed, got %q", m.Seed)
	}

	// The reported seed reproduces the map.
	again, err := Generate(testConfig(8, 8, m.Seed, 50))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !again.Grid.Equal(m.Grid) {
		t.Error("reported seed did not reproduce the map")
	}
}
