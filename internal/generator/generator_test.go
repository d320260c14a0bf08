package generator

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/midgard-caves/pkg/cave"
	"github.com/Faultbox/midgard-caves/pkg/marching"
)

func testConfig() cave.Config {
	cfg := cave.DefaultConfig()
	cfg.Width = 10
	cfg.Height = 10
	cfg.Seed = "SAME"
	cfg.RandomFillPercent = 50
	return cfg
}

func TestRunProducesGridAndMesh(t *testing.T) {
	res, err := New(testConfig()).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Seed != "SAME" {
		t.Errorf("expected seed SAME, got %q", res.Seed)
	}
	if res.Map.Bordered.Width() != 12 || res.Map.Bordered.Height() != 12 {
		t.Errorf("expected 12x12 bordered grid, got %dx%d", res.Map.Bordered.Width(), res.Map.Bordered.Height())
	}
	if res.Mesh.VertexCount() != 142 || res.Mesh.TriangleCount() != 218 {
		t.Errorf("got %d vertices and %d triangles, want 142 and 218", res.Mesh.VertexCount(), res.Mesh.TriangleCount())
	}
	if res.SquareSize != 1 {
		t.Errorf("expected square size 1, got %v", res.SquareSize)
	}
}

func TestRunDeterministic(t *testing.T) {
	g := New(testConfig())
	a, err := g.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	b, err := g.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if a.Map.Bordered.Fingerprint() != b.Map.Bordered.Fingerprint() {
		t.Error("grid fingerprints differ")
	}
	if a.Mesh.Fingerprint() != b.Mesh.Fingerprint() {
		t.Error("mesh fingerprints differ")
	}
}

func TestRunRandomSeedUsesClock(t *testing.T) {
	cfg := testConfig()
	cfg.UseRandomSeed = true

	tick := int64(0)
	clock := func() time.Time {
		tick++
		return time.Unix(0, tick)
	}

	g := New(cfg, WithClock(clock))
	first, err := g.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	second, err := g.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if first.Seed != "1" || second.Seed != "2" {
		t.Errorf("expected seeds 1 and 2, got %q and %q", first.Seed, second.Seed)
	}
	if !g.Config().UseRandomSeed {
		t.Error("Run must not modify the generator's config")
	}
}

func TestRunInvalidConfigLogsError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	cfg := testConfig()
	cfg.RandomFillPercent = 150
	_, err := New(cfg, WithLogger(zap.New(core))).Run()
	if !errors.Is(err, cave.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}

	if logs.FilterMessage("cave generation failed").Len() != 1 {
		t.Errorf("expected one error log, got %v", logs.All())
	}
}

func TestRunLogsSummary(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	res, err := New(testConfig(), WithLogger(zap.New(core))).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if logs.FilterMessage("grid generated").Len() != 1 {
		t.Error("expected a grid debug entry")
	}
	if logs.FilterMessage("mesh generated").Len() != 1 {
		t.Error("expected a mesh debug entry")
	}

	summary := logs.FilterMessage("cave generated").All()
	if len(summary) != 1 {
		t.Fatalf("expected one summary entry, got %d", len(summary))
	}
	fields := summary[0].ContextMap()
	if fields["seed"] != "SAME" {
		t.Errorf("expected seed field SAME, got %v", fields["seed"])
	}
	if fields["triangles"] != int64(218) {
		t.Errorf("expected triangles field 218, got %v", fields["triangles"])
	}
	if fields["mesh_fingerprint"] != Hex(res.Mesh.Fingerprint()) {
		t.Errorf("mesh fingerprint field mismatch: %v", fields["mesh_fingerprint"])
	}
}

func TestMeshGrid(t *testing.T) {
	grid, err := cave.ParseGrid("###\n###\n")
	if err != nil {
		t.Fatalf("ParseGrid failed: %v", err)
	}

	res, err := New(testConfig()).MeshGrid(grid)
	if err != nil {
		t.Fatalf("MeshGrid failed: %v", err)
	}
	if res.Mesh.VertexCount() != 6 || res.Mesh.TriangleCount() != 4 {
		t.Errorf("got %d vertices and %d triangles, want 6 and 4", res.Mesh.VertexCount(), res.Mesh.TriangleCount())
	}
	if res.Map.Bordered != grid {
		t.Error("MeshGrid should mesh the grid without a border")
	}

	if _, err := New(testConfig()).MeshGrid(cave.NewGrid(0, 0)); !errors.Is(err, marching.ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid, got %v", err)
	}
	if _, err := New(testConfig()).MeshGrid(nil); !errors.Is(err, marching.ErrEmptyGrid) {
		t.Errorf("expected ErrEmptyGrid for nil grid, got %v", err)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(0xabc); got != "0000000000000abc" {
		t.Errorf("Hex() = %s", got)
	}
}
