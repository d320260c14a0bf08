// cavegen generates procedural caves and exports their wall meshes.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-caves/internal/config"
	"github.com/Faultbox/midgard-caves/internal/export"
	"github.com/Faultbox/midgard-caves/internal/generator"
	"github.com/Faultbox/midgard-caves/internal/logger"
	"github.com/Faultbox/midgard-caves/pkg/cave"
)

var errUsage = errors.New("usage error")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := initLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg, config.Args(), os.Stdout); err != nil {
		logger.Error("command failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
		}
		logger.Sync()
		os.Exit(1)
	}
}

func initLogger(lc config.LoggingConfig) error {
	if lc.LogFile == "" {
		return logger.Init(lc.Level, "")
	}
	fileCfg := logger.DefaultFileConfig(lc.LogFile)
	fileCfg.JSON = lc.Format == "json"
	return logger.InitWithFileConfig(lc.Level, fileCfg, true)
}

// run dispatches a command. With no arguments it generates.
func run(cfg *config.Config, args []string, stdout io.Writer) error {
	command := "generate"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "generate", "gen":
		return cmdGenerate(cfg, stdout)
	case "grid":
		return cmdGrid(cfg, stdout)
	case "stats":
		return cmdStats(cfg, stdout)
	case "mesh":
		return cmdMesh(cfg, args, stdout)
	case "schema":
		return cmdSchema(stdout)
	case "init-config":
		return cmdInitConfig(cfg, args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `cavegen - procedural cave generator

Usage:
  cavegen [flags] [command]

Commands:
  generate            Generate a cave and write it in the output format (default)
  grid                Print the bordered grid ('#' wall, '.' open)
  stats               Print generation statistics
  mesh <grid.txt>     Mesh a grid file (text or .gat) instead of generating one
  schema              Print the JSON Schema of the json format
  init-config [path]  Write the current configuration as YAML

Formats: %v

Examples:
  cavegen -seed SAME -width 64 -height 48 > cave.obj
  cavegen -format png -scale 4 -out cave.png
  cavegen -random-seed stats
  cavegen -format json mesh level.txt
  cavegen -format gat -out cave.gat
`, export.Formats())
}

func newGenerator(cfg *config.Config) *generator.Generator {
	return generator.New(cfg.Cave, generator.WithLogger(logger.Log))
}

func cmdGenerate(cfg *config.Config, stdout io.Writer) error {
	res, err := newGenerator(cfg).Run()
	if err != nil {
		return err
	}
	return writeResult(cfg.Output, res, stdout)
}

func cmdGrid(cfg *config.Config, stdout io.Writer) error {
	m, err := cave.Generate(cfg.Cave)
	if err != nil {
		return err
	}
	logger.Info("grid generated", zap.String("seed", m.Seed))
	return export.WriteGrid(stdout, m.Bordered)
}

func cmdStats(cfg *config.Config, stdout io.Writer) error {
	res, err := newGenerator(cfg).Run()
	if err != nil {
		return err
	}

	grid := res.Map.Bordered
	mesh := res.Mesh
	cells := grid.Width() * grid.Height()

	fmt.Fprintf(stdout, "Seed:       %s\n", res.Seed)
	fmt.Fprintf(stdout, "Grid:       %dx%d (%dx%d with border)\n",
		res.Map.Grid.Width(), res.Map.Grid.Height(), grid.Width(), grid.Height())
	fmt.Fprintf(stdout, "Walls:      %d / %d (%.1f%%)\n",
		grid.WallCount(), cells, 100*float64(grid.WallCount())/float64(max(cells, 1)))
	fmt.Fprintf(stdout, "Squares:    %d\n", mesh.Stats.Squares)
	fmt.Fprintf(stdout, "Vertices:   %d\n", mesh.VertexCount())
	fmt.Fprintf(stdout, "Triangles:  %d\n", mesh.TriangleCount())
	if b, ok := mesh.Bounds(); ok {
		fmt.Fprintf(stdout, "Bounds:     (%g, %g) to (%g, %g)\n", b.Min.X, b.Min.Z, b.Max.X, b.Max.Z)
	}
	fmt.Fprintf(stdout, "Grid hash:  %s\n", generator.Hex(grid.Fingerprint()))
	fmt.Fprintf(stdout, "Mesh hash:  %s\n", generator.Hex(mesh.Fingerprint()))
	fmt.Fprintf(stdout, "Timing:     grid %v, mesh %v\n", res.GridTime, res.MeshTime)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Squares by configuration:")
	for c, n := range mesh.Stats.Cases {
		if n > 0 {
			fmt.Fprintf(stdout, "  %2d  %d\n", c, n)
		}
	}
	return nil
}

func cmdMesh(cfg *config.Config, args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: mesh needs a grid file", errUsage)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var grid *cave.Grid
	if strings.EqualFold(filepath.Ext(args[0]), ".gat") {
		grid, err = export.ReadGAT(data)
	} else {
		grid, err = cave.ParseGrid(string(data))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	res, err := newGenerator(cfg).MeshGrid(grid)
	if err != nil {
		return err
	}
	return writeResult(cfg.Output, res, stdout)
}

func cmdSchema(stdout io.Writer) error {
	data, err := export.Schema()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", data)
	return err
}

func cmdInitConfig(cfg *config.Config, args []string, stdout io.Writer) error {
	path := "cavegen.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", path)
	return nil
}

// writeResult writes res to out.Path, or to stdout when the path is empty.
func writeResult(out config.OutputConfig, res *generator.Result, stdout io.Writer) error {
	opts := export.Options{Scale: out.Scale}

	if out.Path == "" {
		if export.IsBinary(out.Format) {
			return fmt.Errorf("%w: format %s needs -out", errUsage, out.Format)
		}
		return export.Write(stdout, out.Format, res, opts)
	}

	f, err := os.Create(out.Path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := export.Write(bw, out.Format, res, opts); err != nil {
		f.Close()
		os.Remove(out.Path)
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Info("wrote output", zap.String("path", out.Path), zap.String("format", out.Format))
	return nil
}
