package config

import (
	"flag"

	"github.com/Faultbox/midgard-caves/pkg/cave"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.String("seed", "", "Seed string")
	flagRandomSeed = flag.Bool("random-seed", false, "Derive the seed from the clock")
	flagWidth      = flag.Int("width", 0, "Grid width in cells")
	flagHeight     = flag.Int("height", 0, "Grid height in cells")
	flagFill       = flag.Int("fill", -1, "Random fill percent (0-100)")
	flagIterations = flag.Int("iterations", -1, "Smoothing iterations")
	flagBorder     = flag.Int("border", -1, "Border thickness in cells")
	flagSquareSize = flag.Float64("square-size", 0, "World size of one grid cell")
	flagSmoothing  = flag.String("smoothing", "", "Smoothing mode: in_place or double_buffered")
	flagFormat     = flag.String("format", "", "Output format: obj, json, png, bmp, ascii, gat")
	flagOut        = flag.String("out", "", "Output path (default stdout)")
	flagScale      = flag.Int("scale", 0, "Raster pixels per square")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
// Flags left at their zero or sentinel value do not override anything.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != "" {
		cfg.Cave.Seed = *flagSeed
		cfg.Cave.UseRandomSeed = false
	}
	if *flagRandomSeed {
		cfg.Cave.UseRandomSeed = true
	}
	if *flagWidth > 0 {
		cfg.Cave.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Cave.Height = *flagHeight
	}
	if *flagFill >= 0 {
		cfg.Cave.RandomFillPercent = *flagFill
	}
	if *flagIterations >= 0 {
		cfg.Cave.SmoothingIterations = *flagIterations
	}
	if *flagBorder >= 0 {
		cfg.Cave.BorderSize = *flagBorder
	}
	if *flagSquareSize > 0 {
		cfg.Cave.SquareSize = float32(*flagSquareSize)
	}
	if *flagSmoothing != "" {
		cfg.Cave.Smoothing = cave.SmoothMode(*flagSmoothing)
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagScale > 0 {
		cfg.Output.Scale = *flagScale
	}
}
