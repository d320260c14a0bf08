// Package cave synthesizes cave occupancy grids with a seeded cellular automaton.
package cave

import (
	"errors"
	"fmt"
	"math"
)

// Cave generation errors.
var (
	ErrInvalidConfiguration = errors.New("invalid cave configuration")
	ErrMalformedGrid        = errors.New("malformed grid text")
)

// SmoothMode selects how a smoothing pass reads neighbour state.
type SmoothMode string

// Smoothing modes.
const (
	// SmoothInPlace reads and writes the same buffer, so later cells in a
	// pass see cells updated earlier in that pass. Existing seeds depend on it.
	SmoothInPlace SmoothMode = "in_place"
	// SmoothDoubleBuffered reads every neighbour from the previous pass.
	SmoothDoubleBuffered SmoothMode = "double_buffered"
)

// String returns the mode name, with the empty mode reported as in_place.
func (m SmoothMode) String() string {
	if m == "" {
		return string(SmoothInPlace)
	}
	return string(m)
}

func (m SmoothMode) valid() bool {
	return m == "" || m == SmoothInPlace || m == SmoothDoubleBuffered
}

// Config holds every parameter of a cave generation run.
type Config struct {
	Width               int        `yaml:"width"`
	Height              int        `yaml:"height"`
	Seed                string     `yaml:"seed"`
	UseRandomSeed       bool       `yaml:"use_random_seed"`
	RandomFillPercent   int        `yaml:"random_fill_percent"`
	SmoothingIterations int        `yaml:"smoothing_iterations"`
	BorderSize          int        `yaml:"border_size"`
	SquareSize          float32    `yaml:"square_size"`
	Smoothing           SmoothMode `yaml:"smoothing"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		Width:               128,
		Height:              72,
		Seed:                "midgard",
		UseRandomSeed:       false,
		RandomFillPercent:   47,
		SmoothingIterations: 5,
		BorderSize:          1,
		SquareSize:          1,
		Smoothing:           SmoothInPlace,
	}
}

// Validate reports the first parameter outside its domain.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width %d must be positive", ErrInvalidConfiguration, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height %d must be positive", ErrInvalidConfiguration, c.Height)
	case c.RandomFillPercent < 0 || c.RandomFillPercent > 100:
		return fmt.Errorf("%w: random fill percent %d outside [0,100]", ErrInvalidConfiguration, c.RandomFillPercent)
	case c.SmoothingIterations < 0:
		return fmt.Errorf("%w: smoothing iterations %d must not be negative", ErrInvalidConfiguration, c.SmoothingIterations)
	case c.BorderSize < 0:
		return fmt.Errorf("%w: border size %d must not be negative", ErrInvalidConfiguration, c.BorderSize)
	case !ValidSquareSize(c.SquareSize):
		return fmt.Errorf("%w: square size %v must be positive", ErrInvalidConfiguration, c.SquareSize)
	case !c.Smoothing.valid():
		return fmt.Errorf("%w: unknown smoothing mode %q", ErrInvalidConfiguration, string(c.Smoothing))
	}
	return nil
}

// ValidSquareSize reports whether s is a usable cell edge length.
func ValidSquareSize(s float32) bool {
	return s > 0 && !math.IsInf(float64(s), 0)
}
