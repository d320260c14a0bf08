package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	stdmath "math"

	"golang.org/x/image/bmp"
	"golang.org/x/image/vector"

	"github.com/Faultbox/midgard-caves/pkg/marching"
	"github.com/Faultbox/midgard-caves/pkg/math"
)

// Preview colours.
var (
	OpenColor = color.RGBA{R: 236, G: 230, B: 214, A: 255}
	WallColor = color.RGBA{R: 38, G: 34, B: 44, A: 255}
)

// maxImageSide bounds raster previews so a large scale cannot exhaust memory.
const maxImageSide = 8192

// Render rasterizes mesh top-down: +X to the right, +Z up. Each square
// spans scale pixels. The image covers the mesh bounds.
func Render(mesh *marching.Mesh, squareSize float32, scale int) (*image.RGBA, error) {
	if mesh == nil || mesh.IsEmpty() {
		return nil, ErrNothingToRender
	}
	if scale <= 0 || !(squareSize > 0) {
		return nil, fmt.Errorf("%w: scale %d, square size %v", ErrInvalidImageSize, scale, squareSize)
	}

	bounds, _ := mesh.Bounds()
	size := bounds.Size()
	ppu := float32(scale) / squareSize // pixels per world unit

	w := int(stdmath.Ceil(float64(size.X * ppu)))
	h := int(stdmath.Ceil(float64(size.Z * ppu)))
	if w <= 0 || h <= 0 || w > maxImageSide || h > maxImageSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(OpenColor), image.Point{}, draw.Src)

	// Image origin is the top-left corner of the bounds.
	origin := math.Vec2{X: bounds.Min.X, Y: bounds.Max.Z}
	project := func(v math.Vec3) (float32, float32) {
		d := v.XZ().Sub(origin).Scale(ppu)
		return d.X, -d.Y
	}

	r := vector.NewRasterizer(w, h)
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, c := mesh.Triangle(i)
		r.MoveTo(project(a))
		r.LineTo(project(b))
		r.LineTo(project(c))
		r.ClosePath()
	}
	r.Draw(img, img.Bounds(), image.NewUniform(WallColor), image.Point{})

	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

// WriteBMP encodes img as BMP.
func WriteBMP(w io.Writer, img image.Image) error {
	if err := bmp.Encode(w, img); err != nil {
		return fmt.Errorf("encoding BMP: %w", err)
	}
	return nil
}
