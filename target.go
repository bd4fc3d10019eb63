package gosieraster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/fauxgl"
)

// DepthSentinel is the depth every pixel holds after Clear. Any finite depth
// is in front of it.
const DepthSentinel = -math.MaxFloat64

// RenderTarget is the pixel and depth surface the rasterizer draws into.
// Coordinates outside 0 <= x < Width(), 0 <= y < Height() are undefined.
// A target is owned by a single draw call at a time.
type RenderTarget interface {
	// Clear fills every pixel with c and resets every depth to DepthSentinel.
	Clear(c color.RGBA)
	Pixel(x, y int) color.RGBA
	SetPixel(x, y int, c color.RGBA)
	Depth(x, y int) float64
	SetDepth(x, y int, z float64)
	Width() int
	Height() int
}

// Bitmap is an in-memory RenderTarget backed by an RGBA image.
type Bitmap struct {
	img   *image.RGBA
	depth []float64
}

func NewBitmap(width, height int) *Bitmap {
	b := &Bitmap{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	b.resetDepth()
	return b
}

func (b *Bitmap) resetDepth() {
	for i := range b.depth {
		b.depth[i] = DepthSentinel
	}
}

func (b *Bitmap) Clear(c color.RGBA) {
	pix := b.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
	b.resetDepth()
}

func (b *Bitmap) Pixel(x, y int) color.RGBA {
	return b.img.RGBAAt(x, y)
}

func (b *Bitmap) SetPixel(x, y int, c color.RGBA) {
	b.img.SetRGBA(x, y, c)
}

func (b *Bitmap) Depth(x, y int) float64 {
	return b.depth[y*b.img.Rect.Dx()+x]
}

func (b *Bitmap) SetDepth(x, y int, z float64) {
	b.depth[y*b.img.Rect.Dx()+x] = z
}

func (b *Bitmap) Width() int {
	return b.img.Rect.Dx()
}

func (b *Bitmap) Height() int {
	return b.img.Rect.Dy()
}

// Image exposes the backing image. It is shared, not copied.
func (b *Bitmap) Image() *image.RGBA {
	return b.img
}

// Pix returns the raw RGBA bytes, row by row, in the layout expected by
// ebiten's Image.WritePixels.
func (b *Bitmap) Pix() []byte {
	return b.img.Pix
}

func (b *Bitmap) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}

func (b *Bitmap) SavePNG(fileName string) error {
	if err := fauxgl.SavePNG(fileName, b.img); err != nil {
		return fmt.Errorf("could not save PNG file %s: %w", fileName, err)
	}
	return nil
}
