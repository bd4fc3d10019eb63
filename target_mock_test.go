package gosieraster

import (
	"image/color"
	"testing"
)

// checkedTarget is a Bitmap that fails the test on any access outside its
// extents and counts pixel writes.
type checkedTarget struct {
	*Bitmap
	t      *testing.T
	writes int
}

func newCheckedTarget(t *testing.T, width, height int) *checkedTarget {
	return &checkedTarget{Bitmap: NewBitmap(width, height), t: t}
}

func (c *checkedTarget) check(op string, x, y int) bool {
	if x < 0 || y < 0 || x >= c.Width() || y >= c.Height() {
		c.t.Errorf("%s outside target at (%d, %d)", op, x, y)
		return false
	}
	return true
}

func (c *checkedTarget) Pixel(x, y int) color.RGBA {
	if !c.check("Pixel", x, y) {
		return color.RGBA{}
	}
	return c.Bitmap.Pixel(x, y)
}

func (c *checkedTarget) SetPixel(x, y int, col color.RGBA) {
	if c.check("SetPixel", x, y) {
		c.writes++
		c.Bitmap.SetPixel(x, y, col)
	}
}

func (c *checkedTarget) Depth(x, y int) float64 {
	if !c.check("Depth", x, y) {
		return DepthSentinel
	}
	return c.Bitmap.Depth(x, y)
}

func (c *checkedTarget) SetDepth(x, y int, z float64) {
	if c.check("SetDepth", x, y) {
		c.Bitmap.SetDepth(x, y, z)
	}
}
