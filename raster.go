package gosieraster

import (
	"image/color"
	"math"
)

// screenPoint is a vertex after truncation of x and y to pixel coordinates.
type screenPoint struct {
	x, y int
	z    float64
}

func toScreen(v Vector) screenPoint {
	return screenPoint{x: int(v.X), y: int(v.Y), z: v.Z}
}

// DrawTriangles rasterizes the buffer three vertices at a time into target,
// keeping a pixel only when it is nearer (greater Z) than the stored depth.
// With lighting, each channel of base is scaled by |normal.z| of the
// triangle's first vertex; without it base is used as is. Triangles with a
// NaN or infinite coordinate are skipped.
func (b *Buffer) DrawTriangles(target RenderTarget, base color.RGBA, lighting bool) {
	for i := 0; i+2 < len(b.vertices); i += 3 {
		v0, v1, v2 := b.vertices[i], b.vertices[i+1], b.vertices[i+2]
		if !v0.Coords.IsFinite() || !v1.Coords.IsFinite() || !v2.Coords.IsFinite() {
			continue
		}

		col := base
		if lighting {
			col = shade(base, math.Abs(v0.Normal.Z))
		}

		drawTriangle(target, toScreen(v0.Coords), toScreen(v1.Coords), toScreen(v2.Coords), col)
	}
}

func shade(base color.RGBA, light float64) color.RGBA {
	return color.RGBA{
		R: uint8(clamp(int(light*float64(base.R)), 0, 255)),
		G: uint8(clamp(int(light*float64(base.G)), 0, 255)),
		B: uint8(clamp(int(light*float64(base.B)), 0, 255)),
		A: 255,
	}
}

// planeFunc returns the depth of the triangle's plane at a pixel.
type planeFunc func(x, y int) float64

// newPlane solves the plane through p1, p2, p3 for z. Points collinear in
// screen space give a zero denominator and the function returns NaN or Inf.
func newPlane(p1, p2, p3 screenPoint) planeFunc {
	x1, y1, z1 := float64(p1.x), float64(p1.y), p1.z

	y2y1 := float64(p2.y) - y1
	y3y1 := float64(p3.y) - y1
	z2z1 := p2.z - z1
	z3z1 := p3.z - z1
	x2x1 := float64(p2.x) - x1
	x3x1 := float64(p3.x) - x1

	e := y2y1*x3x1 - x2x1*y3y1
	ac := y2y1*z3z1 - z2z1*y3y1
	bd := z2z1*x3x1 - z3z1*x2x1

	return func(x, y int) float64 {
		return z1 + ((float64(x)-x1)*ac+(float64(y)-y1)*bd)/e
	}
}

// drawTriangle fills the triangle with horizontal spans from the top vertex
// down to, but not including, the bottom row. Rows outside the target are
// never visited.
func drawTriangle(target RenderTarget, a, b, c screenPoint, col color.RGBA) {
	if a.y > c.y {
		a, c = c, a
	}
	if a.y > b.y {
		a, b = b, a
	}
	if c.y < b.y {
		c, b = b, c
	}

	plane := newPlane(a, b, c)

	for y := max(a.y, 0); y < min(c.y, target.Height()); y++ {
		x1 := int(float64(a.x) + float64(y-a.y)*float64(c.x-a.x)/float64(c.y-a.y))

		var x2 int
		switch {
		case y < b.y:
			x2 = int(float64(a.x) + float64(y-a.y)*float64(b.x-a.x)/float64(b.y-a.y))
		case c.y == b.y:
			x2 = b.x
		default:
			x2 = int(float64(b.x) + float64(y-b.y)*float64(c.x-b.x)/float64(c.y-b.y))
		}

		if x1 > x2 {
			x1, x2 = x2, x1
		}

		drawSpan(target, y, x1, x2, col, plane)
	}
}

// drawSpan writes pixels x1 <= x < x2 on row y that pass the depth test.
// Equal depth does not overwrite, and a non-finite depth never passes.
func drawSpan(target RenderTarget, y, x1, x2 int, col color.RGBA, plane planeFunc) {
	if y < 0 || y >= target.Height() {
		return
	}
	if x2 < 0 || x1 >= target.Width() {
		return
	}

	x1 = clamp(x1, 0, target.Width())
	x2 = clamp(x2, 0, target.Width())

	for x := x1; x < x2; x++ {
		z := plane(x, y)
		if math.IsInf(z, 0) || !(z > target.Depth(x, y)) {
			continue
		}
		target.SetPixel(x, y, col)
		target.SetDepth(x, y, z)
	}
}
