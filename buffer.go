package gosieraster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateNormalLength is the largest face-normal magnitude treated as a
// collinear or collapsed triangle.
const degenerateNormalLength = math.SmallestNonzeroFloat64

// Buffer is a triangle soup: vertices are consumed in consecutive,
// non-overlapping triples. Vertices left over after the last full triple are
// kept but ignored by every per-triangle operation.
type Buffer struct {
	vertices []Vertex
}

func NewBuffer() *Buffer {
	return &Buffer{vertices: make([]Vertex, 0)}
}

func NewBufferWithCapacity(capacity int) *Buffer {
	return &Buffer{vertices: make([]Vertex, 0, capacity)}
}

func (b *Buffer) Add(v Vertex) {
	b.vertices = append(b.vertices, v)
}

// AddTriangle appends three vertices with zero normals.
func (b *Buffer) AddTriangle(p0, p1, p2 Vector) {
	b.vertices = append(b.vertices, NewVertex(p0), NewVertex(p1), NewVertex(p2))
}

// Append adds all vertices of other to b.
func (b *Buffer) Append(other *Buffer) {
	b.vertices = append(b.vertices, other.vertices...)
}

func (b *Buffer) Len() int {
	return len(b.vertices)
}

// Triangles returns the number of complete triangles in the buffer.
func (b *Buffer) Triangles() int {
	return len(b.vertices) / 3
}

func (b *Buffer) Vertex(i int) Vertex {
	return b.vertices[i]
}

// Vertices returns a copy of the vertex list.
func (b *Buffer) Vertices() []Vertex {
	out := make([]Vertex, len(b.vertices))
	copy(out, b.vertices)
	return out
}

// Transform returns a new buffer with every vertex multiplied by m. The
// receiver is not modified.
func (b *Buffer) Transform(m Matrix) *Buffer {
	out := NewBufferWithCapacity(len(b.vertices))
	for _, v := range b.vertices {
		out.vertices = append(out.vertices, v.Transform(m))
	}
	return out
}

func (b *Buffer) Clone() *Buffer {
	out := NewBufferWithCapacity(len(b.vertices))
	out.vertices = append(out.vertices, b.vertices...)
	return out
}

// ComputeTriangleNormals assigns every triangle its flat face normal, the
// normalized cross product of (v1-v2) and (v0-v1). Collapsed triangles get
// the zero vector.
func (b *Buffer) ComputeTriangleNormals() {
	for i := 0; i+2 < len(b.vertices); i += 3 {
		c0 := b.vertices[i].Coords
		c1 := b.vertices[i+1].Coords
		c2 := b.vertices[i+2].Coords

		cross := c1.Sub(c2).Cross(c0.Sub(c1))
		length := cross.Length()

		normal := Vector{X: cross.X / length, Y: cross.Y / length, Z: cross.Z / length}
		if math.IsNaN(length) || math.IsInf(length, 0) || math.Abs(length) <= degenerateNormalLength {
			normal = Vector{}
		}

		b.vertices[i].Normal = normal
		b.vertices[i+1].Normal = normal
		b.vertices[i+2].Normal = normal
	}
}

func (b *Buffer) triangleDepth(i int) float64 {
	return b.vertices[i].Coords.Z + b.vertices[i+1].Coords.Z + b.vertices[i+2].Coords.Z
}

// SortByDepth orders whole triangles by the sum of their Z coordinates,
// ascending. It is a bubble sort repeated until a pass makes no swap, so
// triangles with equal sums keep their relative order.
func (b *Buffer) SortByDepth() {
	last := b.Triangles()*3 - 3
	for repeat := true; repeat; {
		repeat = false
		for i := 0; i < last; i += 3 {
			if b.triangleDepth(i) > b.triangleDepth(i+3) {
				b.vertices[i], b.vertices[i+3] = b.vertices[i+3], b.vertices[i]
				b.vertices[i+1], b.vertices[i+4] = b.vertices[i+4], b.vertices[i+1]
				b.vertices[i+2], b.vertices[i+5] = b.vertices[i+5], b.vertices[i+2]
				repeat = true
			}
		}
	}
}

// Bounds returns the axis-aligned box around all vertices. An empty buffer
// has a zero box.
func (b *Buffer) Bounds() r3.Box {
	if len(b.vertices) == 0 {
		return r3.Box{}
	}

	first := b.vertices[0].Coords
	box := r3.Box{Min: first.vec(), Max: first.vec()}
	for _, v := range b.vertices {
		c := v.Coords
		box.Min.X = math.Min(box.Min.X, c.X)
		box.Min.Y = math.Min(box.Min.Y, c.Y)
		box.Min.Z = math.Min(box.Min.Z, c.Z)
		box.Max.X = math.Max(box.Max.X, c.X)
		box.Max.Y = math.Max(box.Max.Y, c.Y)
		box.Max.Z = math.Max(box.Max.Z, c.Z)
	}
	return box
}

func (b *Buffer) size() Vector {
	box := b.Bounds()
	return vectorFromR3(r3.Sub(box.Max, box.Min))
}

// Width is the span along X.
func (b *Buffer) Width() float64 {
	return math.Max(b.size().X, 0)
}

// Height is the span along Y.
func (b *Buffer) Height() float64 {
	return math.Max(b.size().Y, 0)
}

// Length is the span along Z.
func (b *Buffer) Length() float64 {
	return math.Max(b.size().Z, 0)
}

// Volume packs Width, Height and Length into a vector.
func (b *Buffer) Volume() Vector {
	return Vector{X: b.Width(), Y: b.Height(), Z: b.Length()}
}

// CenterToOrigin translates the buffer so the center of its bounding box is
// at (0, 0, 0). Normals are copied unchanged.
func (b *Buffer) CenterToOrigin() {
	if len(b.vertices) == 0 {
		return
	}

	box := b.Bounds()
	center := vectorFromR3(r3.Scale(0.5, r3.Add(box.Min, box.Max)))

	centered := make([]Vertex, 0, len(b.vertices))
	for _, v := range b.vertices {
		centered = append(centered, Vertex{
			Coords: v.Coords.Sub(center),
			Normal: v.Normal,
		})
	}
	b.vertices = centered
}
