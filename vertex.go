package gosieraster

// Vertex is a position plus the normal of the triangle it belongs to. The
// normal is the zero vector until ComputeTriangleNormals assigns one.
type Vertex struct {
	Coords Vector
	Normal Vector
}

func NewVertex(coords Vector) Vertex {
	return Vertex{Coords: coords}
}

// Transform multiplies both the coordinates and the normal by m and
// renormalizes the normal. A normal that is zero before or after the
// multiplication stays zero.
func (v Vertex) Transform(m Matrix) Vertex {
	normal := Vector{}
	if !v.Normal.IsZero() {
		normal = safeNormalize(v.Normal.Multiply(m))
	}
	return Vertex{
		Coords: v.Coords.Multiply(m),
		Normal: normal,
	}
}

func safeNormalize(v Vector) Vector {
	length := v.Length()
	if length == 0 || !v.IsFinite() {
		return Vector{}
	}
	return Vector{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}
