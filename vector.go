package gosieraster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector is a point or direction in 3D space.
type Vector struct {
	X float64
	Y float64
	Z float64
}

func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func vectorFromR3(v r3.Vec) Vector {
	return Vector{X: v.X, Y: v.Y, Z: v.Z}
}

func (v Vector) vec() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Multiply treats v as the homogeneous point (x, y, z, 1) and divides the
// result by the computed w. A zero w yields NaN or Inf components.
func (v Vector) Multiply(m Matrix) Vector {
	x := v.X*m[0][0] + v.Y*m[0][1] + v.Z*m[0][2] + m[0][3]
	y := v.X*m[1][0] + v.Y*m[1][1] + v.Z*m[1][2] + m[1][3]
	z := v.X*m[2][0] + v.Y*m[2][1] + v.Z*m[2][2] + m[2][3]
	w := v.X*m[3][0] + v.Y*m[3][1] + v.Z*m[3][2] + m[3][3]

	return Vector{X: x / w, Y: y / w, Z: z / w}
}

// Normalize returns v scaled to unit length. The result is NaN for a zero
// vector; callers must check IsZero first.
func (v Vector) Normalize() Vector {
	length := v.Length()
	return Vector{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

func (v Vector) Length() float64 {
	return r3.Norm(v.vec())
}

func (v Vector) Add(o Vector) Vector {
	return vectorFromR3(r3.Add(v.vec(), o.vec()))
}

func (v Vector) Sub(o Vector) Vector {
	return vectorFromR3(r3.Sub(v.vec(), o.vec()))
}

func (v Vector) Cross(o Vector) Vector {
	return vectorFromR3(r3.Cross(v.vec(), o.vec()))
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector) IsFinite() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	return fmt.Sprintf("(%f, %f, %f)", v.X, v.Y, v.Z)
}
