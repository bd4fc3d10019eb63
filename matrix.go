package gosieraster

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix is a 4x4 transform indexed [row][col]. A point is transformed as
// the column (x, y, z, 1), so translation lives in column 3.
type Matrix [4][4]float64

const matrixSize = 4

func IdentityMatrix() Matrix {
	var m Matrix
	for i := 0; i < matrixSize; i++ {
		m[i][i] = 1.0
	}
	return m
}

func TranslateMatrix(x, y, z float64) Matrix {
	m := IdentityMatrix()
	m[0][matrixSize-1] = x
	m[1][matrixSize-1] = y
	m[2][matrixSize-1] = z
	return m
}

// RotateXMatrix builds a rotation about the X axis. The angle is in degrees.
func RotateXMatrix(angle float64) Matrix {
	m := IdentityMatrix()
	s, c := math.Sincos(mgl64.DegToRad(angle))
	m[1][1] = c
	m[1][2] = s
	m[2][1] = -s
	m[2][2] = c
	return m
}

// RotateYMatrix builds a rotation about the Y axis. The angle is in degrees.
func RotateYMatrix(angle float64) Matrix {
	m := IdentityMatrix()
	s, c := math.Sincos(mgl64.DegToRad(angle))
	m[0][0] = c
	m[0][2] = -s
	m[2][0] = s
	m[2][2] = c
	return m
}

// RotateZMatrix builds a rotation about the Z axis. The angle is in degrees.
func RotateZMatrix(angle float64) Matrix {
	m := IdentityMatrix()
	s, c := math.Sincos(mgl64.DegToRad(angle))
	m[0][0] = c
	m[0][1] = s
	m[1][0] = -s
	m[1][1] = c
	return m
}

func ScaleMatrix(x, y, z float64) Matrix {
	m := IdentityMatrix()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// Multiply composes two transforms so that m.Multiply(other) applies m first
// and other second:
//
//	result[i][j] = Σ_k m[k][j] * other[i][k]
//
// The operation is associative but not commutative.
func (m Matrix) Multiply(other Matrix) Matrix {
	var result Matrix
	for j := 0; j < matrixSize; j++ {
		for i := 0; i < matrixSize; i++ {
			for k := 0; k < matrixSize; k++ {
				result[i][j] += m[k][j] * other[i][k]
			}
		}
	}
	return result
}

func (m Matrix) At(i, j int) float64 {
	return m[i][j]
}

// Mat4 converts m to a column-major mathgl matrix with the same row/column
// meaning, so Mat4().Mul4x1 transforms points like Vector.Multiply (before
// the w divide).
func (m Matrix) Mat4() mgl64.Mat4 {
	var out mgl64.Mat4
	for i := 0; i < matrixSize; i++ {
		for j := 0; j < matrixSize; j++ {
			out.Set(i, j, m[i][j])
		}
	}
	return out
}

// MatrixFromMat4 is the inverse of Matrix.Mat4.
func MatrixFromMat4(mat mgl64.Mat4) Matrix {
	var m Matrix
	for i := 0; i < matrixSize; i++ {
		for j := 0; j < matrixSize; j++ {
			m[i][j] = mat.At(i, j)
		}
	}
	return m
}

func (m Matrix) String() string {
	var sb strings.Builder
	for i, row := range m {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, val := range row {
			if j > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", val))
		}
	}
	return sb.String()
}
