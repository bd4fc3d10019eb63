package gosieraster

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const float64EqualityThreshold = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func vectorsAlmostEqual(a, b Vector) bool {
	return almostEqual(a.X, b.X) && almostEqual(a.Y, b.Y) && almostEqual(a.Z, b.Z)
}

func matricesAlmostEqual(a, b Matrix) bool {
	for i := range a {
		for j := range a[i] {
			if !almostEqual(a[i][j], b[i][j]) {
				return false
			}
		}
	}
	return true
}

func sampleMatrices() map[string]Matrix {
	return map[string]Matrix{
		"identity":  IdentityMatrix(),
		"translate": TranslateMatrix(3, -4, 5),
		"rotX":      RotateXMatrix(30),
		"rotY":      RotateYMatrix(-75),
		"rotZ":      RotateZMatrix(140),
		"scale":     ScaleMatrix(2, 0.5, -1),
		"composed":  ScaleMatrix(2, 2, 2).Multiply(RotateXMatrix(30)).Multiply(TranslateMatrix(1, 2, 3)),
	}
}

func TestIdentityComposition(t *testing.T) {
	for name, m := range sampleMatrices() {
		t.Run(name, func(t *testing.T) {
			if got := IdentityMatrix().Multiply(m); !matricesAlmostEqual(got, m) {
				t.Errorf("I*M != M\n%v", got)
			}
			if got := m.Multiply(IdentityMatrix()); !matricesAlmostEqual(got, m) {
				t.Errorf("M*I != M\n%v", got)
			}
		})
	}
}

func TestRotationRoundTrip(t *testing.T) {
	rotations := map[string]func(float64) Matrix{
		"x": RotateXMatrix,
		"y": RotateYMatrix,
		"z": RotateZMatrix,
	}
	angles := []float64{0, 1, 30, 90, 180, 271.5, -45}
	vectors := []Vector{
		{1, 0, 0},
		{0, 1, 0},
		{-3, 7.5, 2},
		{100, -200, 0.001},
	}

	for axis, rot := range rotations {
		for _, angle := range angles {
			m := rot(angle).Multiply(rot(-angle))
			for _, v := range vectors {
				if got := v.Multiply(m); !vectorsAlmostEqual(got, v) {
					t.Errorf("rot%s(%v) round trip of %v gave %v", axis, angle, v, got)
				}
			}
		}
	}
}

func TestMultiplyAppliesReceiverFirst(t *testing.T) {
	v := NewVector(1, 0, 0)
	translate := TranslateMatrix(1, 0, 0)
	scale := ScaleMatrix(2, 2, 2)

	// Translate to 2, then scale to 4.
	if got := v.Multiply(translate.Multiply(scale)); !vectorsAlmostEqual(got, NewVector(4, 0, 0)) {
		t.Errorf("translate then scale: got %v", got)
	}
	// Scale to 2, then translate to 3.
	if got := v.Multiply(scale.Multiply(translate)); !vectorsAlmostEqual(got, NewVector(3, 0, 0)) {
		t.Errorf("scale then translate: got %v", got)
	}
}

func TestMultiplyMatchesSequentialTransform(t *testing.T) {
	m1 := RotateYMatrix(33).Multiply(TranslateMatrix(5, -2, 1))
	m2 := ScaleMatrix(1.5, 2, 3).Multiply(RotateZMatrix(-60))
	v := NewVector(0.5, -1.25, 4)

	sequential := v.Multiply(m1).Multiply(m2)
	composed := v.Multiply(m1.Multiply(m2))
	if !vectorsAlmostEqual(sequential, composed) {
		t.Errorf("sequential %v != composed %v", sequential, composed)
	}
}

func TestRotationDirections(t *testing.T) {
	testCases := []struct {
		name     string
		m        Matrix
		in, want Vector
	}{
		{"rotX 90 sends y to -z", RotateXMatrix(90), Vector{0, 1, 0}, Vector{0, 0, -1}},
		{"rotY 90 sends x to z", RotateYMatrix(90), Vector{1, 0, 0}, Vector{0, 0, 1}},
		{"rotZ 90 sends x to -y", RotateZMatrix(90), Vector{1, 0, 0}, Vector{0, -1, 0}},
		{"translate", TranslateMatrix(1, 2, 3), Vector{1, 1, 1}, Vector{2, 3, 4}},
		{"scale", ScaleMatrix(2, 3, 4), Vector{1, 1, 1}, Vector{2, 3, 4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Multiply(tc.m); !vectorsAlmostEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMultiplyHomogeneousDivide(t *testing.T) {
	// Bottom row copies z into w.
	m := IdentityMatrix()
	m[3][2] = 1
	m[3][3] = 0

	got := NewVector(2, 4, 2).Multiply(m)
	if !vectorsAlmostEqual(got, NewVector(1, 2, 1)) {
		t.Errorf("expected (1, 2, 1), got %v", got)
	}

	// w == 0 is not trapped.
	got = NewVector(1, 1, 0).Multiply(m)
	if got.IsFinite() {
		t.Errorf("expected non-finite result for w == 0, got %v", got)
	}
}

func TestMat4Bridge(t *testing.T) {
	const threshold = 1e-9

	t.Run("round trip", func(t *testing.T) {
		for name, m := range sampleMatrices() {
			if got := MatrixFromMat4(m.Mat4()); !matricesAlmostEqual(got, m) {
				t.Errorf("%s: round trip changed the matrix", name)
			}
		}
	})

	t.Run("multiply is reversed Mul4", func(t *testing.T) {
		a := RotateXMatrix(20).Multiply(TranslateMatrix(1, 2, 3))
		b := ScaleMatrix(2, 3, 4).Multiply(RotateZMatrix(45))
		want := b.Mat4().Mul4(a.Mat4())
		if got := a.Multiply(b).Mat4(); !got.ApproxEqualThreshold(want, threshold) {
			t.Errorf("a.Multiply(b) =\n%v\nwant\n%v", got, want)
		}
	})

	t.Run("constructors", func(t *testing.T) {
		rad := mgl64.DegToRad(35)
		testCases := []struct {
			name string
			got  Matrix
			want mgl64.Mat4
		}{
			{"translate", TranslateMatrix(1, -2, 3), mgl64.Translate3D(1, -2, 3)},
			{"scale", ScaleMatrix(2, 3, 4), mgl64.Scale3D(2, 3, 4)},
			// Rotations turn the opposite way to mathgl's.
			{"rotX", RotateXMatrix(35), mgl64.HomogRotate3DX(-rad)},
			{"rotY", RotateYMatrix(35), mgl64.HomogRotate3DY(-rad)},
			{"rotZ", RotateZMatrix(35), mgl64.HomogRotate3DZ(-rad)},
		}
		for _, tc := range testCases {
			if !tc.got.Mat4().ApproxEqualThreshold(tc.want, threshold) {
				t.Errorf("%s: got\n%v\nwant\n%v", tc.name, tc.got.Mat4(), tc.want)
			}
		}
	})

	t.Run("point transform", func(t *testing.T) {
		m := RotateYMatrix(60).Multiply(TranslateMatrix(4, 5, 6))
		v := NewVector(1, 2, 3)
		p := m.Mat4().Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 1})
		want := NewVector(p.X()/p.W(), p.Y()/p.W(), p.Z()/p.W())
		if got := v.Multiply(m); !vectorsAlmostEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})
}

func TestMatrixAt(t *testing.T) {
	m := TranslateMatrix(7, 8, 9)
	if m.At(0, 3) != 7 || m.At(1, 3) != 8 || m.At(2, 3) != 9 || m.At(3, 3) != 1 {
		t.Errorf("unexpected translation column:\n%v", m)
	}
}
