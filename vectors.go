package orrery

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const (
	distanceε = 1e-9
	velocityε = 1e-9
	zeroε     = 1e-12
)

// Vector3 is a plain value-type 3D vector. All operations return new values;
// nothing mutates in place, so aliasing between live and scratch registries
// cannot leak state.
type Vector3 struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vector3) Add(w Vector3) Vector3 {
	return Vector3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector3) Sub(w Vector3) Vector3 {
	return Vector3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scaled returns f·v.
func (v Vector3) Scaled(f float64) Vector3 {
	return Vector3{f * v.X, f * v.Y, f * v.Z}
}

// Dot returns the inner product of v and w.
func (v Vector3) Dot(w Vector3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns v × w.
func (v Vector3) Cross(w Vector3) Vector3 {
	return Vector3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the Euclidean norm of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Unit returns the unit vector of v, or the zero vector if v is numerically nil.
func (v Vector3) Unit() Vector3 {
	n := v.Norm()
	if scalar.EqualWithinAbs(n, 0, zeroε) {
		return Vector3{}
	}
	return v.Scaled(1 / n)
}

// IsZero returns whether all components are numerically zero.
func (v Vector3) IsZero() bool {
	return scalar.EqualWithinAbs(v.X, 0, zeroε) && scalar.EqualWithinAbs(v.Y, 0, zeroε) && scalar.EqualWithinAbs(v.Z, 0, zeroε)
}

// Valid returns whether no component is NaN or infinite.
func (v Vector3) Valid() bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Vec returns v as a newly allocated mat.VecDense.
func (v Vector3) Vec() *mat.VecDense {
	return mat.NewVecDense(3, []float64{v.X, v.Y, v.Z})
}

func (v Vector3) String() string {
	return fmt.Sprintf("[%f %f %f]", v.X, v.Y, v.Z)
}

// vecFromSlice builds a Vector3 from the first three entries of s.
func vecFromSlice(s []float64) Vector3 {
	return Vector3{s[0], s[1], s[2]}
}
