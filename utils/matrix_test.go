package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Mul, Scale, Add
	{
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := NewMatrix(2, 2, []float64{0, 1, 1, 0})
		C := A.Mul(B)
		assert.True(t, near(C.At(0, 0), 2))
		assert.True(t, near(C.At(0, 1), 1))
		assert.True(t, near(C.At(1, 0), 4))
		assert.True(t, near(C.At(1, 1), 3))
		// Mul must not touch its operands
		assert.True(t, near(A.At(0, 0), 1))
		D := A.Copy().Scale(2)
		assert.True(t, near(D.At(1, 1), 8))
		assert.True(t, near(A.At(1, 1), 4))
		D.Add(A)
		assert.True(t, near(D.At(1, 1), 12))
	}
	// Inverse round trip
	{
		A := NewMatrix(3, 3, []float64{4, 1, 0, 1, 3, 1, 0, 1, 2})
		Ainv, err := A.Inverse()
		assert.NoError(t, err)
		I := A.Mul(Ainv)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				expected := 0.0
				if i == j {
					expected = 1.0
				}
				assert.True(t, math.Abs(I.At(i, j)-expected) < 1.e-12)
			}
		}
	}
	// Singular matrix must error
	{
		A := NewMatrix(3, 3, []float64{1, 2, 3, 2, 4, 6, 1, 1, 1})
		_, err := A.Inverse()
		assert.Error(t, err)
	}
	// Identity and Transpose
	{
		I := Identity(3)
		assert.True(t, near(I.At(1, 1), 1))
		assert.True(t, near(I.At(0, 1), 0))
		A := NewMatrix(2, 3, []float64{1, 2, 3, 4, 5, 6})
		At := A.Transpose()
		nr, nc := At.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 2, nc)
		assert.True(t, near(At.At(2, 1), 6))
	}
}

func near(a, b float64) (l bool) {
	bound := 1.e-08 * math.Abs(a)
	if bound < 1.e-12 {
		bound = 1.e-12
	}
	if math.Abs(a-b) < bound {
		l = true
	}
	return
}
