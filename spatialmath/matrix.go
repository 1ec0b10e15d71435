package spatialmath

import "github.com/golang/geo/r2"

// Mat2 is a row-major 2x2 matrix.
type Mat2 [2][2]float64

// NewMat2 builds a matrix from its two rows.
func NewMat2(row0, row1 r2.Point) Mat2 {
	return Mat2{{row0.X, row0.Y}, {row1.X, row1.Y}}
}

// Det returns the determinant.
func (m Mat2) Det() float64 {
	return m[0][0]*m[1][1] - m[1][0]*m[0][1]
}

// Inverse returns the inverse of m. The second return is false only when the determinant is
// exactly zero; nearly singular matrices are still inverted.
func (m Mat2) Inverse() (Mat2, bool) {
	det := m.Det()
	if det == 0 {
		return Mat2{}, false
	}
	return Mat2{
		{m[1][1] / det, -m[0][1] / det},
		{-m[1][0] / det, m[0][0] / det},
	}, true
}

// MulVec returns m·v.
func (m Mat2) MulVec(v r2.Point) r2.Point {
	return r2.Point{
		X: m[0][0]*v.X + m[0][1]*v.Y,
		Y: m[1][0]*v.X + m[1][1]*v.Y,
	}
}
