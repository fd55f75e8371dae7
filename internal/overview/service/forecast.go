package service

import (
	"errors"
	"math"
)

var errDegenerateFit = errors.New("degenerate_polynomial_fit")

// polyfitPredict fits y = c0 + c1*x + c2*x^2 by least squares and returns
// the fitted value at predictX. The xs are centered at their mean before
// forming the normal equations so large day ordinals stay well conditioned.
func polyfitPredict(xs, ys []float64, predictX float64) (float64, error) {
	n := len(xs)
	if n < 3 || n != len(ys) {
		return 0, errDegenerateFit
	}

	var meanX float64
	for _, x := range xs {
		meanX += x
	}
	meanX /= float64(n)

	// Power sums of the centered xs and moment sums against y.
	var s0, s1, s2, s3, s4 float64
	var t0, t1, t2 float64
	for i, x := range xs {
		cx := x - meanX
		cx2 := cx * cx
		s0++
		s1 += cx
		s2 += cx2
		s3 += cx2 * cx
		s4 += cx2 * cx2
		t0 += ys[i]
		t1 += cx * ys[i]
		t2 += cx2 * ys[i]
	}

	m := [3][4]float64{
		{s0, s1, s2, t0},
		{s1, s2, s3, t1},
		{s2, s3, s4, t2},
	}
	coef, err := solve3(m)
	if err != nil {
		return 0, err
	}

	cx := predictX - meanX
	return coef[0] + coef[1]*cx + coef[2]*cx*cx, nil
}

// solve3 runs Gaussian elimination with partial pivoting on a 3x4
// augmented matrix.
func solve3(m [3][4]float64) ([3]float64, error) {
	var coef [3]float64
	for col := 0; col < 3; col++ {
		pivot := col
		for row := col + 1; row < 3; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return coef, errDegenerateFit
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := col + 1; row < 3; row++ {
			factor := m[row][col] / m[col][col]
			for k := col; k < 4; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	for col := 2; col >= 0; col-- {
		sum := m[col][3]
		for k := col + 1; k < 3; k++ {
			sum -= m[col][k] * coef[k]
		}
		coef[col] = sum / m[col][col]
	}
	return coef, nil
}
