package core

// DivisionByZero is substituted for any divisor that is exactly zero.
const DivisionByZero = 1e-9

// SafeDivisor returns x, or DivisionByZero when x is exactly zero.
// Values that are merely close to zero are passed through unchanged.
func SafeDivisor(x float64) float64 {
	if x == 0 {
		return DivisionByZero
	}
	return x
}

// SafeDivisors is the elementwise variant of SafeDivisor.
// It returns a new slice and leaves xs untouched.
func SafeDivisors(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = SafeDivisor(x)
	}
	return out
}
