package velocity

// centralGradient approximates dy/dx at each point of y(x) using centred
// differences in the interior and one-sided differences at the
// boundaries, matching numpy.gradient's default behaviour.
func centralGradient(y, x []float64) []float64 {
	n := len(y)
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	out[0] = (y[1] - y[0]) / (x[1] - x[0])
	out[n-1] = (y[n-1] - y[n-2]) / (x[n-1] - x[n-2])
	for i := 1; i < n-1; i++ {
		out[i] = (y[i+1] - y[i-1]) / (x[i+1] - x[i-1])
	}
	return out
}

// trapz integrates y dx over x[0:len(y)] using the trapezoidal rule. An
// empty or single-point slice integrates to zero.
func trapz(y, x []float64) float64 {
	var sum float64
	for i := 1; i < len(y); i++ {
		sum += (x[i] - x[i-1]) * (y[i] + y[i-1]) / 2
	}
	return sum
}

func argmin(xs []float64) int {
	idx := 0
	for i, x := range xs {
		if x < xs[idx] {
			idx = i
		}
	}
	return idx
}

func argmax(xs []float64) int {
	idx := 0
	for i, x := range xs {
		if x > xs[idx] {
			idx = i
		}
	}
	return idx
}

func minFloat(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxFloat(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
