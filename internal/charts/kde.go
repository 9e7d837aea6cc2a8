package charts

import "math"

// KDE estimates the density of a sample with a Gaussian kernel on a regular
// grid. Bandwidth follows Silverman's rule of thumb. An empty or constant
// sample yields an empty curve.
func KDE(sample []float64, gridSize int) []XY {
	if len(sample) == 0 || gridSize <= 0 {
		return []XY{}
	}

	n := float64(len(sample))
	mean := 0.0
	for _, v := range sample {
		mean += v
	}
	mean /= n

	variance := 0.0
	for _, v := range sample {
		d := v - mean
		variance += d * d
	}
	variance /= n

	sd := math.Sqrt(variance)
	if sd == 0 {
		return []XY{}
	}

	bandwidth := 1.06 * sd * math.Pow(n, -0.2)

	lo, hi := sample[0], sample[0]
	for _, v := range sample {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= 3 * bandwidth
	hi += 3 * bandwidth

	step := (hi - lo) / float64(gridSize-1)
	norm := 1 / (n * bandwidth * math.Sqrt(2*math.Pi))

	curve := make([]XY, gridSize)
	for i := 0; i < gridSize; i++ {
		x := lo + float64(i)*step
		density := 0.0
		for _, v := range sample {
			u := (x - v) / bandwidth
			density += math.Exp(-0.5 * u * u)
		}
		curve[i] = XY{X: x, Y: density * norm}
	}
	return curve
}
