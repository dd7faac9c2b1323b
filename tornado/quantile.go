package tornado

import "math"

// quantile computes the p-quantile (0..1) of an already sorted slice using
// linear interpolation between the two nearest ranks, the same scheme
// numpy.percentile applies by default.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)

	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor

	return lower + fraction*(upper-lower)
}
