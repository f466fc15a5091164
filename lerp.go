package morph

import (
	"math"

	"github.com/pkg/errors"
)

// Lerp linearly interpolates between two index-aligned point sequences.
// Values of t outside [0, 1] extrapolate. The result is not rounded.
func Lerp(src, dst []Point, t float64) ([]Point, error) {
	if len(src) != len(dst) {
		return nil, errors.Wrapf(ErrLengthMismatch, "lerp %d and %d points", len(src), len(dst))
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "lerp t=%v", t)
	}

	out := make([]Point, len(src))
	for i := range src {
		out[i] = Point{
			X: lerp(src[i].X, dst[i].X, t),
			Y: lerp(src[i].Y, dst[i].Y, t),
		}
	}
	return out, nil
}

func lerp(a, b, t float64) float64 {
	if a == b {
		return a
	}
	return a*(1-t) + b*t
}
