package morph

import "github.com/pkg/errors"

var (
	// ErrLengthMismatch is returned when two point configurations that are
	// expected to correspond index by index have a different number of points.
	ErrLengthMismatch = errors.New("morph: point set length mismatch")
	// ErrRasterNotReady is returned when a warp is requested before the
	// raster dimensions are known.
	ErrRasterNotReady = errors.New("morph: raster not ready")
	// ErrInvalidParameter is returned for a non-finite interpolation parameter.
	ErrInvalidParameter = errors.New("morph: invalid interpolation parameter")
	// ErrIndexOutOfRange is returned when editing a feature that does not exist.
	ErrIndexOutOfRange = errors.New("morph: feature index out of range")
)
