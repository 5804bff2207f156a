// Package colour provides colour clustering, palette selection and
// colour-vision evaluation.
package colour

import "errors"

// Sentinel errors returned by the palette engine. Callers match them with
// errors.Is; returned errors wrap these with the offending values.
var (
	// ErrInvalidK is returned when a requested cluster count is out of range
	// for the sample it was requested against.
	ErrInvalidK = errors.New("invalid cluster count")

	// ErrInsufficientColors is returned when a sample contains fewer distinct
	// colours than the requested cluster count.
	ErrInsufficientColors = errors.New("insufficient distinct colours")

	// ErrInvalidSubsetSize is returned when a distinct-subset size is out of
	// range for the palette it was requested against.
	ErrInvalidSubsetSize = errors.New("invalid subset size")
)
