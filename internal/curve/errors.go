package curve

import "errors"

var (
	// ErrEmptyInput is returned when a jurisdiction has no rows at all.
	ErrEmptyInput = errors.New("empty input series")

	// ErrInsufficientData is returned when a series is too short to segment.
	ErrInsufficientData = errors.New("insufficient data for segmentation")
)

// IsSkippable reports whether err only affects a single jurisdiction and the
// batch should carry on without it.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrEmptyInput) || errors.Is(err, ErrInsufficientData)
}
