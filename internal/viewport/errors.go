package viewport

import "errors"

var (
	// ErrBadCoordinates indicates an exported coordinate string that cannot be parsed.
	ErrBadCoordinates = errors.New("viewport: malformed coordinate export")

	// ErrUnknownFractal indicates a fractal family name with no FractalType.
	ErrUnknownFractal = errors.New("viewport: unknown fractal type")
)
