package viewport

import (
	"fmt"
	"strconv"
	"strings"
)

// ExportCoordinates renders c's center and size as three lines
//
//	X: <center x>
//	Y: <center y>
//	Zoom: <size>
//
// with 17 significant digits, enough to round-trip any float64.
func ExportCoordinates(c CameraParams) string {
	return fmt.Sprintf("X: %s\nY: %s\nZoom: %s",
		formatFull(c.CenterX), formatFull(c.CenterY), formatFull(c.Size))
}

func formatFull(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

// ParseCoordinates reads the output of ExportCoordinates. Lines may be in
// any order; blank lines are ignored.
func ParseCoordinates(s string) (x, y, size float64, err error) {
	seen := map[string]bool{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadCoordinates, line)
		}
		f, perr := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if perr != nil || !isFinite(f) {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadCoordinates, line)
		}
		key = strings.TrimSpace(key)
		switch key {
		case "X":
			x = f
		case "Y":
			y = f
		case "Zoom":
			size = f
		default:
			return 0, 0, 0, fmt.Errorf("%w: unknown key %q", ErrBadCoordinates, key)
		}
		seen[key] = true
	}
	if len(seen) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: want X, Y and Zoom", ErrBadCoordinates)
	}
	if size <= 0 {
		return 0, 0, 0, fmt.Errorf("%w: zoom must be positive", ErrBadCoordinates)
	}
	return x, y, size, nil
}
