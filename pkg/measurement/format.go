package measurement

import "fmt"

// Unit-scale boundaries in world units (metres)
const (
	// MillimetreLimit keeps sub-decimetre values in millimetres, so a 0.025
	// radius reads "R 25.0 mm" rather than "R 2.50 cm"
	MillimetreLimit = 0.1
	CentimetreLimit = 1.0
)

// FormatDistance renders a world-unit distance as millimetres (1 decimal)
// below 0.1, centimetres (2 decimals) below 1.0 and metres (3 decimals) otherwise.
func FormatDistance(d float64) string {
	switch {
	case d < MillimetreLimit:
		return fmt.Sprintf("%.1f mm", d*1000)
	case d < CentimetreLimit:
		return fmt.Sprintf("%.2f cm", d*100)
	default:
		return fmt.Sprintf("%.3f m", d)
	}
}

// FormatVector formats a point with six decimals
func FormatVector(x, y, z float64) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", x, y, z)
}
