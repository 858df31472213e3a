package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// ValidateDimensions checks that a canvas or box extent is usable as a
// scaling reference: both sides finite and strictly positive.
func ValidateDimensions(width, height float64) error {
	if !finite(width) || !finite(height) {
		return New(ErrCodeInvalidDimensions, "dimensions must be finite (got %vx%v)", width, height)
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "dimensions must be positive (got %vx%v)", width, height)
	}
	return nil
}

// ValidateFontSize checks that a font size is finite and positive.
func ValidateFontSize(size float64) error {
	if !finite(size) || size <= 0 {
		return New(ErrCodeInvalidStyle, "font size must be a positive number (got %v)", size)
	}
	return nil
}

// ValidateFontFamily rejects empty family names and names containing control
// characters or CSS list separators.
func ValidateFontFamily(family string) error {
	if strings.TrimSpace(family) == "" {
		return New(ErrCodeInvalidStyle, "font family cannot be empty")
	}
	if len(family) > 128 {
		return New(ErrCodeInvalidStyle, "font family too long (max 128 characters)")
	}
	for _, r := range family {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStyle, "font family contains invalid control characters")
		}
	}
	if strings.ContainsAny(family, ",;") {
		return New(ErrCodeInvalidStyle, "font family must name a single family: %q", family)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb colour literals.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a #rgb or #rrggbb colour string.
func ValidateHexColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidStyle, "invalid colour %q (want #rgb or #rrggbb)", color)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
