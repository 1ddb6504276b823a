package errors

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLength bounds node label text. Labels are drawn inside a circle, so
// anything longer is almost certainly a mistake in the input document.
const MaxLabelLength = 64

// Node colors accepted in payload documents.
const (
	ColorRed   = "red"
	ColorBlack = "black"
)

// ValidateDepth checks that d is a usable tree depth no larger than max.
func ValidateDepth(d, max int) error {
	if d < 1 {
		return New(ErrCodeInvalidDepth, "depth must be at least 1, got %d", d)
	}
	if d > max {
		return New(ErrCodeInvalidDepth, "depth %d exceeds maximum of %d", d, max)
	}
	return nil
}

// ValidateRadius checks that r is a finite, non-negative node radius.
func ValidateRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return New(ErrCodeInvalidRadius, "radius must be finite, got %v", r)
	}
	if r < 0 {
		return New(ErrCodeInvalidRadius, "radius must be non-negative, got %v", r)
	}
	return nil
}

// ValidateCoordinate checks that a root coordinate or level height is a
// finite number. name identifies the value in the message.
func ValidateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidCoord, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidateGap checks a spacing value produced for sibling degree n.
func ValidateGap(n int, gap float64) error {
	if math.IsNaN(gap) || math.IsInf(gap, 0) {
		return New(ErrCodeInvalidSpacing, "spacing for degree %d must be finite, got %v", n, gap)
	}
	if gap < 0 {
		return New(ErrCodeInvalidSpacing, "spacing for degree %d must be non-negative, got %v", n, gap)
	}
	return nil
}

// ValidateIndex checks that k is a slot of a perfect tree of depth d.
func ValidateIndex(d, k int) error {
	if k < 1 {
		return New(ErrCodeInvalidIndex, "node index must be positive, got %d", k)
	}
	if d >= 1 && d < 63 && k > 1<<d-1 {
		return New(ErrCodeInvalidIndex, "node index %d outside tree of depth %d", k, d)
	}
	return nil
}

// ValidateColor checks that c is one of the recognized node colors.
// Matching is case-insensitive; the short forms "r" and "b" are accepted.
func ValidateColor(c string) error {
	if _, ok := NormalizeColor(c); !ok {
		return New(ErrCodeInvalidColor, "invalid color: %q (must be 'red' or 'black')", c)
	}
	return nil
}

// NormalizeColor maps accepted spellings of a node color to "red" or "black".
func NormalizeColor(c string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "red", "r":
		return ColorRed, true
	case "black", "b":
		return ColorBlack, true
	}
	return "", false
}

// ValidateLabel checks node label text for length and control characters.
func ValidateLabel(s string) error {
	if !utf8.ValidString(s) {
		return New(ErrCodeInvalidLabel, "label is not valid UTF-8")
	}
	if utf8.RuneCountInString(s) > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
