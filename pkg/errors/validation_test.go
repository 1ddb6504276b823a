package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateDepth(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		wantErr bool
	}{
		{"single node", 1, false},
		{"typical", 4, false},
		{"at max", 24, false},

		{"zero", 0, true},
		{"negative", -3, true},
		{"above max", 25, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDepth(tt.depth, 24)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDepth(%d) error = %v, wantErr %v", tt.depth, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDepth) {
				t.Errorf("ValidateDepth(%d) code = %v, want %v", tt.depth, GetCode(err), ErrCodeInvalidDepth)
			}
		})
	}
}

func TestValidateRadius(t *testing.T) {
	tests := []struct {
		name    string
		radius  float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 12.5, false},

		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRadius(tt.radius)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRadius(%v) error = %v, wantErr %v", tt.radius, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		v       float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"negative", -40, false},
		{"nan", math.NaN(), true},
		{"+inf", math.Inf(1), true},
		{"-inf", math.Inf(-1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate("root x", tt.v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCoordinate(%v) error = %v, wantErr %v", tt.v, err, tt.wantErr)
			}
			if err != nil && (!Is(err, ErrCodeInvalidCoord) || !IsValidation(err)) {
				t.Errorf("error %v should be an INVALID_COORDINATE validation error", err)
			}
		})
	}
}

func TestValidateGap(t *testing.T) {
	if err := ValidateGap(1, 0); err != nil {
		t.Errorf("zero gap should be valid: %v", err)
	}
	for _, gap := range []float64{-0.5, math.NaN(), math.Inf(-1)} {
		err := ValidateGap(2, gap)
		if !Is(err, ErrCodeInvalidSpacing) {
			t.Errorf("ValidateGap(2, %v) = %v, want INVALID_SPACING", gap, err)
		}
	}
}

func TestValidateIndex(t *testing.T) {
	tests := []struct {
		name    string
		depth   int
		index   int
		wantErr bool
	}{
		{"root", 3, 1, false},
		{"last leaf", 3, 7, false},

		{"zero", 3, 0, true},
		{"negative", 3, -1, true},
		{"past last leaf", 3, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIndex(tt.depth, tt.index)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIndex(%d, %d) error = %v, wantErr %v", tt.depth, tt.index, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"red", ColorRed, true},
		{"RED", ColorRed, true},
		{"r", ColorRed, true},
		{" black ", ColorBlack, true},
		{"b", ColorBlack, true},

		{"", "", false},
		{"green", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeColor(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("NormalizeColor(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
			if err := ValidateColor(tt.input); (err != nil) == tt.wantOK {
				t.Errorf("ValidateColor(%q) error = %v", tt.input, err)
			}
		})
	}
}

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"number", "42", false},
		{"unicode", "αβ", false},
		{"at limit", strings.Repeat("x", MaxLabelLength), false},

		{"too long", strings.Repeat("x", MaxLabelLength+1), true},
		{"newline", "a\nb", true},
		{"null byte", "a\x00b", true},
		{"invalid utf8", "\xff", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/tree.svg", false},
		{"absolute", "/tmp/tree.svg", false},

		{"empty", "", true},
		{"null byte", "tree\x00.svg", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
