package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/rbdraw/pkg/errors"
)

func TestSpacingGap(t *testing.T) {
	tests := []struct {
		name    string
		spacing Spacing
		want    []float64 // gaps for n = 1, 2, 3, 4
	}{
		{"constant", Constant(20), []float64{20, 20, 20, 20}},
		{"linear", Linear(10, 5), []float64{10, 15, 20, 25}},
		{"geometric", Geometric(8, 2), []float64{8, 16, 32, 64}},
		{"table", Table(4, 12, 30), []float64{4, 12, 30, 30}},
		{"table single", Table(7), []float64{7, 7, 7, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.want {
				if got := tt.spacing.Gap(i + 1); got != want {
					t.Errorf("Gap(%d) = %v, want %v", i+1, got, want)
				}
			}
		})
	}
}

func TestSpacingGapMalformed(t *testing.T) {
	for _, s := range []Spacing{{Name: "bogus", Args: []float64{1}}, {Name: SpacingLinear, Args: []float64{1}}, {Name: SpacingTable}} {
		if g := s.Gap(1); !math.IsNaN(g) {
			t.Errorf("%+v.Gap(1) = %v, want NaN", s, g)
		}
	}
}

func TestParseSpacing(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"20", "constant:20"},
		{"constant:20", "constant:20"},
		{"CONSTANT: 2.5", "constant:2.5"},
		{"linear:10,5", "linear:10,5"},
		{"linear: 10 , 5", "linear:10,5"},
		{"geometric:8,2", "geometric:8,2"},
		{"table:4,12,30", "table:4,12,30"},
		{DefaultSpacing, DefaultSpacing},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseSpacing(tt.input)
			if err != nil {
				t.Fatalf("ParseSpacing(%q) error: %v", tt.input, err)
			}
			if s.String() != tt.want {
				t.Errorf("ParseSpacing(%q).String() = %q, want %q", tt.input, s.String(), tt.want)
			}
			again, err := ParseSpacing(s.String())
			if err != nil || again.String() != s.String() {
				t.Errorf("round trip of %q gave %q (%v)", s.String(), again.String(), err)
			}
		})
	}
}

func TestParseSpacingInvalid(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"fancy:1",
		"constant",
		"constant:",
		"constant:1,2",
		"linear:1",
		"geometric:1,-2",
		"geometric:1,x",
		"table:",
		"constant:NaN",
		"constant:+Inf",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := ParseSpacing(in)
			if !errors.Is(err, errors.ErrCodeInvalidSpacing) {
				t.Errorf("ParseSpacing(%q) error = %v, want INVALID_SPACING", in, err)
			}
		})
	}
}

func TestMustParseSpacingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseSpacing should panic on invalid input")
		}
	}()
	MustParseSpacing("nope")
}
