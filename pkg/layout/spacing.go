package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/rbdraw/pkg/errors"
)

// SpacingFunc returns the extra horizontal gap between two adjacent leaves
// that are n-siblings. It is called for n in [1, depth-1] only.
type SpacingFunc func(n int) float64

// Spacing policy names accepted by ParseSpacing.
const (
	SpacingConstant  = "constant"
	SpacingLinear    = "linear"
	SpacingGeometric = "geometric"
	SpacingTable     = "table"
)

// DefaultSpacing is used when no spacing policy is configured.
const DefaultSpacing = "geometric:8,2"

// Spacing is a named, serializable spacing policy.
type Spacing struct {
	Name string
	Args []float64
}

// Constant returns a policy with the same gap c for every degree.
func Constant(c float64) Spacing { return Spacing{Name: SpacingConstant, Args: []float64{c}} }

// Linear returns a policy with gap base + step*(n-1).
func Linear(base, step float64) Spacing {
	return Spacing{Name: SpacingLinear, Args: []float64{base, step}}
}

// Geometric returns a policy with gap base * ratio^(n-1).
func Geometric(base, ratio float64) Spacing {
	return Spacing{Name: SpacingGeometric, Args: []float64{base, ratio}}
}

// Table returns a policy that looks gaps up by degree: values[n-1], with the
// last value repeated for larger n.
func Table(values ...float64) Spacing {
	return Spacing{Name: SpacingTable, Args: append([]float64(nil), values...)}
}

// Gap evaluates the policy for sibling degree n. Gap is a SpacingFunc.
func (s Spacing) Gap(n int) float64 {
	if arity := spacingArity[s.Name]; arity > 0 && len(s.Args) != arity {
		return math.NaN()
	}
	switch s.Name {
	case SpacingConstant:
		return s.Args[0]
	case SpacingLinear:
		return s.Args[0] + s.Args[1]*float64(n-1)
	case SpacingGeometric:
		return s.Args[0] * math.Pow(s.Args[1], float64(n-1))
	case SpacingTable:
		if len(s.Args) == 0 {
			return math.NaN()
		}
		i := min(n, len(s.Args)) - 1
		return s.Args[max(i, 0)]
	}
	return math.NaN()
}

// String formats the policy so that ParseSpacing(s.String()) reproduces it.
func (s Spacing) String() string {
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = strconv.FormatFloat(a, 'g', -1, 64)
	}
	return s.Name + ":" + strings.Join(args, ",")
}

var spacingArity = map[string]int{
	SpacingConstant:  1,
	SpacingLinear:    2,
	SpacingGeometric: 2,
	SpacingTable:     -1,
}

// ParseSpacing parses a policy of the form "name:arg,arg". A bare number is
// shorthand for a constant policy.
func ParseSpacing(s string) (Spacing, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Spacing{}, errors.New(errors.ErrCodeInvalidSpacing, "spacing cannot be empty")
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return checkArgs(Constant(v))
	}

	name, rest, ok := strings.Cut(s, ":")
	if !ok {
		return Spacing{}, errors.New(errors.ErrCodeInvalidSpacing, "invalid spacing %q (expected name:args)", s)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	arity, known := spacingArity[name]
	if !known {
		return Spacing{}, errors.New(errors.ErrCodeInvalidSpacing,
			"unknown spacing %q (must be one of: constant, linear, geometric, table)", name)
	}

	var args []float64
	for _, part := range strings.Split(rest, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Spacing{}, errors.Wrap(errors.ErrCodeInvalidSpacing, err, "invalid %s argument %q", name, part)
		}
		args = append(args, v)
	}
	if arity > 0 && len(args) != arity {
		return Spacing{}, errors.New(errors.ErrCodeInvalidSpacing,
			"%s spacing takes %d argument(s), got %d", name, arity, len(args))
	}
	return checkArgs(Spacing{Name: name, Args: args})
}

// MustParseSpacing is like ParseSpacing but panics on error.
func MustParseSpacing(s string) Spacing {
	sp, err := ParseSpacing(s)
	if err != nil {
		panic(fmt.Sprintf("layout: %v", err))
	}
	return sp
}

func checkArgs(s Spacing) (Spacing, error) {
	if len(s.Args) == 0 {
		return Spacing{}, errors.New(errors.ErrCodeInvalidSpacing, "%s spacing needs at least one argument", s.Name)
	}
	for _, a := range s.Args {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return Spacing{}, errors.New(errors.ErrCodeInvalidSpacing, "%s spacing arguments must be finite", s.Name)
		}
	}
	if s.Name == SpacingGeometric && s.Args[1] < 0 {
		return Spacing{}, errors.New(errors.ErrCodeInvalidSpacing, "geometric ratio must be non-negative")
	}
	return s, nil
}
