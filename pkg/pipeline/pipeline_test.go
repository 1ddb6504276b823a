package pipeline

import (
	"math"
	"testing"

	"github.com/matzehuels/rbdraw/pkg/config"
	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/render"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"graphviz", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestContentTypeAndExtension(t *testing.T) {
	tests := []struct {
		format, contentType, ext string
	}{
		{FormatSVG, "image/svg+xml", "svg"},
		{FormatPNG, "image/png", "png"},
		{FormatPDF, "application/pdf", "pdf"},
		{FormatJSON, "application/json", "json"},
		{FormatDOT, "text/vnd.graphviz", "dot"},
		{FormatGraphviz, "image/svg+xml", "gv.svg"},
		{"bogus", "application/octet-stream", "bogus"},
	}
	for _, tt := range tests {
		if got := ContentType(tt.format); got != tt.contentType {
			t.Errorf("ContentType(%q) = %q, want %q", tt.format, got, tt.contentType)
		}
		if got := Extension(tt.format); got != tt.ext {
			t.Errorf("Extension(%q) = %q, want %q", tt.format, got, tt.ext)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Depth: 3}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	if opts.Radius != config.DefaultRadius {
		t.Errorf("Radius should be %v, got %v", config.DefaultRadius, opts.Radius)
	}
	if opts.LevelHeight == nil || *opts.LevelHeight != config.DefaultLevelHeight {
		t.Errorf("LevelHeight should be %v, got %v", config.DefaultLevelHeight, opts.LevelHeight)
	}
	if opts.Spacing != layout.DefaultSpacing {
		t.Errorf("Spacing should be %q, got %q", layout.DefaultSpacing, opts.Spacing)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should default to svg, got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if opts.Style != render.DefaultStyle() {
		t.Errorf("Style should default, got %+v", opts.Style)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if opts.Margin != 0 || opts.RootX != 0 {
		t.Error("zero margin and root must be kept")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing depth", Options{}, errors.ErrCodeInvalidDepth},
		{"depth too large", Options{Depth: layout.MaxDepth + 1}, errors.ErrCodeInvalidDepth},
		{"negative radius", Options{Depth: 2, Radius: -1}, errors.ErrCodeInvalidRadius},
		{"bad spacing", Options{Depth: 2, Spacing: "fib:1"}, errors.ErrCodeInvalidSpacing},
		{"bad format", Options{Depth: 2, Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative margin", Options{Depth: 2, Margin: -1}, errors.ErrCodeInvalidInput},
		{"bad style", Options{Depth: 2, Style: render.Style{RedFill: "<red>"}}, errors.ErrCodeInvalidStyle},
		{"nan root x", Options{Depth: 2, RootX: math.NaN()}, errors.ErrCodeInvalidCoord},
		{"inf root y", Options{Depth: 2, RootY: math.Inf(-1)}, errors.ErrCodeInvalidCoord},
		{"inf level height", Options{Depth: 2, LevelHeight: Float(math.Inf(1))}, errors.ErrCodeInvalidCoord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForRender() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Layout.Radius = 9
	cfg.Layout.RootY = -4
	cfg.Style.RedFill = "#ff0000"

	opts := FromConfig(cfg)
	if opts.Radius != 9 || opts.RootY != -4 || opts.Margin != cfg.Layout.Margin {
		t.Errorf("FromConfig() geometry = %+v", opts)
	}
	if opts.Style.RedFill != "#ff0000" {
		t.Errorf("FromConfig() style = %+v", opts.Style)
	}
	if opts.LevelHeight == nil || *opts.LevelHeight != cfg.Layout.LevelHeight {
		t.Errorf("FromConfig() level height = %v", opts.LevelHeight)
	}
}

func TestFlatLevelHeight(t *testing.T) {
	opts := Options{Depth: 3, LevelHeight: Float(0)}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	if *opts.LevelHeight != 0 {
		t.Fatalf("explicit zero level height replaced by %v", *opts.LevelHeight)
	}
	p, err := opts.Params()
	if err != nil {
		t.Fatal(err)
	}
	if p.LevelHeight != 0 {
		t.Errorf("Params().LevelHeight = %v, want 0", p.LevelHeight)
	}
	l, err := layout.Compute(p)
	if err != nil {
		t.Fatal(err)
	}
	for k, pt := range l.All() {
		if pt.Y != 0 {
			t.Errorf("node %d at y=%v, want every node on y=0", k, pt.Y)
		}
	}

	unset := Options{Depth: 3}
	if unset.LayoutKeyOpts() == opts.LayoutKeyOpts() {
		t.Error("flat and default level heights share a cache key")
	}
}

func TestLayoutKeyOptsNormalizesSpacing(t *testing.T) {
	a := Options{Depth: 3, Spacing: "geometric:8,2"}
	b := Options{Depth: 3, Spacing: "geometric:8.0,2.0"}
	if a.LayoutKeyOpts() != b.LayoutKeyOpts() {
		t.Errorf("equivalent spacings produced different keys: %+v vs %+v", a.LayoutKeyOpts(), b.LayoutKeyOpts())
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Depth: 2, Scale: 3}
	opts.SetDefaults()

	if got := opts.ArtifactKeyOpts(FormatSVG); got.Scale != 0 {
		t.Errorf("svg key should ignore scale, got %v", got.Scale)
	}
	if got := opts.ArtifactKeyOpts(FormatPNG); got.Scale != 3 {
		t.Errorf("png key scale = %v, want 3", got.Scale)
	}

	restyled := opts
	restyled.Style.EdgeWidth = 5
	if opts.ArtifactKeyOpts(FormatSVG).Style == restyled.ArtifactKeyOpts(FormatSVG).Style {
		t.Error("style changes should change the style hash")
	}
}
