// Package pipeline provides the layout and render pipeline shared by the CLI
// and the HTTP server.
//
// The pipeline has two stages:
//
//  1. Layout: place every node of a perfect tree of the requested depth
//  2. Render: draw a red/black payload onto that layout in one or more formats
//
// Both stages are cached. A layout depends only on the geometry options, so
// it is shared between every payload of the same depth. Artifacts are keyed
// by a hash of the payload plus the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{Depth: 3, Formats: []string{"svg", "json"}}
//	artifacts, err := runner.Render(ctx, opts, nodes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rbdraw/pkg/cache"
	"github.com/matzehuels/rbdraw/pkg/config"
	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/render"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
	// FormatGraphviz is SVG drawn by Graphviz from the DOT output.
	FormatGraphviz = "graphviz"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraphviz}

var contentTypes = map[string]string{
	FormatSVG:      "image/svg+xml",
	FormatPNG:      "image/png",
	FormatPDF:      "application/pdf",
	FormatJSON:     "application/json",
	FormatDOT:      "text/vnd.graphviz",
	FormatGraphviz: "image/svg+xml",
}

var extensions = map[string]string{
	FormatGraphviz: "gv.svg",
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension (without the dot) for a format.
func Extension(format string) string {
	if ext, ok := extensions[format]; ok {
		return ext
	}
	return format
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot, graphviz)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Depth       int      `json:"depth,omitempty"`
	Radius      float64  `json:"radius,omitempty"`
	LevelHeight *float64 `json:"level_height,omitempty"` // nil means the default; 0 is a flat tree
	Spacing     string   `json:"spacing,omitempty"`
	RootX       float64  `json:"root_x,omitempty"`
	RootY       float64  `json:"root_y,omitempty"`

	// Render options
	Formats []string     `json:"formats,omitempty"`
	Margin  float64      `json:"margin,omitempty"`
	Scale   float64      `json:"scale,omitempty"`
	Style   render.Style `json:"style"`
	Refresh bool         `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// FromConfig returns options seeded with the file configuration.
func FromConfig(cfg config.Config) Options {
	return Options{
		Radius:      cfg.Layout.Radius,
		LevelHeight: Float(cfg.Layout.LevelHeight),
		Spacing:     cfg.Layout.Spacing,
		RootX:       cfg.Layout.RootX,
		RootY:       cfg.Layout.RootY,
		Margin:      cfg.Layout.Margin,
		Style:       cfg.Style,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Layout    layout.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes      int
	Edges      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Float returns a pointer to v, for setting Options.LevelHeight.
func Float(v float64) *float64 { return &v }

// SetDefaults fills unset options with the built-in defaults. Depth,
// Margin and the root position have meaningful zero values and are left
// alone; a nil LevelHeight is unset, a zero one draws every level on the
// root's line.
func (o *Options) SetDefaults() {
	if o.Radius == 0 {
		o.Radius = config.DefaultRadius
	}
	if o.LevelHeight == nil {
		o.LevelHeight = Float(config.DefaultLevelHeight)
	}
	if o.Spacing == "" {
		o.Spacing = layout.DefaultSpacing
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.Style = o.Style.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and checks the geometry options.
func (o *Options) ValidateForLayout() error {
	o.SetDefaults()
	if err := errors.ValidateDepth(o.Depth, layout.MaxDepth); err != nil {
		return err
	}
	if err := errors.ValidateRadius(o.Radius); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("root x", o.RootX); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("root y", o.RootY); err != nil {
		return err
	}
	if err := errors.ValidateCoordinate("level height", o.levelHeight()); err != nil {
		return err
	}
	_, err := layout.ParseSpacing(o.Spacing)
	return err
}

func (o *Options) levelHeight() float64 {
	if o.LevelHeight == nil {
		return config.DefaultLevelHeight
	}
	return *o.LevelHeight
}

// ValidateForRender sets defaults and checks every option.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Margin < 0 || math.IsNaN(o.Margin) || math.IsInf(o.Margin, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "margin must be a non-negative number, got %v", o.Margin)
	}
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return config.ValidateStyle(o.Style)
}

// Params returns the layout parameters for these options.
func (o *Options) Params() (layout.Params, error) {
	sp, err := layout.ParseSpacing(o.Spacing)
	if err != nil {
		return layout.Params{}, err
	}
	return layout.Params{
		Root:        layout.Point{X: o.RootX, Y: o.RootY},
		Depth:       o.Depth,
		Radius:      o.Radius,
		Spacing:     sp.Gap,
		LevelHeight: o.levelHeight(),
	}, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	spacing := o.Spacing
	if sp, err := layout.ParseSpacing(o.Spacing); err == nil {
		spacing = sp.String()
	}
	return cache.LayoutKeyOpts{
		Depth:       o.Depth,
		Radius:      o.Radius,
		LevelHeight: o.levelHeight(),
		Spacing:     spacing,
		RootX:       o.RootX,
		RootY:       o.RootY,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	style, _ := json.Marshal(o.Style)
	opts := cache.ArtifactKeyOpts{
		Layout: o.LayoutKeyOpts(),
		Format: format,
		Style:  cache.Hash(style),
		Margin: o.Margin,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}
