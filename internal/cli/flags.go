package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbdraw/pkg/pipeline"
)

// geometryFlags are the layout and render flags shared by the drawing
// commands. Unset flags keep the value from the config file.
type geometryFlags struct {
	radius      float64
	levelHeight float64
	spacing     string
	rootX       float64
	rootY       float64
	margin      float64
	scale       float64
	refresh     bool
}

// registerLayout adds the flags that affect node positions.
func (f *geometryFlags) registerLayout(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64VarP(&f.radius, "radius", "r", 0, "node radius (default from config)")
	fs.Float64Var(&f.levelHeight, "level-height", 0, "vertical distance between levels (default from config)")
	fs.StringVarP(&f.spacing, "spacing", "s", "", "leaf spacing policy, e.g. constant:10, linear:4,2, geometric:8,2")
	fs.Float64Var(&f.rootX, "x", 0, "root x coordinate")
	fs.Float64Var(&f.rootY, "y", 0, "root y coordinate")
	fs.BoolVar(&f.refresh, "refresh", false, "bypass cached results")
}

// registerRender adds the layout flags plus the output geometry flags.
func (f *geometryFlags) registerRender(cmd *cobra.Command) {
	f.registerLayout(cmd)
	fs := cmd.Flags()
	fs.Float64Var(&f.margin, "margin", 0, "padding around the drawing (default from config)")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
}

// apply overlays the flags the user set on opts.
func (f *geometryFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("radius") {
		opts.Radius = f.radius
	}
	if fs.Changed("level-height") {
		opts.LevelHeight = pipeline.Float(f.levelHeight)
	}
	if fs.Changed("spacing") {
		opts.Spacing = f.spacing
	}
	if fs.Changed("x") {
		opts.RootX = f.rootX
	}
	if fs.Changed("y") {
		opts.RootY = f.rootY
	}
	if fs.Changed("margin") {
		opts.Margin = f.margin
	}
	if fs.Lookup("scale") != nil {
		opts.Scale = f.scale
	}
	opts.Refresh = f.refresh
}
