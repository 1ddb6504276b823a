// Package pkg provides the core libraries for rbdraw, a layout engine and
// renderer for red-black and AA trees.
//
// # Overview
//
// rbdraw places every slot of a perfect binary tree so that sibling subtrees
// never overlap, then draws a colored payload on top of that layout. The pkg
// directory is organized into these areas:
//
//  1. [heap] - Heap index arithmetic (root 1, children 2k and 2k+1)
//  2. [layout] - Leaf spacing policies and coordinate computation
//  3. [render] - Payload validation and drawing onto abstract surfaces
//  4. [render/sink] - SVG, PNG, PDF, JSON, DOT and terminal outputs
//  5. [aatree] - An AA tree that exports its shape as a payload
//  6. [pipeline] - Orchestration (layout → render) with caching
//  7. [cache], [config], [io], [observability], [server] - Infrastructure
//
// # Architecture
//
// The typical data flow:
//
//	Payload document (heap index → color, label)
//	         ↓
//	    [io] package (decode and validate)
//	         ↓
//	    [layout] package (coordinates for the perfect tree)
//	         ↓
//	    [render] package (edges first, then nodes)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Lay out a depth-3 tree and draw it as SVG:
//
//	import (
//	    "github.com/matzehuels/rbdraw/pkg/layout"
//	    "github.com/matzehuels/rbdraw/pkg/render"
//	    "github.com/matzehuels/rbdraw/pkg/render/sink"
//	)
//
//	l, err := layout.Compute(layout.Params{
//	    Depth:       3,
//	    Radius:      20,
//	    Spacing:     layout.MustParseSpacing("geometric:8,2").Gap,
//	    LevelHeight: 60,
//	})
//	nodes := render.Nodes{
//	    1: {Color: render.Black, Text: "8"},
//	    2: {Color: render.Red, Text: "4"},
//	}
//	svg := sink.RenderSVG(l, nodes)
//
// Or run the cached pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	artifacts, err := runner.Render(ctx, pipeline.Options{Formats: []string{"svg"}}, nodes)
package pkg
