// Package io provides JSON import and export for tree payloads.
//
// # Overview
//
// A payload says which slots of a perfect binary tree hold a node, and how
// each node is drawn. Slots use heap numbering: the root is 1 and the
// children of k are 2k and 2k+1. Slots without an entry are empty; edges
// touching them are not drawn.
//
// # JSON Format
//
//	{
//	  "depth": 3,
//	  "nodes": {
//	    "1": {"color": "black", "text": "5"},
//	    "2": {"color": "red", "text": "3"},
//	    "3": {"color": "red", "text": "8"}
//	  }
//	}
//
// Keys of "nodes" are heap indices. "color" is "red" or "black" ("r" and
// "b" are accepted and normalized). "text" is the label, at most
// [errors.MaxLabelLength] characters without control characters. "depth" is
// optional and defaults to the depth of the deepest index.
//
// # Import
//
// Use [ReadPayloadFile] to read a payload from a file path, or [ReadPayload]
// to read from any io.Reader. Both validate indices, colors and labels and
// report problems as *errors.Error with an INVALID_* code.
//
// # Export
//
// Use [WritePayloadFile] or [WritePayload]. The AA tree command writes its
// derived payload this way so it can be re-rendered with different layout
// settings.
//
// For computed coordinates rather than payloads, use the JSON sink in
// [sink.RenderJSON].
//
// [sink.RenderJSON]: github.com/matzehuels/rbdraw/pkg/render/sink.RenderJSON
package io
