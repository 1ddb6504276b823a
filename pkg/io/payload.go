package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/render"
)

// Document is a payload file: the tree depth and the occupied slots.
type Document struct {
	Depth int          `json:"depth,omitempty"`
	Nodes render.Nodes `json:"nodes"`
}

// Normalize fills in a missing depth and validates the document. Colors are
// normalized in place.
func (d *Document) Normalize() error {
	if d.Nodes == nil {
		d.Nodes = render.Nodes{}
	}
	if d.Depth == 0 {
		d.Depth = max(d.Nodes.Depth(), 1)
	}
	if err := errors.ValidateDepth(d.Depth, layout.MaxDepth); err != nil {
		return err
	}
	return d.Nodes.Validate(d.Depth)
}

// ReadPayload decodes a payload document from r and validates it.
//
// The input must be a JSON object with a "nodes" object keyed by heap index:
//
//	{
//	  "depth": 3,
//	  "nodes": {
//	    "1": {"color": "black", "text": "5"},
//	    "2": {"color": "red", "text": "3"}
//	  }
//	}
//
// "depth" may be omitted, in which case the smallest depth that holds every
// index is used.
func ReadPayload(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidPayload, err, "decode payload")
	}
	if err := doc.Normalize(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// ReadPayloadFile reads a payload document from a file at path.
// This is a convenience wrapper around [ReadPayload] for file-based input.
func ReadPayloadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "payload %s", path)
		}
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPayload(f)
}

// WritePayload encodes doc as indented JSON and writes it to w.
// The output can be re-read with [ReadPayload].
func WritePayload(w io.Writer, doc Document) error {
	if doc.Nodes == nil {
		doc.Nodes = render.Nodes{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WritePayloadFile writes doc to a JSON file at path.
func WritePayloadFile(path string, doc Document) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WritePayload(f, doc)
}
