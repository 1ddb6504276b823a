package server

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/rbdraw/pkg/errors"
	rbio "github.com/matzehuels/rbdraw/pkg/io"
	"github.com/matzehuels/rbdraw/pkg/pipeline"
	"github.com/matzehuels/rbdraw/pkg/render/sink"
)

type errorBody struct {
	Code      string `json:"code"`
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleLayout returns the coordinates of every slot of the requested tree.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r.URL.Query())
	if err == nil {
		err = s.checkDepth(opts.Depth)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data, err := sink.RenderJSON(l, nil)
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}
	writeArtifact(w, pipeline.FormatJSON, data, hit)
}

// handleRender draws the payload document in the request body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, err)
		return
	}

	opts, err := s.options(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	doc, err := rbio.ReadPayload(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !q.Has("depth") {
		opts.Depth = doc.Depth
	}
	if err := s.checkDepth(opts.Depth); err != nil {
		writeError(w, r, err)
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), opts, doc.Nodes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeArtifact(w, format, artifacts[format], hit)
}

// options overlays the query parameters on the server defaults.
func (s *Server) options(q url.Values) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil

	var err error
	intParam(q, "depth", &opts.Depth, &err)
	floatParam(q, "radius", &opts.Radius, &err)
	if q.Has("level_height") {
		var v float64
		if floatParam(q, "level_height", &v, &err); err == nil {
			opts.LevelHeight = pipeline.Float(v)
		}
	}
	floatParam(q, "x", &opts.RootX, &err)
	floatParam(q, "y", &opts.RootY, &err)
	floatParam(q, "margin", &opts.Margin, &err)
	floatParam(q, "scale", &opts.Scale, &err)
	if q.Has("spacing") {
		opts.Spacing = q.Get("spacing")
	}
	opts.Refresh = q.Get("refresh") == "true"
	return opts, err
}

func intParam(q url.Values, name string, dst *int, errp *error) {
	if *errp != nil || !q.Has(name) {
		return
	}
	v, err := strconv.Atoi(q.Get(name))
	if err != nil {
		*errp = errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s must be an integer", name)
		return
	}
	*dst = v
}

func floatParam(q url.Values, name string, dst *float64, errp *error) {
	if *errp != nil || !q.Has(name) {
		return
	}
	v, err := strconv.ParseFloat(q.Get(name), 64)
	if err != nil {
		*errp = errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s must be a number", name)
		return
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		*errp = errors.New(errors.ErrCodeInvalidInput, "query parameter %s must be finite, got %v", name, v)
		return
	}
	*dst = v
}

// checkDepth applies the server's depth cap, which is tighter than
// layout.MaxDepth because every request is untrusted. Depths below 1 are
// left to the pipeline's own validation.
func (s *Server) checkDepth(d int) error {
	if d > s.maxDepth {
		return errors.New(errors.ErrCodeInvalidDepth, "depth %d exceeds the server limit of %d", d, s.maxDepth)
	}
	return nil
}

func writeArtifact(w http.ResponseWriter, format string, data []byte, hit bool) {
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}

// StatusCode maps an error to the HTTP status reported for it.
func StatusCode(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.IsValidation(err):
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status == http.StatusRequestEntityTooLarge {
		code = "PAYLOAD_TOO_LARGE"
		msg = "request body exceeds " + strconv.Itoa(MaxBodyBytes) + " bytes"
	}
	writeJSON(w, status, errorBody{Code: code, Error: msg, RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
