package api

import (
	"net/http"
	"strconv"

	"github.com/matzehuels/gridsmith/pkg/buildinfo"
	"github.com/matzehuels/gridsmith/pkg/codegen"
	"github.com/matzehuels/gridsmith/pkg/drag"
	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/grid"
	"github.com/matzehuels/gridsmith/pkg/pipeline"
	"github.com/matzehuels/gridsmith/pkg/project"
)

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Info: buildinfo.Get()})
}

type tracksResponse struct {
	grid.Tracks
	Degenerate bool `json:"degenerate"`
}

func (s *Server) handleTracks(w http.ResponseWriter, r *http.Request) {
	var spec grid.Spec
	if err := decode(w, r, &spec); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	t, err := grid.ComputeTracks(spec)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tracksResponse{Tracks: t, Degenerate: t.Degenerate()})
}

type locateRequest struct {
	Spec grid.Spec `json:"spec"`
	X    float64   `json:"x"`
	Y    float64   `json:"y"`
}

type locateResponse struct {
	grid.Position
	// ColLine and RowLine are the 1-based CSS grid lines.
	ColLine int `json:"colLine"`
	RowLine int `json:"rowLine"`
}

func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	t, err := grid.ComputeTracks(req.Spec)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	pos, err := grid.PointerToGridPosition(req.X, req.Y, t, req.Spec.Padding)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, locateResponse{Position: pos, ColLine: pos.Col + 1, RowLine: pos.Row + 1})
}

type snapRequest struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	MaxLines int     `json:"maxLines"`
}

type snapResponse struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s *Server) handleSnap(w http.ResponseWriter, r *http.Request) {
	var req snapRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if req.MaxLines < 1 {
		writeError(w, r, s.logger, errors.New(errors.ErrCodeInvalidInput, "maxLines must be at least 1, got %d", req.MaxLines))
		return
	}
	start, end := grid.SnapSpan(req.Start, req.End, req.MaxLines)
	writeJSON(w, http.StatusOK, snapResponse{Start: start, End: end})
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// gestureRequest replays a pointer path: the gesture begins at Start and
// receives every entry of Path in order.
type gestureRequest struct {
	Spec      grid.Spec `json:"spec"`
	Item      grid.Item `json:"item"`
	Handle    string    `json:"handle"`
	Locked    bool      `json:"locked,omitempty"`
	Threshold *float64  `json:"threshold,omitempty"`
	Start     point     `json:"start"`
	Path      []point   `json:"path"`
}

type gestureResponse struct {
	Item     grid.Item `json:"item"`
	Dragging bool      `json:"dragging"`
	Changed  bool      `json:"changed"`
}

func (s *Server) handleGesture(w http.ResponseWriter, r *http.Request) {
	var req gestureRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	handle, err := drag.ParseHandle(req.Handle)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	t, err := grid.ComputeTracks(req.Spec)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if !req.Item.Valid(t.Columns(), t.Rows()) {
		writeError(w, r, s.logger, errors.New(errors.ErrCodeInvalidItem,
			"item does not fit a %dx%d grid", t.Columns(), t.Rows()))
		return
	}

	opts := []drag.Option{drag.Locked(req.Locked)}
	if req.Threshold != nil {
		opts = append(opts, drag.WithThreshold(*req.Threshold))
	}
	g, err := drag.Begin(req.Item, handle, req.Start.X, req.Start.Y, opts...)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	for _, p := range req.Path {
		if _, _, err := g.Move(p.X, p.Y, t, req.Spec.Padding); err != nil {
			writeError(w, r, s.logger, err)
			return
		}
	}
	dragged := g.End()
	writeJSON(w, http.StatusOK, gestureResponse{
		Item:     g.Current(),
		Dragging: dragged,
		Changed:  g.Current() != g.Origin(),
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var p project.Project
	if err := decode(w, r, &p); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.generate(w, r, p)
}

// generate runs the pipeline for one format taken from the query string and
// writes the artifact with its content type.
func (s *Server) generate(w http.ResponseWriter, r *http.Request, p project.Project) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(codegen.FormatFull)
	}
	if err := codegen.ValidateFormat(format); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	width, err := queryFloat(r, "width")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	height, err := queryFloat(r, "height")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	f := codegen.Format(format)
	opts := pipeline.Options{
		Project:  p,
		Formats:  []codegen.Format{f},
		Viewport: project.Viewport{Width: width, Height: height},
		Refresh:  r.URL.Query().Get("refresh") == "true",
		Logger:   s.logger,
	}
	artifacts, hash, hit, err := s.runner.GenerateWithCacheInfo(r.Context(), opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	data := artifacts[f]
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("ETag", strconv.Quote(hash[:16]+"-"+format))
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

