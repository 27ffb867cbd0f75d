package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	"github.com/matzehuels/tilegrid/pkg/cache"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/layout"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/snapshot"
)

// maxBodyBytes caps request bodies. Layouts are small; anything beyond
// this is abuse or a client bug.
const maxBodyBytes = 1 << 20

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Analyze / Render
// =============================================================================

type analyzeRequest struct {
	Layout layout.Layout `json:"layout"`
}

type analyzeResponse struct {
	LayoutHash string        `json:"layout_hash"`
	Report     layout.Report `json:"report"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Layout.Validate(); err != nil {
		writeError(w, err)
		return
	}

	rep, err := s.runner.Analyze(r.Context(), req.Layout, pipeline.Options{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{
		LayoutHash: layoutHash(req.Layout),
		Report:     rep,
	})
}

type renderResponse struct {
	LayoutHash string            `json:"layout_hash"`
	Artifacts  map[string][]byte `json:"artifacts"` // base64 in JSON
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if !decodeBody(w, r, &opts) {
		return
	}
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, renderResponse{
		LayoutHash: result.LayoutHash,
		Artifacts:  result.Artifacts,
	})
}

// =============================================================================
// Snapshots
// =============================================================================

type snapshotCreateRequest struct {
	Name   string        `json:"name,omitempty"`
	Layout layout.Layout `json:"layout"`
}

func (s *Server) handleSnapshotCreate(w http.ResponseWriter, r *http.Request) {
	var req snapshotCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Layout.Validate(); err != nil {
		writeError(w, err)
		return
	}

	snap := snapshot.New(req.Name, req.Layout)
	if err := s.store.Put(r.Context(), snap); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "store snapshot"))
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleSnapshotList(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "list snapshots"))
		return
	}
	if snaps == nil {
		snaps = []*snapshot.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleSnapshotGet(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSnapshotDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "delete snapshot"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshotRender(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.loadSnapshot(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts := pipeline.Options{
		Layout:  &snap.Layout,
		Kind:    r.URL.Query().Get("kind"),
		Theme:   r.URL.Query().Get("theme"),
		Labels:  r.URL.Query().Get("labels") == "true",
		Formats: []string{format},
		Logger:  s.logger,
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) loadSnapshot(w http.ResponseWriter, r *http.Request) (*snapshot.Snapshot, bool) {
	id := chi.URLParam(r, "id")
	snap, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "load snapshot"))
		return nil, false
	}
	if snap == nil {
		writeError(w, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %q not found", id))
		return nil, false
	}
	return snap, true
}

// =============================================================================
// Helpers
// =============================================================================

func layoutHash(l layout.Layout) string {
	data, err := layout.Marshal(l)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatPDF:
		return "application/pdf"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// decodeBody decodes a JSON request body into v. On failure it writes a
// 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// writeError maps structured error codes onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	status := http.StatusInternalServerError
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		status = http.StatusBadRequest
	case strings.HasSuffix(string(code), "NOT_FOUND"):
		status = http.StatusNotFound
	case code == errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	writeJSON(w, status, map[string]errorBody{
		"error": {Code: code, Message: errors.UserMessage(err)},
	})
}
