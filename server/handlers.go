package server

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/floeboard/floe/dataset"
	"github.com/floeboard/floe/engine"
	"github.com/floeboard/floe/render"
)

// ============================================================================
// HTTP HANDLERS — schema, view, and PNG plot endpoints
// ============================================================================

// schemaResponse describes the dataset and control defaults for the UI.
type schemaResponse struct {
	Fields     []dataset.Field `json:"fields"`
	Attributes []string        `json:"attributes"`
	Species    []string        `json:"species"`
	Islands    []string        `json:"islands"`
	MassBounds engine.Range    `json:"massBounds"`
	Defaults   controlState    `json:"defaults"`
	Total      int             `json:"total"`
}

// controlState is the wire shape of the sidebar controls. It arrives as
// query-string parameters on /api/view and as JSON over the WebSocket.
type controlState struct {
	Attribute string   `json:"attribute"`
	BinCount  int      `json:"binCount"`
	PNGBins   int      `json:"pngBins"`
	Species   []string `json:"species"`
	Islands   []string `json:"islands"`
	MassMin   float64  `json:"massMin"`
	MassMax   float64  `json:"massMax"`
	MassUnit  string   `json:"massUnit,omitempty"`
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, schemaResponse{
		Fields:     dataset.Fields(),
		Attributes: dataset.Attributes(),
		Species:    s.ds.Species,
		Islands:    s.ds.Islands,
		MassBounds: s.ds.MassBounds,
		Defaults:   s.defaultControls(),
		Total:      s.ds.Len(),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := s.requestFromQuery(r.URL.Query())
	result, err := engine.Execute(req, s.ds.View(), s.engineOpts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("🔎 Floe: /api/view matched %d of %d records", result.MatchCount, result.TotalCount)
	writeJSON(w, result)
}

func (s *Server) handleHistogramPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req := s.requestFromQuery(r.URL.Query())
	// The PNG endpoint uses its own bin-count control.
	req.BinCount = req.PNGBins
	if req.BinCount < 1 {
		req.BinCount = s.defaults.PNGBins
	}

	result, err := engine.Execute(req, s.ds.View(), s.engineOpts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img, err := render.Histogram(result.Histogram, render.Options{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(img)
}

// ============================================================================
// CRITERIA PARSING
// ============================================================================

// requestFromQuery maps query parameters to a ViewRequest. A species or
// islands parameter that is present but empty means "nothing checked" and
// matches no record; an absent parameter leaves the dimension unrestricted.
func (s *Server) requestFromQuery(q url.Values) engine.ViewRequest {
	state := s.defaultControls()

	if v := q.Get("attribute"); v != "" {
		state.Attribute = v
	}
	if n, err := strconv.Atoi(q.Get("bins")); err == nil {
		state.BinCount = n
	}
	if n, err := strconv.Atoi(q.Get("png_bins")); err == nil {
		state.PNGBins = n
	}
	if q.Has("species") {
		state.Species = splitList(q.Get("species"))
	}
	if q.Has("islands") {
		state.Islands = splitList(q.Get("islands"))
	}
	if f, err := strconv.ParseFloat(q.Get("mass_min"), 64); err == nil {
		state.MassMin = f
	}
	if f, err := strconv.ParseFloat(q.Get("mass_max"), 64); err == nil {
		state.MassMax = f
	}
	if v := q.Get("mass_unit"); v != "" {
		state.MassUnit = v
	}

	return state.toRequest()
}

// toRequest converts control state to the engine contract.
func (c controlState) toRequest() engine.ViewRequest {
	return engine.ViewRequest{
		Criteria: engine.Criteria{
			Dimensions: map[string][]string{
				"species": c.Species,
				"island":  c.Islands,
			},
			Ranges: map[string]engine.Range{
				"body_mass_g": {Min: c.MassMin, Max: c.MassMax},
			},
		},
		Attribute: c.Attribute,
		BinCount:  c.BinCount,
		PNGBins:   c.PNGBins,
		MassUnit:  c.MassUnit,
	}
}

func (s *Server) defaultControls() controlState {
	return controlState{
		Attribute: s.defaults.Attribute,
		BinCount:  s.defaults.BinCount,
		PNGBins:   s.defaults.PNGBins,
		Species:   append([]string(nil), s.defaults.Species...),
		Islands:   append([]string(nil), s.defaults.Islands...),
		MassMin:   s.defaults.MassMin,
		MassMax:   s.defaults.MassMax,
	}
}

// splitList parses "Adelie,Gentoo" into its parts; an empty string yields
// an empty (match-nothing) list, not a nil one.
func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("⚠️ Floe: failed to encode response: %v", err)
	}
}
