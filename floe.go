// Package floe provides an interactive exploration dashboard for the
// Palmer penguins dataset.
//
// Usage:
//
//	import "github.com/floeboard/floe/engine"
//
//	filtered := engine.Apply(view, engine.Criteria{
//	    Dimensions: map[string][]string{
//	        "species": {"Adelie", "Gentoo"},
//	        "island":  {"Biscoe", "Dream"},
//	    },
//	    Ranges: map[string]engine.Range{
//	        "body_mass_g": {Min: 2500, Max: 5500},
//	    },
//	})
//
// The engine filters and aggregates the dataset into render-ready output
// (table data, chart configs); the server package exposes it over HTTP and
// WebSocket to the browser UI. All computation is local — the engine never
// calls any external service.
package floe
