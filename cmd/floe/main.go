package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/floeboard/floe/config"
	"github.com/floeboard/floe/dataset"
	"github.com/floeboard/floe/engine"
	"github.com/floeboard/floe/server"
)

// ============================================================================
// FLOE CLI — Penguin dashboard server + offline filtering
// ============================================================================

const version = "0.3.0"

func main() {
	// ── Flags ─────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	dataFile := flag.String("data", "", "CSV dataset override (default: bundled Palmer penguins)")
	filterMode := flag.Bool("filter", false, "Run one filter offline and print the table instead of serving")
	speciesFlag := flag.String("species", "", `Species filter for --filter, e.g. "Adelie,Gentoo" ("" = all, "none" = none)`)
	islandsFlag := flag.String("islands", "", `Island filter for --filter, e.g. "Biscoe,Dream"`)
	massFlag := flag.String("mass", "", `Body-mass range for --filter, e.g. "2500:5500" (grams, inclusive)`)
	format := flag.String("format", "json", "Output format for --filter: json, pretty, csv, text")
	outFile := flag.String("out", "", "Write --filter output to file instead of stdout")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Floe — interactive penguin-data dashboard

Usage:
  floe                                     # serve the dashboard
  floe --addr :9000 --config floe.yaml
  floe --filter --species Adelie,Gentoo --islands Biscoe,Dream --mass 2500:5500 --format csv

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  FLOE_ADDR    Listen address override

Formats (--filter mode):
  json      Full JSON view (default)
  pretty    Pretty-printed JSON
  csv       Filtered rows as CSV (ready for Sheets/Excel)
  text      Summary line only
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("floe %s\n", version)
		os.Exit(0)
	}

	// ── Config ────────────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	// ── Dataset ───────────────────────────────────────────────────────────
	var ds *dataset.Dataset
	if cfg.DataFile != "" {
		ds, err = dataset.LoadFile(cfg.DataFile)
	} else {
		ds, err = dataset.Load()
	}
	if err != nil {
		fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("📊 Floe: loaded %d penguins (%d species, %d islands)",
		ds.Len(), len(ds.Species), len(ds.Islands))

	// ── Offline filter mode ───────────────────────────────────────────────
	if *filterMode {
		runFilter(ds, cfg, *speciesFlag, *islandsFlag, *massFlag, *format, *outFile)
		return
	}

	// ── Serve ─────────────────────────────────────────────────────────────
	srv := server.New(cfg, ds)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Printf("🛑 Floe: shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	if err := srv.Start(); err != nil {
		fatalf("Server failed: %v", err)
	}
}

// ============================================================================
// OFFLINE FILTER MODE
// ============================================================================

func runFilter(ds *dataset.Dataset, cfg config.Config, speciesFlag, islandsFlag, massFlag, format, outFile string) {
	req := engine.ViewRequest{
		Criteria: engine.Criteria{
			Dimensions: map[string][]string{},
			Ranges:     map[string]engine.Range{},
		},
		Attribute: cfg.Defaults.Attribute,
		BinCount:  cfg.Defaults.BinCount,
	}
	if speciesFlag != "" {
		req.Criteria.Dimensions["species"] = parseList(speciesFlag)
	}
	if islandsFlag != "" {
		req.Criteria.Dimensions["island"] = parseList(islandsFlag)
	}
	if massFlag != "" {
		r, err := parseRange(massFlag)
		if err != nil {
			fatalf("Invalid --mass: %v", err)
		}
		req.Criteria.Ranges["body_mass_g"] = r
	}

	result, err := engine.Execute(req, ds.View(),
		engine.WithDefaultAttribute(cfg.Defaults.Attribute),
	)
	if err != nil {
		fatalf("Filter failed: %v", err)
	}
	log.Printf("🔎 Floe: matched %d of %d records", result.MatchCount, result.TotalCount)

	writer := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	switch format {
	case "csv":
		writeCSV(writer, result.Table)
		if outFile != "" {
			log.Printf("📄 CSV written to %s", outFile)
		}
	case "text":
		fmt.Fprintln(writer, result.Summary)
	default:
		writeJSON(writer, result, format)
	}
}

// parseList splits "Adelie,Gentoo" into parts; the literal "none" yields an
// empty (match-nothing) list.
func parseList(raw string) []string {
	if strings.EqualFold(raw, "none") {
		return []string{}
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseRange parses "2500:5500" into an inclusive Range.
func parseRange(raw string) (engine.Range, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return engine.Range{}, fmt.Errorf("expected min:max, got %q", raw)
	}
	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return engine.Range{}, fmt.Errorf("bad min %q: %w", parts[0], err)
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return engine.Range{}, fmt.Errorf("bad max %q: %w", parts[1], err)
	}
	if min > max {
		return engine.Range{}, fmt.Errorf("min %v exceeds max %v", min, max)
	}
	return engine.Range{Min: min, Max: max}, nil
}

// ============================================================================
// OUTPUT WRITERS
// ============================================================================

func writeCSV(w *os.File, table *engine.TableData) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if table == nil {
		cw.Write([]string{"Result", "No data"})
		return
	}

	headers := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		headers = append(headers, c.Label)
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}
}

func writeJSON(w *os.File, v interface{}, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
