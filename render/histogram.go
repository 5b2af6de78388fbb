package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/floeboard/floe/engine"
)

// ============================================================================
// PNG HISTOGRAM — Server-rendered counterpart to the client-side histogram
// ============================================================================
// The dashboard shows the same distribution twice, drawn by two different
// libraries: the browser renders the ChartConfig JSON, and this package
// renders a PNG with go-chart. Bin counts are independent between the two.
// ============================================================================

const (
	defaultWidth  = 810
	defaultHeight = 360
)

var barFill = drawing.Color{R: 0x4F, G: 0x46, B: 0xE5, A: 255}

// Options control the rendered image.
type Options struct {
	Width  int
	Height int
	Title  string
}

// Histogram renders a ChartConfig of type "histogram" to PNG bytes.
// Per-bin counts are summed across series (the PNG variant does not stack
// by species). An empty config renders a blank placeholder, not an error.
func Histogram(cfg *engine.ChartConfig, opts Options) ([]byte, error) {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}

	if cfg == nil || len(cfg.BinEdges) < 2 || len(cfg.Series) == 0 {
		return blankPNG(opts.Width, opts.Height)
	}

	binCount := len(cfg.BinEdges) - 1
	totals := make([]int, binCount)
	nonZero := false
	for _, s := range cfg.Series {
		for i, c := range s.Counts {
			if i < binCount {
				totals[i] += c
				if c > 0 {
					nonZero = true
				}
			}
		}
	}
	if !nonZero {
		return blankPNG(opts.Width, opts.Height)
	}

	bars := make([]chart.Value, 0, binCount)
	for i, total := range totals {
		bars = append(bars, chart.Value{
			Value: float64(total),
			Label: binLabel(cfg.BinEdges[i], cfg.BinEdges[i+1]),
			Style: chart.Style{
				FillColor:   barFill,
				StrokeColor: drawing.ColorBlack,
				StrokeWidth: 1,
			},
		})
	}

	title := opts.Title
	if title == "" {
		title = cfg.Title
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth(opts.Width, binCount),
		BarSpacing: 4,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 24},
		},
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Name: "Count",
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render histogram PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func binLabel(lo, hi float64) string {
	return fmt.Sprintf("%.0f-%.0f", lo, hi)
}

func barWidth(width, bins int) int {
	w := (width - 80) / (bins + 1)
	if w < 4 {
		w = 4
	}
	if w > 60 {
		w = 60
	}
	return w
}

// blankPNG produces a white placeholder image for empty filter results.
func blankPNG(w, h int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, white)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode blank PNG: %w", err)
	}
	return buf.Bytes(), nil
}
