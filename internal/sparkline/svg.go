package sparkline

import "fmt"

// Size of an exported sparkline, in SVG user units.
const (
	SVGWidth       = 120
	SVGHeight      = 28
	SVGStrokeWidth = 2
)

const (
	upStroke   = "#059669"
	downStroke = "#dc2626"
)

// SVG renders series as a standalone SVG document, green when up and red
// otherwise. It returns false when the series is too short to draw.
func SVG(series []float64, up bool) (string, bool) {
	pts, ok := ComputePolyline(series, SVGWidth, SVGHeight, SVGStrokeWidth)
	if !ok {
		return "", false
	}
	stroke := downStroke
	if up {
		stroke = upStroke
	}
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<path d="%s" fill="none" stroke="%s" stroke-width="%d" stroke-linecap="round"/>`+
			"</svg>\n",
		SVGWidth, SVGHeight, SVGWidth, SVGHeight, SVGPath(pts), stroke, SVGStrokeWidth,
	), true
}
