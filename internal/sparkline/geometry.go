// Package sparkline maps numeric series to polylines and rasterizes them for
// the terminal.
package sparkline

import (
	"fmt"
	"strings"
)

// Point is a polyline vertex in box coordinates; y grows downward.
type Point struct {
	X, Y float64
}

// ComputePolyline scales series into a width x height box inset by half the
// stroke width on every side. Higher values map to smaller y. It returns
// false when the series has fewer than two points.
func ComputePolyline(series []float64, width, height, strokeWidth float64) ([]Point, bool) {
	n := len(series)
	if n < 2 {
		return nil, false
	}

	lo, hi := series[0], series[0]
	for _, v := range series[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	pts := make([]Point, n)
	for i, v := range series {
		pts[i] = Point{
			X: float64(i)/float64(n-1)*(width-strokeWidth) + strokeWidth/2,
			Y: height - (v-lo)/span*(height-strokeWidth) - strokeWidth/2,
		}
	}
	return pts, true
}

// SVGPath renders points as an SVG path ("M x,y L x,y ...").
func SVGPath(pts []Point) string {
	var b strings.Builder
	for i, p := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s %g,%g", cmd, p.X, p.Y)
	}
	return b.String()
}
