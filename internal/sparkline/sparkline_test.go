package sparkline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePolylineTooShort(t *testing.T) {
	t.Parallel()
	for _, s := range [][]float64{nil, {}, {3}} {
		pts, ok := ComputePolyline(s, 120, 28, 2)
		require.False(t, ok)
		require.Nil(t, pts)
	}
}

func TestComputePolylineFlatSeries(t *testing.T) {
	t.Parallel()
	pts, ok := ComputePolyline([]float64{1, 1, 1}, 120, 28, 2)
	require.True(t, ok)
	require.Len(t, pts, 3)
	for i := 1; i < len(pts); i++ {
		assert.Equal(t, pts[0].Y, pts[i].Y)
		assert.Greater(t, pts[i].X, pts[i-1].X)
	}
	// Range falls back to 1, so every value sits on the baseline.
	assert.Equal(t, 27.0, pts[0].Y)
}

func TestComputePolylineBounds(t *testing.T) {
	t.Parallel()
	pts, ok := ComputePolyline([]float64{10, 20, 15}, 120, 28, 2)
	require.True(t, ok)

	assert.Equal(t, Point{X: 1, Y: 27}, pts[0])
	assert.Equal(t, Point{X: 60, Y: 1}, pts[1])
	assert.Equal(t, Point{X: 119, Y: 14}, pts[2])
}

func TestSVGPath(t *testing.T) {
	t.Parallel()
	got := SVGPath([]Point{{1, 27}, {60, 1.5}})
	assert.Equal(t, "M 1,27 L 60,1.5", got)
}

func TestSVG(t *testing.T) {
	t.Parallel()
	doc, ok := SVG([]float64{10, 20, 15}, true)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(doc, `<svg xmlns="http://www.w3.org/2000/svg" width="120" height="28" viewBox="0 0 120 28">`))
	assert.Contains(t, doc, `d="M 1,27 L 60,1 L 119,14"`)
	assert.Contains(t, doc, `stroke="#059669"`)

	doc, ok = SVG([]float64{3, 1}, false)
	require.True(t, ok)
	assert.Contains(t, doc, `stroke="#dc2626"`)

	_, ok = SVG([]float64{1}, true)
	require.False(t, ok)
}

func TestCanvasLine(t *testing.T) {
	t.Parallel()
	c := NewCanvas(2, 1)
	c.Line(0, 3, 3, 0)
	lines := c.Lines()
	require.Len(t, lines, 1)
	// (0,3)+(1,2) in the first cell, (2,1)+(3,0) in the second.
	assert.Equal(t, string(rune(brailleBase+0x40+0x20))+string(rune(brailleBase+0x02+0x08)), lines[0])
}

func TestRender(t *testing.T) {
	t.Parallel()
	out, ok := Render([]float64{1, 2, 3, 2, 1}, 6, 2)
	require.True(t, ok)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.Equal(t, 6, len([]rune(l)))
	}

	_, ok = Render([]float64{1}, 6, 2)
	require.False(t, ok)
}
