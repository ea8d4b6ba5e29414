package market

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Timestamp decodes either epoch milliseconds or an ISO-8601 string. Values
// in any other shape decode as the zero time so the point is still plotted.
type Timestamp struct {
	time.Time
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	t.Time = parseTimestamp(bytes.TrimSpace(b))
	return nil
}

func parseTimestamp(b []byte) time.Time {
	if len(b) == 0 {
		return time.Time{}
	}
	if b[0] == '"' {
		var s string
		if json.Unmarshal(b, &s) != nil {
			return time.Time{}
		}
		s = strings.TrimSpace(s)
		for _, layout := range isoLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed
			}
		}
		return time.Time{}
	}
	var ms json.Number
	if json.Unmarshal(b, &ms) != nil {
		return time.Time{}
	}
	n, err := ms.Float64()
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return time.Time{}
	}
	return time.UnixMilli(int64(n))
}

// SeriesPoint is one close of the intraday series.
type SeriesPoint struct {
	Timestamp Timestamp `json:"timestamp"`
	Close     float64   `json:"close"`
}

// Label is the local hour:minute label used on the chart axis, or "" when
// the timestamp did not decode.
func (p SeriesPoint) Label() string {
	if p.Timestamp.IsZero() {
		return ""
	}
	return p.Timestamp.Local().Format("03:04 PM")
}

// Series is the time series of one ticker for its last trading day.
type Series struct {
	Ticker string        `json:"ticker"`
	Date   string        `json:"date"`
	Points []SeriesPoint `json:"points"`
}

// Closes returns the close prices in order.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}
