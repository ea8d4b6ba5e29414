package market

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Raw payload field names.
const (
	fieldTicker    = "ticker"
	fieldName      = "name"
	fieldPrice     = "price"
	fieldChange    = "change"
	fieldChangePct = "change_pct"
	fieldVolume    = "volume"
	fieldMarketCap = "market_cap"
	fieldCurrency  = "currency"
	fieldSparkline = "sparkline"
)

// Normalize converts a raw record into a Row. It never fails: numeric fields
// that are missing, null, or not coercible to a finite number become absent,
// and a sparkline that is not a list becomes empty.
func Normalize(raw RawRecord) Row {
	return Row{
		Ticker:    toText(raw[fieldTicker]).Or(""),
		Name:      toText(raw[fieldName]),
		Price:     toNumber(raw[fieldPrice]),
		Change:    toNumber(raw[fieldChange]),
		ChangePct: toNumber(raw[fieldChangePct]),
		Volume:    toNumber(raw[fieldVolume]),
		MarketCap: toNumber(raw[fieldMarketCap]),
		Currency:  toText(raw[fieldCurrency]),
		Sparkline: toSeries(raw[fieldSparkline]),
	}
}

// NormalizeAll normalizes every element of a decoded JSON array. Elements
// that are not objects normalize as empty records.
func NormalizeAll(items []any) []Row {
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rec, _ := item.(map[string]any)
		rows = append(rows, Normalize(rec))
	}
	return rows
}

func toNumber(v any) Opt[float64] {
	var f float64
	switch x := v.(type) {
	case nil:
		return None[float64]()
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return None[float64]()
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return None[float64]()
		}
		f = p
	default:
		return None[float64]()
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return None[float64]()
	}
	return Some(f)
}

func toText(v any) Opt[string] {
	switch x := v.(type) {
	case nil:
		return None[string]()
	case string:
		return Some(x)
	case json.Number:
		return Some(x.String())
	case float64:
		return Some(strconv.FormatFloat(x, 'f', -1, 64))
	case bool:
		return Some(strconv.FormatBool(x))
	default:
		return None[string]()
	}
}

// toSeries coerces each element of a list; elements that do not coerce are
// dropped so geometry never sees NaN.
func toSeries(v any) []float64 {
	items, ok := v.([]any)
	if !ok {
		return []float64{}
	}
	out := make([]float64, 0, len(items))
	for _, item := range items {
		if f, ok := toNumber(item).Get(); ok {
			out = append(out, f)
		}
	}
	return out
}
