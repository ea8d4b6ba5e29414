package format

import (
	"math"

	"github.com/zappabad/tickerboard/internal/market"
)

// Sign classifies a value for coloring.
type Sign int

const (
	SignNeutral Sign = iota
	SignPositive
	SignNegative
)

func (s Sign) String() string {
	switch s {
	case SignPositive:
		return "positive"
	case SignNegative:
		return "negative"
	default:
		return "neutral"
	}
}

// SignOf returns SignNeutral for absent or NaN values, SignPositive for
// values >= 0 and SignNegative otherwise.
func SignOf(x market.Opt[float64]) Sign {
	v, ok := x.Get()
	if !ok || math.IsNaN(v) {
		return SignNeutral
	}
	if v >= 0 {
		return SignPositive
	}
	return SignNegative
}
