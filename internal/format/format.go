// Package format renders optional numbers for display.
//
// Every function is total over absent values, which render as Placeholder.
package format

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/zappabad/tickerboard/internal/market"
)

// Placeholder is shown for absent values.
const Placeholder = "—"

// Formatter formats numbers for one locale.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Formatter for the given locale tag.
func New(tag language.Tag) Formatter {
	return Formatter{tag: tag, printer: message.NewPrinter(tag)}
}

// ParseLocale builds a Formatter from a BCP 47 string such as "en-US".
func ParseLocale(s string) (Formatter, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return Formatter{}, err
	}
	return New(tag), nil
}

var std = New(language.AmericanEnglish)

// Default returns the en-US formatter used by the package-level functions.
func Default() Formatter { return std }

// Count formats x with grouping and at most two fraction digits.
func Count(x market.Opt[float64]) string { return std.Count(x) }

// Price formats x as a price in currency.
func Price(x market.Opt[float64], currency market.Opt[string]) string {
	return std.Price(x, currency)
}

// Percent formats x as a signed percentage.
func Percent(x market.Opt[float64]) string { return std.Percent(x) }

// Compact formats x with a K/M/B/T suffix.
func Compact(x market.Opt[float64]) string { return std.Compact(x) }

func finite(x market.Opt[float64]) (float64, bool) {
	v, ok := x.Get()
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// round rounds half away from zero at the given number of fraction digits,
// the same mode Compact uses, so ties format alike in every column.
func round(v float64, places int32) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(places)
}

// Count formats x with locale grouping and at most two fraction digits.
func (f Formatter) Count(x market.Opt[float64]) string {
	v, ok := finite(x)
	if !ok {
		return Placeholder
	}
	return f.printer.Sprintf("%v", number.Decimal(round(v, 2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// Price prefixes "$" when currency is USD or absent and prints two to four
// fraction digits. Other currencies get no symbol.
func (f Formatter) Price(x market.Opt[float64], currency market.Opt[string]) string {
	v, ok := finite(x)
	if !ok {
		return Placeholder
	}
	symbol := ""
	if c, ok := currency.Get(); !ok || c == "" || c == money.USD {
		symbol = "$"
	}
	return symbol + f.printer.Sprintf("%v", number.Decimal(round(v, 4).InexactFloat64(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(4),
	))
}

// Percent prints two fixed fraction digits with an explicit "+" for
// non-negative values.
func (f Formatter) Percent(x market.Opt[float64]) string {
	v, ok := finite(x)
	if !ok {
		return Placeholder
	}
	r := round(v, 2)
	s := r.StringFixed(2)
	if !r.IsNegative() {
		s = "+" + s
	}
	return s + "%"
}

var compactUnits = []struct {
	scale  float64
	suffix string
}{
	{1, ""},
	{1e3, "K"},
	{1e6, "M"},
	{1e9, "B"},
	{1e12, "T"},
}

// Compact abbreviates thousands, millions, billions and trillions with at
// most two fraction digits. Rounding may promote to the next unit, so
// 999 999 prints as "1M".
func (f Formatter) Compact(x market.Opt[float64]) string {
	v, ok := finite(x)
	if !ok {
		return Placeholder
	}
	abs := math.Abs(v)
	unit := 0
	for unit < len(compactUnits)-1 && abs >= compactUnits[unit+1].scale {
		unit++
	}

	var scaled decimal.Decimal
	for {
		scaled = decimal.NewFromFloat(abs).
			Div(decimal.NewFromFloat(compactUnits[unit].scale)).
			Round(2)
		if unit == len(compactUnits)-1 || scaled.LessThan(decimal.NewFromInt(1000)) {
			break
		}
		unit++
	}

	s := f.printer.Sprintf("%v", number.Decimal(scaled.InexactFloat64(), number.MaxFractionDigits(2)))
	if v < 0 && !scaled.IsZero() {
		s = "-" + s
	}
	return s + compactUnits[unit].suffix
}

// CurrencyLabel describes an ISO currency code, e.g. "EUR (€)". Unknown codes
// are returned as is; an empty code is treated as USD.
func CurrencyLabel(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = money.USD
	}
	c := money.GetCurrency(code)
	if c == nil || c.Grapheme == "" {
		return code
	}
	return code + " (" + c.Grapheme + ")"
}

// Locale returns the formatter's language tag.
func (f Formatter) Locale() language.Tag { return f.tag }
