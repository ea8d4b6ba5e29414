package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/tickerboard/internal/market"
)

var (
	absent = market.None[float64]()
	noCur  = market.None[string]()
)

func num(v float64) market.Opt[float64] { return market.Some(v) }

func TestPlaceholders(t *testing.T) {
	t.Parallel()
	for _, s := range []string{
		Count(absent),
		Price(absent, market.Some("USD")),
		Percent(absent),
		Compact(absent),
		Count(num(math.NaN())),
	} {
		require.Equal(t, Placeholder, s)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "12", Count(num(12)))
	assert.Equal(t, "1,234.57", Count(num(1234.567)))
	assert.Equal(t, "-0.5", Count(num(-0.5)))
}

func TestPrice(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "$12.3456", Price(num(12.3456), market.Some("USD")))
	assert.Equal(t, "$1,234.50", Price(num(1234.5), noCur))
	assert.Equal(t, "10.00", Price(num(10), market.Some("EUR")))
}

func TestPriceIsPure(t *testing.T) {
	t.Parallel()
	first := Price(num(12.3456), market.Some("USD"))
	for i := 0; i < 50; i++ {
		_ = Compact(num(float64(i) * 1e6))
		require.Equal(t, first, Price(num(12.3456), market.Some("USD")))
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "+1.23%", Percent(num(1.234)))
	assert.Equal(t, "-0.50%", Percent(num(-0.5)))
	assert.Equal(t, "+0.00%", Percent(num(0)))
	assert.Equal(t, "+0.00%", Percent(num(math.Copysign(0, -1))))
}

func TestCompact(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   float64
		want string
	}{
		{999, "999"},
		{12.345, "12.35"},
		{1234, "1.23K"},
		{1_500_000, "1.5M"},
		{999_999, "1M"},
		{2.5e9, "2.5B"},
		{3e12, "3T"},
		{-1500, "-1.5K"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Compact(num(tc.in)), "Compact(%v)", tc.in)
	}
}

func TestRoundingTiesAwayFromZero(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0.13", Count(num(0.125)))
	assert.Equal(t, "0.13", Compact(num(0.125)))
	assert.Equal(t, "-0.13", Count(num(-0.125)))
	assert.Equal(t, "+0.13%", Percent(num(0.125)))
	assert.Equal(t, "-0.13%", Percent(num(-0.125)))
	assert.Equal(t, "$0.0013", Price(num(0.00125), noCur))
	assert.Equal(t, "+0.00%", Percent(num(-0.001)))
}

func TestSignOf(t *testing.T) {
	t.Parallel()
	assert.Equal(t, SignNeutral, SignOf(absent))
	assert.Equal(t, SignNeutral, SignOf(num(math.NaN())))
	assert.Equal(t, SignPositive, SignOf(num(0)))
	assert.Equal(t, SignNegative, SignOf(num(-0.01)))
	assert.Equal(t, "positive", SignPositive.String())
}

func TestCurrencyLabel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "USD ($)", CurrencyLabel(""))
	assert.Equal(t, "EUR (€)", CurrencyLabel("eur"))
	assert.Equal(t, "ZZZ", CurrencyLabel("ZZZ"))
}

func TestParseLocale(t *testing.T) {
	t.Parallel()
	f, err := ParseLocale("en-US")
	require.NoError(t, err)
	assert.Equal(t, "1,000", f.Count(num(1000)))

	_, err = ParseLocale("not a locale!")
	require.Error(t, err)
}
