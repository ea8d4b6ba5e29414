package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zappabad/tickerboard/internal/api"
	"github.com/zappabad/tickerboard/internal/market"
)

func newService(t *testing.T, routes map[string]string) *MarketService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := api.NewClient(api.Config{BaseURL: srv.URL, Timeout: time.Second})
	require.NoError(t, err)
	return NewMarketService(client, Config{TableURL: srv.URL + "/sp100"})
}

func TestLoadRows(t *testing.T) {
	svc := newService(t, map[string]string{
		"/sp100": `{"sp100": [
			{"ticker": "AAPL", "price": 189.5, "change": "1.2", "sparkline": [1, 2, 3]},
			{"ticker": "MSFT", "price": null, "volume": "bad"}
		]}`,
	})

	rows, err := svc.LoadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, market.Some(189.5), rows[0].Price)
	require.Equal(t, market.Some(1.2), rows[0].Change)
	require.Equal(t, []float64{1, 2, 3}, rows[0].Sparkline)
	require.False(t, rows[1].Price.Present())
	require.False(t, rows[1].Volume.Present())
}

func TestLoadRowsMalformedPayload(t *testing.T) {
	for name, body := range map[string]string{
		"missing":   `{"other": []}`,
		"not array": `{"sp100": "oops"}`,
		"null":      `{"sp100": null}`,
		"top array": `[1, 2]`,
	} {
		t.Run(name, func(t *testing.T) {
			svc := newService(t, map[string]string{"/sp100": body})
			rows, err := svc.LoadRows(context.Background())
			require.NoError(t, err)
			require.Empty(t, rows)
		})
	}
}

func TestLoadRowsStatusError(t *testing.T) {
	svc := newService(t, map[string]string{})
	_, err := svc.LoadRows(context.Background())
	require.Error(t, err)
	code, ok := api.StatusCode(err)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, code)
}

func TestLoadSeries(t *testing.T) {
	svc := newService(t, map[string]string{
		"/ticker/AAPL": `{"ticker": "AAPL", "date": "2024-05-01", "points": [
			{"timestamp": "2024-05-01T09:30:00-04:00", "close": 170.5},
			{"timestamp": 1714570260000, "close": 170.7}
		]}`,
	})

	series, err := svc.LoadSeries(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Equal(t, "2024-05-01", series.Date)
	require.Equal(t, []float64{170.5, 170.7}, series.Closes())

	_, err = svc.LoadSeries(context.Background(), "  ")
	require.True(t, errors.Is(err, api.ErrEmptyTicker))
}
