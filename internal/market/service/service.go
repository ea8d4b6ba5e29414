package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"

	"github.com/zappabad/tickerboard/internal/api"
	"github.com/zappabad/tickerboard/internal/logging"
	"github.com/zappabad/tickerboard/internal/market"
)

// MarketService loads the ticker table and per-ticker time series.
type MarketService struct {
	cfg    Config
	client *api.Client
	log    zerolog.Logger
}

// NewMarketService creates a new MarketService.
func NewMarketService(client *api.Client, cfg Config) *MarketService {
	def := DefaultConfig()
	if cfg.TableURL == "" {
		cfg.TableURL = def.TableURL
	}
	if cfg.RowsPath == "" {
		cfg.RowsPath = def.RowsPath
	}
	return &MarketService{
		cfg:    cfg,
		client: client,
		log:    logging.Component("market"),
	}
}

// LoadRows fetches the table payload and normalizes every record. A payload
// without a row array at RowsPath yields no rows, not an error.
func (s *MarketService) LoadRows(ctx context.Context) ([]market.Row, error) {
	var payload any
	if err := s.client.GetJSON(ctx, s.cfg.TableURL, &payload); err != nil {
		return nil, fmt.Errorf("failed to load data from %s: %w", s.cfg.TableURL, err)
	}
	rows := market.NormalizeAll(ExtractRecords(payload, s.cfg.RowsPath))
	s.log.Debug().Int("rows", len(rows)).Msg("table loaded")
	return rows, nil
}

// ExtractRecords returns the array found at path in payload, or nil when the
// path is missing or does not hold an array.
func ExtractRecords(payload any, path string) []any {
	v, err := jsonpath.Get(path, payload)
	if err != nil {
		return nil
	}
	items, _ := v.([]any)
	return items
}

// LoadSeries fetches the last-day series for ticker.
func (s *MarketService) LoadSeries(ctx context.Context, ticker string) (market.Series, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return market.Series{}, api.ErrEmptyTicker
	}
	var series market.Series
	if err := s.client.GetJSON(ctx, s.client.URL("/ticker/"+url.PathEscape(ticker), nil), &series); err != nil {
		return market.Series{}, fmt.Errorf("failed to load %s data: %w", ticker, err)
	}
	if series.Ticker == "" {
		series.Ticker = ticker
	}
	return series, nil
}
