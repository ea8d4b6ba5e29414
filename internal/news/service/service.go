package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zappabad/tickerboard/internal/api"
	"github.com/zappabad/tickerboard/internal/logging"
	"github.com/zappabad/tickerboard/internal/news"
	newsview "github.com/zappabad/tickerboard/internal/news/view"
)

// FetchError is returned when the news endpoint answers with a non-2xx status.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch news (%d)", e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewsService loads pages of news for a ticker.
type NewsService struct {
	cfg    Config
	client *api.Client
	log    zerolog.Logger
}

// NewNewsService creates a new NewsService.
func NewNewsService(client *api.Client, cfg Config) *NewsService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	return &NewsService{
		cfg:    cfg,
		client: client,
		log:    logging.Component("news"),
	}
}

// PageSize returns the fixed page size used for every request.
func (s *NewsService) PageSize() int {
	return s.cfg.PageSize
}

// pageResponse tolerates malformed fields: anything that does not decode as
// expected is treated as missing.
type pageResponse struct {
	Items json.RawMessage `json:"items"`
	Total json.RawMessage `json:"total"`
}

// LoadPage issues one request for page of ticker and returns it as a fresh
// Page. Missing items decode as an empty page and a missing total as unknown.
func (s *NewsService) LoadPage(ctx context.Context, ticker string, page int) (newsview.Page, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		return newsview.Page{}, api.ErrEmptyTicker
	}
	if page < 1 {
		page = 1
	}

	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(s.cfg.PageSize))

	log := logging.WithTicker(s.log, ticker)
	log.Debug().Int("page", page).Msg("fetching news")

	var resp pageResponse
	if err := s.client.GetJSON(ctx, s.client.URL("/news", q), &resp); err != nil {
		if code, ok := api.StatusCode(err); ok {
			return newsview.Page{}, &FetchError{Status: code, Err: err}
		}
		return newsview.Page{}, err
	}

	items, skipped := decodeItems(resp.Items)
	out := newsview.Page{
		Ticker: ticker,
		Number: page,
		Size:   s.cfg.PageSize,
		Items:  items,
	}
	out.Total, out.HasTotal = decodeTotal(resp.Total)
	log.Debug().
		Int("page", page).
		Int("items", len(out.Items)).
		Int("skipped", skipped).
		Bool("has_total", out.HasTotal).
		Msg("news loaded")
	return out, nil
}

// decodeItems keeps every entry that is an object, whatever its field types,
// and reports how many entries were skipped.
func decodeItems(raw json.RawMessage) ([]news.NewsItem, int) {
	var entries []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return []news.NewsItem{}, 0
	}
	items := make([]news.NewsItem, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		item, err := news.DecodeNewsItem(entry)
		if err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped
}

func decodeTotal(raw json.RawMessage) (int, bool) {
	var f *float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil || f == nil {
		return 0, false
	}
	if math.IsNaN(*f) || math.IsInf(*f, 0) || *f < 0 {
		return 0, false
	}
	return int(*f), true
}
