// Package view holds the paginated news feed state and the pagination rules
// derived from it.
package view

import (
	"strings"

	"github.com/zappabad/tickerboard/internal/news"
)

// Page is one fetched page of news. A new Page replaces the previous one
// wholesale; pages are never merged.
type Page struct {
	Ticker string
	Number int // 1-based
	Size   int
	Items  []news.NewsItem
	// Total is the number of items across all pages, when the backend
	// reported it.
	Total    int
	HasTotal bool
}

// HasPrevious reports whether a previous page exists.
func (p Page) HasPrevious() bool {
	return p.Number > 1
}

// HasNext reports whether a next page likely exists. Without a total it
// assumes more items whenever this page is full, which is wrong exactly when
// the last page is full: the following fetch then returns no items.
func (p Page) HasNext() bool {
	if p.HasTotal {
		return p.Number*p.Size < p.Total
	}
	return p.Size > 0 && len(p.Items) == p.Size
}

// TotalPages returns ceil(Total/Size), at least 1, when the total is known.
func (p Page) TotalPages() (int, bool) {
	if !p.HasTotal || p.Size <= 0 {
		return 0, false
	}
	return max(1, (p.Total+p.Size-1)/p.Size), true
}

// Empty reports whether the page holds no items.
func (p Page) Empty() bool {
	return len(p.Items) == 0
}

// Exhausted reports whether an empty page came after earlier pages, i.e. the
// reader paged past the end rather than the ticker having no news.
func (p Page) Exhausted() bool {
	return p.Empty() && p.Number > 1
}

// FeedState selects which page the feed shows.
type FeedState struct {
	Ticker   string
	Page     int
	PageSize int
}

// NewFeedState starts at page 1 of ticker.
func NewFeedState(ticker string, pageSize int) FeedState {
	return FeedState{Ticker: normalizeTicker(ticker), Page: 1, PageSize: pageSize}
}

// WithTicker switches to ticker. A different ticker resets to page 1; the
// same ticker keeps the current page.
func (s FeedState) WithTicker(ticker string) FeedState {
	ticker = normalizeTicker(ticker)
	if ticker != s.Ticker {
		s.Ticker = ticker
		s.Page = 1
	}
	return s
}

// Next advances one page when the loaded page says a next page exists.
func (s FeedState) Next(loaded Page) FeedState {
	if loaded.Number == s.Page && loaded.HasNext() {
		s.Page++
	}
	return s
}

// Prev goes back one page, never below 1.
func (s FeedState) Prev() FeedState {
	if s.Page > 1 {
		s.Page--
	}
	return s
}

// Key identifies the fetch this state requires.
func (s FeedState) Key() FeedKey {
	return FeedKey{Ticker: s.Ticker, Page: s.Page}
}

// FeedKey is the dependency set of a news fetch.
type FeedKey struct {
	Ticker string
	Page   int
}

func normalizeTicker(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}
