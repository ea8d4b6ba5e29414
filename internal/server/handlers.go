package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zappabad/tickerboard/internal/logging"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type handler struct {
	store *Store
}

func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

func (h *handler) table(c *gin.Context) {
	payload, err := h.store.Table()
	if err != nil {
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (h *handler) news(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Query("ticker")))
	if ticker == "" {
		c.Error(badQuery("ticker is required"))
		return
	}
	page, err := intQuery(c, "page", 1)
	if err != nil || page < 1 {
		c.Error(badQuery("page must be an integer >= 1"))
		return
	}
	pageSize, err := intQuery(c, "page_size", defaultPageSize)
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		c.Error(badQuery("page_size must be an integer between 1 and 100"))
		return
	}

	rows, err := h.store.News(ticker)
	if err != nil {
		if errors.Is(err, ErrNoNewsFile) {
			c.Error(HTTPError{
				StatusCode: http.StatusNotFound,
				Detail:     "No news file found for ticker '" + ticker + "'",
			})
			return
		}
		c.Error(err)
		return
	}

	total := len(rows)
	start := (page - 1) * pageSize
	items := []map[string]string{}
	if start < total {
		items = rows[start:min(start+pageSize, total)]
	}
	log := logging.FromContext(c.Request.Context())
	log.Debug().
		Str("ticker", ticker).
		Int("page", page).
		Int("items", len(items)).
		Int("total", total).
		Msg("news page")

	c.JSON(http.StatusOK, gin.H{
		"ticker":    ticker,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"items":     items,
	})
}

func (h *handler) series(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	payload, err := h.store.Series(ticker)
	if err != nil {
		if errors.Is(err, ErrNoSeries) {
			c.Error(HTTPError{
				StatusCode: http.StatusNotFound,
				Detail:     "No intraday data for ticker '" + ticker + "'",
			})
			return
		}
		c.Error(err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	v, ok := c.GetQuery(name)
	if !ok {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(v))
}
