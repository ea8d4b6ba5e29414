package server

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store reads fixtures from a data directory laid out as:
//
//	sp100_live_data.json
//	reuters_news/<TICKER>.csv
//	ticker/<TICKER>.json
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Table returns the raw table payload.
func (s *Store) Table() (json.RawMessage, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, "sp100_live_data.json"))
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("read table: invalid json")
	}
	return b, nil
}

// News returns every row of the ticker's news CSV, keyed by header name.
func (s *Store) News(ticker string) ([]map[string]string, error) {
	f, err := os.Open(filepath.Join(s.dir, "reuters_news", fileName(ticker, ".csv")))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w for ticker '%s'", ErrNoNewsFile, ticker)
		}
		return nil, err
	}
	defer f.Close()
	return readCSV(f)
}

// Series returns the recorded intraday payload for ticker.
func (s *Store) Series(ticker string) (json.RawMessage, error) {
	b, err := os.ReadFile(filepath.Join(s.dir, "ticker", fileName(ticker, ".json")))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w for ticker '%s'", ErrNoSeries, ticker)
		}
		return nil, err
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("read series %s: invalid json", ticker)
	}
	return b, nil
}

// fileName keeps the ticker inside its directory.
func fileName(ticker, ext string) string {
	return filepath.Base(filepath.Clean("/"+ticker)) + ext
}

func readCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimPrefix(header[i], "\ufeff")
	}

	rows := []map[string]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
