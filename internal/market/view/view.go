// Package view derives the displayed ticker table from loaded rows and the
// transient table state.
package view

import (
	"github.com/zappabad/tickerboard/internal/market"
)

// TableState is the user-controlled input of the table: search text and sort.
type TableState struct {
	Query string
	Sort  market.SortState
}

// DefaultTableState has no query and sorts by ticker ascending.
func DefaultTableState() TableState {
	return TableState{Sort: market.DefaultSort()}
}

// SetQuery returns the state with its query replaced.
func (s TableState) SetQuery(q string) TableState {
	s.Query = q
	return s
}

// ToggleSort returns the state after a click on column k.
func (s TableState) ToggleSort(k market.SortKey) TableState {
	s.Sort = s.Sort.Toggle(k)
	return s
}

// Project filters rows by query and returns a stably sorted copy. rows is
// never modified; the same inputs always produce the same output.
func Project(rows []market.Row, query string, sort market.SortState) []market.Row {
	out := make([]market.Row, 0, len(rows))
	for _, r := range rows {
		if market.Matches(r, query) {
			out = append(out, r)
		}
	}
	market.SortStable(out, sort)
	return out
}

// ProjectState is Project driven by a TableState.
func ProjectState(rows []market.Row, s TableState) []market.Row {
	return Project(rows, s.Query, s.Sort)
}
