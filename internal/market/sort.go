package market

import (
	"fmt"
	"slices"
	"strings"
)

// SortKey identifies a sortable column.
type SortKey string

const (
	KeyTicker    SortKey = "ticker"
	KeyName      SortKey = "name"
	KeyPrice     SortKey = "price"
	KeyChange    SortKey = "change"
	KeyChangePct SortKey = "change_pct"
	KeyVolume    SortKey = "volume"
	KeyMarketCap SortKey = "market_cap"
)

// SortKeys lists the sortable columns in display order.
var SortKeys = []SortKey{KeyTicker, KeyName, KeyPrice, KeyChange, KeyChangePct, KeyVolume, KeyMarketCap}

// ParseSortKey validates a column identifier.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Direction is the sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// SortState is the active sort column and direction.
type SortState struct {
	Key SortKey
	Dir Direction
}

// DefaultSort sorts by ticker, ascending.
func DefaultSort() SortState {
	return SortState{Key: KeyTicker, Dir: Asc}
}

// Toggle returns the state after a click on column k: the active column flips
// direction, any other column becomes active ascending.
func (s SortState) Toggle(k SortKey) SortState {
	if s.Key == k {
		if s.Dir == Asc {
			return SortState{Key: k, Dir: Desc}
		}
		return SortState{Key: k, Dir: Asc}
	}
	return SortState{Key: k, Dir: Asc}
}

// cell is a comparable view of one field of a row.
type cell struct {
	num     float64
	str     string
	numeric bool
	present bool
}

func fieldOf(r Row, k SortKey) cell {
	num := func(o Opt[float64]) cell {
		v, ok := o.Get()
		return cell{num: v, numeric: true, present: ok}
	}
	switch k {
	case KeyTicker:
		return cell{str: r.Ticker, present: true}
	case KeyName:
		v, ok := r.Name.Get()
		return cell{str: v, present: ok}
	case KeyPrice:
		return num(r.Price)
	case KeyChange:
		return num(r.Change)
	case KeyChangePct:
		return num(r.ChangePct)
	case KeyVolume:
		return num(r.Volume)
	case KeyMarketCap:
		return num(r.MarketCap)
	}
	return cell{}
}

// Compare orders a and b by key. An absent value sorts after a present one in
// both directions; two absent values are equal. Numbers compare numerically,
// everything else by case-sensitive string comparison.
func Compare(a, b Row, key SortKey, dir Direction) int {
	va, vb := fieldOf(a, key), fieldOf(b, key)
	switch {
	case !va.present && !vb.present:
		return 0
	case !va.present:
		return 1
	case !vb.present:
		return -1
	}

	var base int
	if va.numeric && vb.numeric {
		switch {
		case va.num < vb.num:
			base = -1
		case va.num > vb.num:
			base = 1
		}
	} else {
		base = strings.Compare(va.text(), vb.text())
	}
	if dir == Desc {
		return -base
	}
	return base
}

func (c cell) text() string {
	if c.numeric {
		return fmt.Sprint(c.num)
	}
	return c.str
}

// SortStable sorts rows in place by s, keeping equal rows in input order.
func SortStable(rows []Row, s SortState) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		return Compare(a, b, s.Key, s.Dir)
	})
}
