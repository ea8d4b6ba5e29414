package market

// Opt holds a value that may be absent. Absent is distinct from the zero value:
// an absent price renders as a placeholder and sorts last, a zero price does not.
type Opt[T any] struct {
	val T
	ok  bool
}

// Some returns a present Opt.
func Some[T any](v T) Opt[T] {
	return Opt[T]{val: v, ok: true}
}

// None returns an absent Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.val, o.ok
}

// Present reports whether a value is held.
func (o Opt[T]) Present() bool {
	return o.ok
}

// Or returns the held value or def when absent.
func (o Opt[T]) Or(def T) T {
	if o.ok {
		return o.val
	}
	return def
}

// RawRecord is one untyped entry of the table payload, as decoded from JSON.
// Nothing about its shape is guaranteed; Normalize is the only consumer.
type RawRecord map[string]any

// Row is a normalized table record. Rows are immutable once produced.
type Row struct {
	Ticker    string
	Name      Opt[string]
	Price     Opt[float64]
	Change    Opt[float64]
	ChangePct Opt[float64]
	Volume    Opt[float64]
	MarketCap Opt[float64]
	Currency  Opt[string]
	Sparkline []float64
}

// Up reports whether the row should be drawn in the "up" color.
// An absent change counts as zero.
func (r Row) Up() bool {
	return r.Change.Or(0) >= 0
}
