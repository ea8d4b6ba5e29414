// Package flow tracks asynchronous fetches whose results may be superseded
// before they arrive.
package flow

// Token identifies one started fetch. The zero Token is never admitted.
type Token uint64

// Gate admits only the result of the most recently started fetch.
// A Gate is not safe for concurrent use; it belongs to the goroutine that
// applies results (the bubbletea Update loop).
type Gate struct {
	gen Token
}

// Begin starts a new generation and returns its token. Every token handed
// out earlier becomes stale.
func (g *Gate) Begin() Token {
	g.gen++
	return g.gen
}

// Admit reports whether tok belongs to the current generation.
func (g *Gate) Admit(tok Token) bool {
	return tok != 0 && tok == g.gen
}

// Cancel invalidates the current generation without starting a new one.
func (g *Gate) Cancel() {
	g.gen++
}

// Current returns the latest token handed out.
func (g *Gate) Current() Token {
	return g.gen
}
