package market

import "strings"

// Matches reports whether the row's ticker or name contains query,
// ignoring case. A blank query matches every row.
//
// Case folding is plain strings.ToLower; special folds such as ß/ss are not
// treated as equal.
func Matches(row Row, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(row.Ticker), q) ||
		strings.Contains(strings.ToLower(row.Name.Or("")), q)
}
