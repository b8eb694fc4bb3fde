// Package utils holds the query-parameter parsing shared by the paginated
// admin listings (activity logs, subscribers, notification logs).
package utils

import "strconv"

// AtoiDefault parses s as a base-10 int, returning def when s is empty or
// not a plain integer. Query values are taken as sent; " 42" is malformed.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampPage parses a 1-based page query value. Missing, malformed, zero, or
// negative values all mean the first page.
func ClampPage(s string) int {
	if p := AtoiDefault(s, 1); p > 1 {
		return p
	}
	return 1
}

// ClampPageSize parses a page-size query value and bounds it to [1, max],
// using def when the value is missing or malformed.
func ClampPageSize(s string, def, max int) int {
	n := AtoiDefault(s, def)
	if n < 1 {
		return 1
	}
	if n > max {
		return max
	}
	return n
}
