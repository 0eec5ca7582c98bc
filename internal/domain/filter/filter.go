// Package filter reduces a record set to the records matching a Criteria.
package filter

import (
	"sort"

	"github.com/okian/perfdash/internal/domain/model"
)

// Apply returns the records that satisfy every bound of c, in their original
// order. The input slice is never modified; the result is always a new slice.
func Apply(records []model.Record, c model.Criteria) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if Match(r, c) {
			out = append(out, r)
		}
	}
	return out
}

// Match reports whether r satisfies every set bound of c.
func Match(r model.Record, c model.Criteria) bool {
	if c.DateFrom != "" && model.CompareDates(r.Date, c.DateFrom) < 0 {
		return false
	}
	if c.DateTo != "" && model.CompareDates(r.Date, c.DateTo) > 0 {
		return false
	}
	if c.Employee != "" && r.Member != c.Employee {
		return false
	}
	if c.QualityMin != nil && r.Quality < *c.QualityMin {
		return false
	}
	if c.MaxErrors != nil && r.Errors > *c.MaxErrors {
		return false
	}
	return true
}

// Employees returns the distinct member names, sorted.
func Employees(records []model.Record) []string {
	seen := make(map[string]struct{}, len(records))
	names := make([]string, 0)
	for _, r := range records {
		if _, ok := seen[r.Member]; ok {
			continue
		}
		seen[r.Member] = struct{}{}
		names = append(names, r.Member)
	}
	sort.Strings(names)
	return names
}

// DateBounds returns the earliest and latest dates of the set. ok is false
// for an empty set.
func DateBounds(records []model.Record) (from, to string, ok bool) {
	for i, r := range records {
		if i == 0 {
			from, to = r.Date, r.Date
			continue
		}
		if model.CompareDates(r.Date, from) < 0 {
			from = r.Date
		}
		if model.CompareDates(r.Date, to) > 0 {
			to = r.Date
		}
	}
	return from, to, len(records) > 0
}
