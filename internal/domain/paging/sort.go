// Package paging orders record sets by a table column and slices them into
// fixed-size pages.
package paging

import (
	"cmp"
	"slices"

	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/scoring"
	"golang.org/x/text/cases"
)

// Sort returns a new slice ordered by spec. Ties keep their input order, so
// insertion order is the secondary key. Unknown columns keep input order.
func Sort(records []model.Record, spec model.SortSpec) []model.Record {
	out := slices.Clone(records)
	if out == nil {
		out = []model.Record{}
	}
	// Casers are stateful, so each sort gets its own.
	compare := comparator(spec.Column, cases.Fold())
	if compare == nil {
		return out
	}
	if spec.Direction == model.Desc {
		asc := compare
		compare = func(a, b model.Record) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

// comparator returns the ascending comparison for column, or nil when the
// column is not sortable.
func comparator(column model.Column, fold cases.Caser) func(a, b model.Record) int {
	switch column {
	case model.ColumnDate:
		return func(a, b model.Record) int { return model.CompareDates(a.Date, b.Date) }
	case model.ColumnMember:
		return func(a, b model.Record) int { return cmp.Compare(fold.String(a.Member), fold.String(b.Member)) }
	case model.ColumnProducts:
		return func(a, b model.Record) int { return cmp.Compare(a.Products, b.Products) }
	case model.ColumnQuality:
		return func(a, b model.Record) int { return cmp.Compare(a.Quality, b.Quality) }
	case model.ColumnErrors:
		return func(a, b model.Record) int { return cmp.Compare(a.Errors, b.Errors) }
	case model.ColumnScore:
		return func(a, b model.Record) int {
			return cmp.Compare(
				scoring.Composite(a.Products, a.Quality, a.Errors),
				scoring.Composite(b.Products, b.Quality, b.Errors),
			)
		}
	default:
		return nil
	}
}
