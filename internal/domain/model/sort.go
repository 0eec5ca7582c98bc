package model

import "strings"

// Column is a sortable table column.
type Column string

// Sortable columns.
const (
	ColumnDate     Column = "date"
	ColumnMember   Column = "member"
	ColumnProducts Column = "products"
	ColumnQuality  Column = "quality"
	ColumnErrors   Column = "errors"
	ColumnScore    Column = "score"
)

// Columns lists the sortable columns in table order.
var Columns = []Column{ColumnDate, ColumnMember, ColumnProducts, ColumnQuality, ColumnErrors, ColumnScore}

// Direction is the sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortSpec is the single active ordering of the table.
type SortSpec struct {
	Column    Column
	Direction Direction
}

// DefaultSort orders newest dates first.
func DefaultSort() SortSpec {
	return SortSpec{Column: ColumnDate, Direction: Desc}
}

// Toggle returns the spec after a header click on column: the active column
// flips direction, any other column starts ascending.
func (s SortSpec) Toggle(column Column) SortSpec {
	if s.Column == column {
		if s.Direction == Asc {
			return SortSpec{Column: column, Direction: Desc}
		}
		return SortSpec{Column: column, Direction: Asc}
	}
	return SortSpec{Column: column, Direction: Asc}
}

// ParseColumn maps a user supplied name to a Column. ok is false for unknown
// names.
func ParseColumn(name string) (Column, bool) {
	c := Column(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Columns {
		if c == known {
			return c, true
		}
	}
	return c, false
}

// DefaultPageSize is the number of table rows per page.
const DefaultPageSize = 10

// PageState tracks the current table page.
type PageState struct {
	Page int
	Size int
}

// FirstPage returns page 1 with the given size (DefaultPageSize when size < 1).
func FirstPage(size int) PageState {
	if size < 1 {
		size = DefaultPageSize
	}
	return PageState{Page: 1, Size: size}
}
