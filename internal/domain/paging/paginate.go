package paging

import (
	"fmt"

	"github.com/okian/perfdash/internal/domain/model"
)

// TotalPages returns the number of pages needed for n records.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate returns records [(page-1)*size, page*size) of ordered.
// Pages outside 1..TotalPages are rejected rather than clamped; page 1 of an
// empty set is an empty page so the no-data view can still render.
func Paginate(ordered []model.Record, page, size int) ([]model.Record, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if len(ordered) == 0 && page == 1 {
		return []model.Record{}, nil
	}
	if err := CheckPage(len(ordered), page, size); err != nil {
		return nil, err
	}

	start := (page - 1) * size
	end := min(start+size, len(ordered))
	return ordered[start:end:end], nil
}

// CheckPage validates page against a set of n records.
func CheckPage(n, page, size int) error {
	total := TotalPages(n, size)
	if page < 1 || page > total {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, total)
	}
	return nil
}
