package xlsx

import "errors"

// Workbook errors.
var (
	ErrNoSheets       = errors.New("workbook needs at least one sheet")
	ErrDuplicateSheet = errors.New("duplicate sheet name")
	ErrWriteWorkbook  = errors.New("failed to write workbook")
	ErrReadWorkbook   = errors.New("failed to read workbook")
)
