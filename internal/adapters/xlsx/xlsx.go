// Package xlsx writes projected report sheets as Excel workbooks and reads
// them back.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/perfdash/internal/domain/export"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet = "Sheet1"
	maxSheetName = 31
)

// NamedSheet is one worksheet of a workbook.
type NamedSheet struct {
	Name  string
	Sheet export.Sheet
}

// Write renders sheets into a new workbook and writes it to w. The first
// sheet is active.
func Write(w io.Writer, sheets ...NamedSheet) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	seen := make(map[string]bool, len(sheets))
	names := make([]string, len(sheets))
	for i, s := range sheets {
		name := SheetName(s.Name)
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("%w: %q", ErrDuplicateSheet, name)
		}
		seen[key] = true
		names[i] = name

		if name != defaultSheet {
			if _, err := f.NewSheet(name); err != nil {
				return fmt.Errorf("%w: sheet %q: %w", ErrWriteWorkbook, name, err)
			}
		}
		if err := fill(f, name, s.Sheet); err != nil {
			return fmt.Errorf("%w: sheet %q: %w", ErrWriteWorkbook, name, err)
		}
	}

	if !seen[strings.ToLower(defaultSheet)] {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteWorkbook, err)
		}
	}
	if idx, err := f.GetSheetIndex(names[0]); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteWorkbook, err)
	}
	return nil
}

func fill(f *excelize.File, sheet string, s export.Sheet) error {
	for r, row := range s.Rows {
		for c, cell := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if cell.IsFormula() {
				err = f.SetCellFormula(sheet, ref, cell.Formula)
			} else {
				err = f.SetCellValue(sheet, ref, cell.Value)
			}
			if err != nil {
				return fmt.Errorf("cell %s: %w", ref, err)
			}
		}
	}
	return nil
}

// SheetName makes name acceptable to Excel: no []:*?/\ characters and at
// most 31 characters.
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	if name == "" {
		return defaultSheet
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}

// ReadSheet is a worksheet as read back from a workbook.
type ReadSheet struct {
	Name string
	Rows [][]string
	// Formulas maps cell references such as "C12" to their formula text.
	Formulas map[string]string
}

// Read parses a workbook, sheets in workbook order.
func Read(r io.Reader) ([]ReadSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	var out []ReadSheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %w", ErrReadWorkbook, name, err)
		}
		width := 0
		for _, row := range rows {
			width = max(width, len(row))
		}
		formulas := make(map[string]string)
		for r := 1; r <= len(rows); r++ {
			for c := 1; c <= width; c++ {
				ref, err := excelize.CoordinatesToCellName(c, r)
				if err != nil {
					return nil, err
				}
				if fx, err := f.GetCellFormula(name, ref); err == nil && fx != "" {
					formulas[ref] = fx
				}
			}
		}
		out = append(out, ReadSheet{Name: name, Rows: rows, Formulas: formulas})
	}
	return out, nil
}
