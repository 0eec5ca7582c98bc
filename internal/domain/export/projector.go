// Package export shapes record sets into spreadsheet report rows. Totals are
// spreadsheet formulas over the data rows so edited exports stay consistent.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/scoring"
	"github.com/xuri/excelize/v2"
)

// Report titles.
const (
	TitleAll      = "Employee Performance Report (All Filtered Data)"
	TitleEmployee = "Employee Performance Report (Filtered Data)"
	TotalsLabel   = "TOTALS/AVERAGES"
)

// Cell is one spreadsheet cell: a literal value or a formula.
type Cell struct {
	Value   any
	Formula string
}

// IsFormula reports whether the cell holds a formula.
func (c Cell) IsFormula() bool { return c.Formula != "" }

// Text returns a literal string cell.
func Text(s string) Cell { return Cell{Value: s} }

// Number returns a literal integer cell.
func Number(n int) Cell { return Cell{Value: n} }

// Formula returns a formula cell.
func Formula(f string) Cell { return Cell{Formula: f} }

// Sheet is the projected report: header block, column header, data rows and
// totals. Rows are laid out from spreadsheet row 1.
type Sheet struct {
	Rows [][]Cell
	// FirstDataRow and LastDataRow are the 1-based rows holding records;
	// both are zero when there are no records.
	FirstDataRow int
	LastDataRow  int
}

// Context describes the active selection for the report header.
type Context struct {
	// Employee selects the single-employee layout (no Employee column).
	Employee string
	Criteria model.Criteria
}

type column struct {
	header string
	value  func(model.Record) Cell
	total  string // SUM or AVERAGE; empty for no total
}

func columns(allEmployees bool) []column {
	cols := []column{
		{header: "Date", value: func(r model.Record) Cell { return Text(r.Date) }},
	}
	if allEmployees {
		cols = append(cols, column{header: "Employee", value: func(r model.Record) Cell { return Text(r.Member) }})
	}
	return append(cols,
		column{header: "Products", total: "SUM", value: func(r model.Record) Cell { return Number(r.Products) }},
		column{header: "Quality", total: "AVERAGE", value: func(r model.Record) Cell { return Number(r.Quality) }},
		column{header: "Errors", total: "SUM", value: func(r model.Record) Cell { return Number(r.Errors) }},
		column{header: "Daily Score", total: "AVERAGE", value: func(r model.Record) Cell { return Number(r.DailyScore) }},
		column{header: "Performance Status", value: func(r model.Record) Cell {
			return Text(scoring.Classify(r.Quality, r.Errors).String())
		}},
		column{header: "Error Categories", value: func(r model.Record) Cell { return Text(r.ErrorCategory.String()) }},
		column{header: "Error Descriptions", value: func(r model.Record) Cell { return Text(r.ErrorDescription.String()) }},
	)
}

// Project lays out records as a report sheet.
func Project(records []model.Record, ctx Context) (Sheet, error) {
	bounds := ctx.Criteria.Describe()
	allEmployees := ctx.Employee == ""

	var rows [][]Cell
	if allEmployees {
		rows = append(rows,
			[]Cell{Text(TitleAll)},
			[]Cell{Text(fmt.Sprintf("Date Range: %s to %s", bounds.DateFrom, bounds.DateTo))},
			[]Cell{Text("Employee: " + bounds.Employee)},
		)
	} else {
		rows = append(rows,
			[]Cell{Text(TitleEmployee)},
			[]Cell{Text("Employee: " + ctx.Employee)},
			[]Cell{Text(fmt.Sprintf("Date Range: %s to %s", bounds.DateFrom, bounds.DateTo))},
		)
	}
	rows = append(rows,
		[]Cell{Text("Quality Minimum: " + bounds.QualityMin), Text("Errors Maximum: " + bounds.MaxErrors)},
		[]Cell{},
	)

	cols := columns(allEmployees)
	header := make([]Cell, len(cols))
	for i, c := range cols {
		header[i] = Text(c.header)
	}
	rows = append(rows, header)

	sheet := Sheet{}
	if len(records) == 0 {
		sheet.Rows = rows
		return sheet, nil
	}

	sheet.FirstDataRow = len(rows) + 1
	for _, r := range records {
		row := make([]Cell, len(cols))
		for i, c := range cols {
			row[i] = c.value(r)
		}
		rows = append(rows, row)
	}
	sheet.LastDataRow = len(rows)

	totals := make([]Cell, len(cols))
	totals[0] = Text(TotalsLabel)
	for i, c := range cols {
		if i == 0 {
			continue
		}
		if c.total == "" {
			totals[i] = Text("")
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return Sheet{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		totals[i] = Formula(fmt.Sprintf("%s(%s%d:%s%d)", c.total, name, sheet.FirstDataRow, name, sheet.LastDataRow))
	}
	sheet.Rows = append(rows, []Cell{}, totals)
	return sheet, nil
}

// MonthGroup is the records of one calendar month.
type MonthGroup struct {
	Month   string // YYYY-MM
	Records []model.Record
}

// ByMonth groups records by calendar month, months ascending, record order
// preserved within a month.
func ByMonth(records []model.Record) []MonthGroup {
	idx := make(map[string]int)
	var groups []MonthGroup
	for _, r := range records {
		m := r.Month()
		i, ok := idx[m]
		if !ok {
			i = len(groups)
			idx[m] = i
			groups = append(groups, MonthGroup{Month: m})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Month < groups[j].Month })
	return groups
}

// FileNameAll names the workbook of an all-employees export.
func FileNameAll(c model.Criteria) string {
	employee := c.Employee
	if employee == "" {
		employee = "AllEmployees"
	}
	return fmt.Sprintf("Filtered_Performance_%s_%s_to_%s.xlsx", employee, compactDate(c.DateFrom), compactDate(c.DateTo))
}

// FileNameEmployee names the workbook of a single-employee export.
func FileNameEmployee(employee string) string {
	return employee + "_Filtered_Performance_Report.xlsx"
}

func compactDate(d string) string {
	if d == "" {
		return "AllDates"
	}
	return strings.ReplaceAll(d, "-", "")
}
