package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/okian/perfdash/internal/domain/types"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)

	// Status colors keyed by badge class.
	badgeStyles = map[string]lipgloss.Style{
		"badge-success": cellStyle.Foreground(lipgloss.Color("#2e7d32")),
		"badge-warning": cellStyle.Foreground(lipgloss.Color("#f9a825")),
		"badge-danger":  cellStyle.Foreground(lipgloss.Color("#c62828")),
	}
)

const noData = "No data for the selected filters."

func renderDashboard(v types.Dashboard) string {
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render("Employee Performance Dashboard"))
	fmt.Fprintln(&b, mutedStyle.Render(fmt.Sprintf("Dates %s to %s | Employee: %s | Quality min: %s | Errors max: %s",
		v.Filter.DateFrom, v.Filter.DateTo, v.Filter.Employee, v.Filter.QualityMin, v.Filter.MaxErrors)))
	fmt.Fprintln(&b)

	if !v.HasData() {
		fmt.Fprintln(&b, noData)
		return b.String()
	}

	s := v.Summary
	if s.SourceFile != "" {
		fmt.Fprintf(&b, "Source: %s\n", s.SourceFile)
	}
	fmt.Fprintf(&b, "Records: %d  Employees: %d  Products: %d  Avg quality: %.1f  Errors: %d  Error rate: %.1f%%  Avg score: %.1f  Avg daily score: %.1f\n\n",
		s.Records, s.Employees, s.TotalProducts, s.AvgQuality, s.TotalErrors, s.ErrorRate, s.AvgScore, s.AvgDailyScore)

	fmt.Fprintln(&b, titleStyle.Render("Employees"))
	fmt.Fprintln(&b, employeeTable(v.Employees))
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, titleStyle.Render("Records"))
	fmt.Fprintln(&b, recordTable(v.Table.Rows))
	order := "asc"
	if v.Table.SortDesc {
		order = "desc"
	}
	fmt.Fprintf(&b, "Page %d of %d (%d records, sorted by %s %s)\n",
		v.Table.Page, v.Table.TotalPages, v.Table.TotalRecords, v.Table.SortColumn, order)
	return b.String()
}

func employeeTable(rows []types.EmployeeRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			r.Member,
			strconv.Itoa(r.Records),
			strconv.Itoa(r.TotalProducts),
			fmt.Sprintf("%.1f", r.AvgQuality),
			strconv.Itoa(r.TotalErrors),
			fmt.Sprintf("%.1f%%", r.ErrorShare),
			fmt.Sprintf("%.1f", r.AvgDailyScore),
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Employee", "Records", "Products", "Avg Quality", "Errors", "Error Share", "Avg Daily Score").
		Rows(data...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

const statusColumn = 7

func recordTable(rows []types.TableRow) string {
	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{
			r.Date,
			r.Member,
			strconv.Itoa(r.Products),
			strconv.Itoa(r.Quality),
			strconv.Itoa(r.Errors),
			fmt.Sprintf("%.1f", r.Score),
			strconv.Itoa(r.DailyScore),
			r.Status,
			r.ErrorCategories,
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Employee", "Products", "Quality", "Errors", "Score", "Daily Score", "Status", "Error Categories").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == statusColumn && row >= 0 && row < len(rows) {
				if st, ok := badgeStyles[rows[row].Badge]; ok {
					return st
				}
			}
			return cellStyle
		}).
		String()
}
