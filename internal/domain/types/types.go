// Package types contains the view DTOs rendered by the CLI, in text or JSON.
package types

import (
	"github.com/okian/perfdash/internal/domain/aggregate"
	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/scoring"
)

// Dashboard is one rendered view of a session.
type Dashboard struct {
	SessionID string           `json:"session_id"`
	Filter    Filter           `json:"filter"`
	Summary   *Summary         `json:"summary"` // nil when the filtered set is empty
	Employees []EmployeeRow    `json:"employees"`
	Table     Table            `json:"table"`
	Products  aggregate.Series `json:"products_trend"`
	Scores    aggregate.Series `json:"daily_score_trend"`
}

// HasData reports whether the view has any records.
func (d Dashboard) HasData() bool { return d.Summary != nil }

// Filter echoes the active criteria.
type Filter struct {
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Employee   string `json:"employee"`
	QualityMin string `json:"quality_min"`
	MaxErrors  string `json:"max_errors"`
}

// NewFilter renders criteria for display.
func NewFilter(c model.Criteria) Filter {
	b := c.Describe()
	return Filter{
		DateFrom:   b.DateFrom,
		DateTo:     b.DateTo,
		Employee:   b.Employee,
		QualityMin: b.QualityMin,
		MaxErrors:  b.MaxErrors,
	}
}

// Summary is the headline metrics card.
type Summary struct {
	Records       int     `json:"records"`
	Employees     int     `json:"employees"`
	TotalProducts int     `json:"total_products"`
	AvgQuality    float64 `json:"avg_quality"`
	TotalErrors   int     `json:"total_errors"`
	ErrorRate     float64 `json:"error_rate"`
	AvgScore      float64 `json:"avg_score"`
	AvgDailyScore float64 `json:"avg_daily_score"`
	SourceFile    string  `json:"source_file,omitempty"`
}

// NewSummary converts aggregate metrics. ok=false yields nil.
func NewSummary(s aggregate.Summary, ok bool) *Summary {
	if !ok {
		return nil
	}
	return &Summary{
		Records:       s.Records,
		Employees:     s.Employees,
		TotalProducts: s.TotalProducts,
		AvgQuality:    s.AvgQuality,
		TotalErrors:   s.TotalErrors,
		ErrorRate:     s.ErrorRate,
		AvgScore:      s.AvgScore,
		AvgDailyScore: s.AvgDailyScore,
		SourceFile:    s.SourceFile,
	}
}

// EmployeeRow is one line of the per-employee table.
type EmployeeRow struct {
	Member        string  `json:"member"`
	Records       int     `json:"records"`
	TotalProducts int     `json:"total_products"`
	AvgProducts   float64 `json:"avg_products"`
	AvgQuality    float64 `json:"avg_quality"`
	TotalErrors   int     `json:"total_errors"`
	ErrorShare    float64 `json:"error_share"`
	AvgScore      float64 `json:"avg_score"`
	AvgDailyScore float64 `json:"avg_daily_score"`
}

// NewEmployeeRows converts per-employee metrics, keeping their order.
func NewEmployeeRows(ms []aggregate.EmployeeMetrics) []EmployeeRow {
	rows := make([]EmployeeRow, len(ms))
	for i, m := range ms {
		rows[i] = EmployeeRow{
			Member:        m.Member,
			Records:       m.RecordCount,
			TotalProducts: m.TotalProducts,
			AvgProducts:   m.AvgProducts,
			AvgQuality:    m.AvgQuality,
			TotalErrors:   m.TotalErrors,
			ErrorShare:    m.ErrorShare,
			AvgScore:      m.AvgScore,
			AvgDailyScore: m.AvgDailyScore,
		}
	}
	return rows
}

// Table is one page of the sorted record table.
type Table struct {
	Rows         []TableRow `json:"rows"`
	Page         int        `json:"page"`
	PageSize     int        `json:"page_size"`
	TotalPages   int        `json:"total_pages"`
	TotalRecords int        `json:"total_records"`
	SortColumn   string     `json:"sort_column"`
	SortDesc     bool       `json:"sort_desc"`
}

// TableRow is one record as shown in the table.
type TableRow struct {
	Date              string  `json:"date"`
	Member            string  `json:"member"`
	Products          int     `json:"products"`
	Quality           int     `json:"quality"`
	Errors            int     `json:"errors"`
	Score             float64 `json:"score"`
	DailyScore        int     `json:"daily_score"`
	Status            string  `json:"status"`
	Badge             string  `json:"badge"`
	ErrorCategories   string  `json:"error_categories,omitempty"`
	ErrorDescriptions string  `json:"error_descriptions,omitempty"`
	SourceFile        string  `json:"source_file,omitempty"`
}

// NewTableRow converts a record.
func NewTableRow(r model.Record) TableRow {
	status := scoring.Classify(r.Quality, r.Errors)
	return TableRow{
		Date:              r.Date,
		Member:            r.Member,
		Products:          r.Products,
		Quality:           r.Quality,
		Errors:            r.Errors,
		Score:             aggregate.Round1(scoring.Composite(r.Products, r.Quality, r.Errors)),
		DailyScore:        r.DailyScore,
		Status:            status.String(),
		Badge:             status.Badge(),
		ErrorCategories:   r.ErrorCategory.String(),
		ErrorDescriptions: r.ErrorDescription.String(),
		SourceFile:        r.SourceFile,
	}
}

// NewTableRows converts a page of records.
func NewTableRows(records []model.Record) []TableRow {
	rows := make([]TableRow, len(records))
	for i, r := range records {
		rows[i] = NewTableRow(r)
	}
	return rows
}
