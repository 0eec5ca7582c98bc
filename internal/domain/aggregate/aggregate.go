// Package aggregate computes summary metrics, per-employee rollups and
// chart-ready series from a record set.
package aggregate

import (
	"sort"

	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/scoring"
	"github.com/shopspring/decimal"
)

// percent scales ratios to percentages.
const percent = 100

// Summary holds the headline metrics of a record set.
type Summary struct {
	Records       int
	Employees     int
	TotalProducts int
	AvgQuality    float64 // one decimal
	TotalErrors   int
	ErrorRate     float64 // percent, one decimal
	AvgScore      float64 // composite score, one decimal
	AvgDailyScore float64 // one decimal
	SourceFile    string  // provenance of the first record
}

// EmployeeMetrics rolls up one member's records.
type EmployeeMetrics struct {
	Member        string
	RecordCount   int
	TotalProducts int
	AvgProducts   float64
	AvgQuality    float64
	TotalErrors   int
	ErrorShare    float64 // percent of all errors in the set, one decimal
	AvgScore      float64 // composite score
	AvgDailyScore float64
}

// Summarize computes the headline metrics. ok is false for an empty set,
// which callers present as "no data" instead of reading the zero Summary.
func Summarize(records []model.Record) (Summary, bool) {
	if len(records) == 0 {
		return Summary{}, false
	}

	members := make(map[string]struct{}, len(records))
	var qualitySum, dailySum int
	var compositeSum float64
	s := Summary{Records: len(records), SourceFile: records[0].SourceFile}
	for _, r := range records {
		members[r.Member] = struct{}{}
		s.TotalProducts += r.Products
		s.TotalErrors += r.Errors
		qualitySum += r.Quality
		dailySum += r.DailyScore
		compositeSum += scoring.Composite(r.Products, r.Quality, r.Errors)
	}

	n := float64(len(records))
	s.Employees = len(members)
	s.AvgQuality = Round1(float64(qualitySum) / n)
	s.AvgScore = Round1(compositeSum / n)
	s.AvgDailyScore = Round1(float64(dailySum) / n)
	if s.TotalProducts > 0 {
		s.ErrorRate = Round1(float64(s.TotalErrors) / float64(s.TotalProducts) * percent)
	}
	return s, true
}

// PerEmployee rolls up each distinct member over the given set only.
// ok is false for an empty set.
func PerEmployee(records []model.Record) (map[string]EmployeeMetrics, bool) {
	if len(records) == 0 {
		return map[string]EmployeeMetrics{}, false
	}

	type acc struct {
		EmployeeMetrics
		qualitySum, dailySum int
		compositeSum         float64
	}
	byMember := make(map[string]*acc)
	totalErrors := 0
	for _, r := range records {
		a, ok := byMember[r.Member]
		if !ok {
			a = &acc{EmployeeMetrics: EmployeeMetrics{Member: r.Member}}
			byMember[r.Member] = a
		}
		a.RecordCount++
		a.TotalProducts += r.Products
		a.TotalErrors += r.Errors
		a.qualitySum += r.Quality
		a.dailySum += r.DailyScore
		a.compositeSum += scoring.Composite(r.Products, r.Quality, r.Errors)
		totalErrors += r.Errors
	}

	out := make(map[string]EmployeeMetrics, len(byMember))
	for name, a := range byMember {
		n := float64(a.RecordCount)
		m := a.EmployeeMetrics
		m.AvgProducts = float64(m.TotalProducts) / n
		m.AvgQuality = float64(a.qualitySum) / n
		m.AvgScore = a.compositeSum / n
		m.AvgDailyScore = float64(a.dailySum) / n
		if totalErrors > 0 {
			m.ErrorShare = Round1(float64(m.TotalErrors) / float64(totalErrors) * percent)
		}
		out[name] = m
	}
	return out, true
}

// Employees returns PerEmployee ordered by member name, the order charts use.
func Employees(records []model.Record) []EmployeeMetrics {
	byMember, _ := PerEmployee(records)
	out := make([]EmployeeMetrics, 0, len(byMember))
	for _, m := range byMember {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Member < out[j].Member })
	return out
}

// Round1 rounds v to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
