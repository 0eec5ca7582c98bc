package aggregate

import (
	"sort"

	"github.com/okian/perfdash/internal/domain/model"
)

// Picker extracts the plotted value from a record.
type Picker func(model.Record) float64

// Products plots units produced.
func Products(r model.Record) float64 { return float64(r.Products) }

// DailyScore plots the persisted daily score.
func DailyScore(r model.Record) float64 { return float64(r.DailyScore) }

// Line is one member's values aligned with Series.Labels. A nil point marks
// a date with no record for the member.
type Line struct {
	Member string     `json:"member"`
	Points []*float64 `json:"points"`
}

// Series is a chart-ready date-by-member matrix.
type Series struct {
	Labels []string `json:"labels"`
	Lines  []Line   `json:"lines"`
}

// Trend builds one line per member (sorted by name) over the chronologically
// sorted distinct dates. When a member has several records on one date the
// first one wins.
func Trend(records []model.Record, pick Picker) Series {
	dates := make([]string, 0)
	dateIdx := make(map[string]int)
	memberNames := make([]string, 0)
	memberSeen := make(map[string]struct{})
	for _, r := range records {
		if _, ok := dateIdx[r.Date]; !ok {
			dateIdx[r.Date] = 0
			dates = append(dates, r.Date)
		}
		if _, ok := memberSeen[r.Member]; !ok {
			memberSeen[r.Member] = struct{}{}
			memberNames = append(memberNames, r.Member)
		}
	}
	sort.SliceStable(dates, func(i, j int) bool { return model.CompareDates(dates[i], dates[j]) < 0 })
	for i, d := range dates {
		dateIdx[d] = i
	}
	sort.Strings(memberNames)

	lines := make([]Line, len(memberNames))
	lineIdx := make(map[string]int, len(memberNames))
	for i, name := range memberNames {
		lines[i] = Line{Member: name, Points: make([]*float64, len(dates))}
		lineIdx[name] = i
	}
	for _, r := range records {
		points := lines[lineIdx[r.Member]].Points
		at := dateIdx[r.Date]
		if points[at] != nil {
			continue
		}
		v := pick(r)
		points[at] = &v
	}

	return Series{Labels: dates, Lines: lines}
}
