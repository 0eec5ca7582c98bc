// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used by performance files.
const DateLayout = "2006-01-02"

// Quality bounds accepted for a record.
const (
	MinQuality = 1
	MaxQuality = 10
)

// Record is one employee's performance on one date.
// DailyScore and SourceFile are derived at ingestion time and are never
// trusted from input.
type Record struct {
	Date             string `json:"date"`
	Member           string `json:"member"`
	Products         int    `json:"products"`
	Quality          int    `json:"quality"`
	Errors           int    `json:"errors"`
	ErrorCategory    Tags   `json:"errorCategory,omitempty"`
	ErrorDescription Tags   `json:"errorDescription,omitempty"`
	DailyScore       int    `json:"dailyScore"`
	SourceFile       string `json:"sourceFile,omitempty"`
}

// Key identifies a record for upsert purposes.
type Key struct {
	Date   string
	Member string
}

// Key returns the (date, member) identity of the record.
func (r Record) Key() Key {
	return Key{Date: r.Date, Member: r.Member}
}

// Day parses the record date. ok is false when the date is not ISO formatted.
func (r Record) Day() (time.Time, bool) {
	return ParseDate(r.Date)
}

// Month returns the YYYY-MM prefix of the record date.
func (r Record) Month() string {
	if d, ok := r.Day(); ok {
		return d.Format("2006-01")
	}
	if len(r.Date) >= 7 {
		return r.Date[:7]
	}
	return r.Date
}

// Validate checks the counters and date of a record. Member presence is left
// to callers since hand-entered records may omit it.
func (r Record) Validate() error {
	switch {
	case strings.TrimSpace(r.Date) == "":
		return &ValidationError{Field: "date", Reason: "is required"}
	case !validDate(r.Date):
		return &ValidationError{Field: "date", Reason: "must be formatted as YYYY-MM-DD"}
	case r.Products < 0:
		return &ValidationError{Field: "products", Reason: "must be a non-negative integer"}
	case r.Quality < MinQuality || r.Quality > MaxQuality:
		return &ValidationError{Field: "quality", Reason: "must be between 1 and 10"}
	case r.Errors < 0:
		return &ValidationError{Field: "errors", Reason: "must be a non-negative integer"}
	}
	return nil
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func validDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// CompareDates orders two date strings chronologically. Strings that do not
// parse fall back to lexical order so the comparison stays total.
func CompareDates(a, b string) int {
	da, okA := ParseDate(a)
	db, okB := ParseDate(b)
	if okA && okB {
		return da.Compare(db)
	}
	return strings.Compare(a, b)
}
