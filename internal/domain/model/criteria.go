package model

import (
	"strconv"
	"strings"
)

// Criteria is the active filter predicate set. Nil or empty bounds are
// unconstrained.
type Criteria struct {
	DateFrom   string
	DateTo     string
	Employee   string
	QualityMin *int
	MaxErrors  *int
}

// IsZero reports whether no bound is set.
func (c Criteria) IsZero() bool {
	return c.DateFrom == "" && c.DateTo == "" && c.Employee == "" &&
		c.QualityMin == nil && c.MaxErrors == nil
}

// Bounds is the human readable rendition of Criteria used in report headers.
type Bounds struct {
	DateFrom   string
	DateTo     string
	Employee   string
	QualityMin string
	MaxErrors  string
}

// Describe renders the criteria for report headers.
func (c Criteria) Describe() Bounds {
	b := Bounds{
		DateFrom:   orDefault(c.DateFrom, "All dates"),
		DateTo:     orDefault(c.DateTo, "All dates"),
		Employee:   orDefault(c.Employee, "All employees"),
		QualityMin: "No minimum",
		MaxErrors:  "No maximum",
	}
	if c.QualityMin != nil {
		b.QualityMin = strconv.Itoa(*c.QualityMin)
	}
	if c.MaxErrors != nil {
		b.MaxErrors = strconv.Itoa(*c.MaxErrors)
	}
	return b
}

// Int returns a pointer to v, for building criteria literals.
func Int(v int) *int { return &v }

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
