package entry

import (
	"strconv"
	"strings"

	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/pkg/metrics"
)

// Input is a record as typed into the entry form. Counters stay strings so
// non-numeric values surface as validation errors rather than parse panics.
type Input struct {
	Date             string
	Member           string
	Products         string
	Quality          string
	Errors           string
	ErrorCategory    model.Tags
	ErrorDescription model.Tags
}

// Validate converts an Input into a record. Member may be empty.
func Validate(in Input) (model.Record, error) {
	rec, err := validate(in)
	if err != nil {
		if ve, ok := err.(*ValidationError); ok { //nolint:errorlint // validate returns the concrete type
			metrics.RecordValidationError(ve.Field)
		}
		return model.Record{}, err
	}
	return rec, nil
}

func validate(in Input) (model.Record, error) {
	rec := model.Record{
		Date:             strings.TrimSpace(in.Date),
		Member:           strings.TrimSpace(in.Member),
		ErrorCategory:    in.ErrorCategory,
		ErrorDescription: in.ErrorDescription,
	}
	if rec.Date == "" {
		return rec, &ValidationError{Field: "date", Reason: "is required"}
	}
	if _, ok := model.ParseDate(rec.Date); !ok {
		return rec, &ValidationError{Field: "date", Reason: "must be formatted as YYYY-MM-DD"}
	}

	var err error
	if rec.Products, err = atoi("products", in.Products); err != nil {
		return rec, err
	}
	if rec.Quality, err = atoi("quality", in.Quality); err != nil {
		return rec, err
	}
	if rec.Errors, err = atoi("errors", in.Errors); err != nil {
		return rec, err
	}
	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

func atoi(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: field, Reason: "is required"}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be an integer"}
	}
	return n, nil
}

// InputOf renders a record back into form values, for pre-filling edits.
func InputOf(r model.Record) Input {
	return Input{
		Date:             r.Date,
		Member:           r.Member,
		Products:         strconv.Itoa(r.Products),
		Quality:          strconv.Itoa(r.Quality),
		Errors:           strconv.Itoa(r.Errors),
		ErrorCategory:    r.ErrorCategory,
		ErrorDescription: r.ErrorDescription,
	}
}
