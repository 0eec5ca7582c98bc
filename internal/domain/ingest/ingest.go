// Package ingest turns uploaded JSON payloads into validated records.
//
// A payload must be a JSON array of record objects. Every element is
// validated; a file is admitted whole or dropped whole. Several files are
// read concurrently and joined all-settled: one bad file never aborts the
// others.
package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/scoring"
	"github.com/okian/perfdash/pkg/logger"
	"github.com/okian/perfdash/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Option applies a configuration option to the Ingestor.
type Option func(*Ingestor)

// WithCalculator sets the daily score calculator.
func WithCalculator(c *scoring.Calculator) Option {
	return func(i *Ingestor) {
		if c != nil {
			i.calc = c
		}
	}
}

// WithConcurrency bounds how many files are read at once.
func WithConcurrency(n int) Option {
	return func(i *Ingestor) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(i *Ingestor) {
		if l != nil {
			i.logger = l
		}
	}
}

// Ingestor parses and validates input files.
type Ingestor struct {
	calc        *scoring.Calculator
	concurrency int
	logger      logger.Logger
}

// New constructs an Ingestor with default configuration.
func New(opts ...Option) *Ingestor {
	i := &Ingestor{
		calc:        scoring.NewCalculator(),
		concurrency: runtime.NumCPU(),
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Outcome is the settled result of one source.
type Outcome struct {
	Source  string
	Records []model.Record
	Err     error
}

// OK reports whether the source was admitted.
func (o Outcome) OK() bool { return o.Err == nil }

// Result is the merged record set plus every per-source outcome, in source
// order.
type Result struct {
	Records  []model.Record
	Outcomes []Outcome
}

// Failed returns the outcomes of dropped sources.
func (r Result) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o)
		}
	}
	return out
}

// Load reads every source concurrently and waits for all of them. The merged
// records follow source order, then array order. When no source yields a
// record the error is ErrNoValidRecords and Result still carries the outcomes.
func (i *Ingestor) Load(ctx context.Context, sources ...Source) (Result, error) {
	start := time.Now()
	outcomes := make([]Outcome, len(sources))

	var g errgroup.Group
	g.SetLimit(i.concurrency)
	for idx, src := range sources {
		g.Go(func() error {
			outcomes[idx] = i.loadOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait() // all-settled: per-source errors live in outcomes

	res := Result{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.OK() {
			res.Records = append(res.Records, o.Records...)
		}
	}
	metrics.RecordIngestDuration(float64(time.Since(start).Milliseconds()))

	if len(res.Records) == 0 {
		i.logger.Error(ctx, "no valid records in input", logger.Int("files", len(sources)))
		return res, ErrNoValidRecords
	}
	metrics.RecordRecordsIngested(len(res.Records))
	i.logger.Info(ctx, "ingested records",
		logger.Int("files", len(sources)),
		logger.Int("failed", len(res.Failed())),
		logger.Int("records", len(res.Records)),
	)
	return res, nil
}

func (i *Ingestor) loadOne(ctx context.Context, src Source) Outcome {
	name := src.Name()
	payload, err := read(ctx, src)
	if err != nil {
		metrics.RecordFileIngested(metrics.OutcomeRead)
		i.logger.Warn(ctx, "failed to read file", logger.String("file", name), logger.Error(err))
		return Outcome{Source: name, Err: &FileError{File: name, Err: fmt.Errorf("%w: %w", ErrRead, err)}}
	}

	recs, err := i.Parse(name, payload)
	if err != nil {
		outcome := metrics.OutcomeSchema
		if errors.Is(err, ErrParse) {
			outcome = metrics.OutcomeParse
		}
		metrics.RecordFileIngested(outcome)
		i.logger.Warn(ctx, "dropped file", logger.String("file", name), logger.Error(err))
		return Outcome{Source: name, Err: err}
	}

	metrics.RecordFileIngested(metrics.OutcomeOK)
	i.logger.Debug(ctx, "parsed file", logger.String("file", name), logger.Int("records", len(recs)))
	return Outcome{Source: name, Records: recs}
}

func read(ctx context.Context, src Source) ([]byte, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// rawRecord mirrors an input element. Pointers detect missing fields;
// dailyScore and sourceFile are ignored on input.
type rawRecord struct {
	Date             *string      `json:"date"`
	Member           *string      `json:"member"`
	Products         *json.Number `json:"products"`
	Quality          *json.Number `json:"quality"`
	Errors           *json.Number `json:"errors"`
	ErrorCategory    model.Tags   `json:"errorCategory"`
	ErrorDescription model.Tags   `json:"errorDescription"`
}

// Parse decodes one payload. name becomes each record's SourceFile.
func (i *Ingestor) Parse(name string, payload []byte) ([]model.Record, error) {
	var top any
	if err := json.Unmarshal(payload, &top); err != nil {
		return nil, &FileError{File: name, Err: fmt.Errorf("%w: %w", ErrParse, err)}
	}
	if _, ok := top.([]any); !ok {
		return nil, &FileError{File: name, Err: fmt.Errorf("%w: top-level value is not an array", ErrSchema)}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(payload, &elems); err != nil {
		return nil, &FileError{File: name, Err: fmt.Errorf("%w: %w", ErrSchema, err)}
	}

	recs := make([]model.Record, 0, len(elems))
	for idx, elem := range elems {
		rec, err := i.decode(elem)
		if err != nil {
			var ve *model.ValidationError
			if errors.As(err, &ve) {
				metrics.RecordValidationError(ve.Field)
			}
			return nil, &FileError{File: name, Err: fmt.Errorf("%w: element %d: %w", ErrSchema, idx, err)}
		}
		rec.SourceFile = name
		recs = append(recs, rec)
	}
	return recs, nil
}

func (i *Ingestor) decode(elem json.RawMessage) (model.Record, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(elem), []byte("{")) {
		return model.Record{}, errors.New("not an object")
	}
	var raw rawRecord
	if err := json.Unmarshal(elem, &raw); err != nil {
		return model.Record{}, err
	}

	rec := model.Record{
		ErrorCategory:    raw.ErrorCategory,
		ErrorDescription: raw.ErrorDescription,
	}
	var err error
	if rec.Date, err = requiredString("date", raw.Date); err != nil {
		return model.Record{}, err
	}
	if rec.Member, err = requiredString("member", raw.Member); err != nil {
		return model.Record{}, err
	}
	if rec.Products, err = requiredInt("products", raw.Products); err != nil {
		return model.Record{}, err
	}
	if rec.Quality, err = requiredInt("quality", raw.Quality); err != nil {
		return model.Record{}, err
	}
	if rec.Errors, err = requiredInt("errors", raw.Errors); err != nil {
		return model.Record{}, err
	}
	if err := rec.Validate(); err != nil {
		return model.Record{}, err
	}

	rec.DailyScore = i.calc.Score(rec.Products, rec.Quality, rec.Errors)
	return rec, nil
}

func requiredString(field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", &model.ValidationError{Field: field, Reason: "is required"}
	}
	return *v, nil
}

func requiredInt(field string, v *json.Number) (int, error) {
	if v == nil {
		return 0, &model.ValidationError{Field: field, Reason: "is required"}
	}
	n, err := strconv.Atoi(v.String())
	if err != nil {
		return 0, &model.ValidationError{Field: field, Reason: "must be an integer"}
	}
	return n, nil
}
