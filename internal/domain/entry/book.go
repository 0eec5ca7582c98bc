// Package entry keeps the hand-entered record list behind the data-entry
// form: validated upserts keyed by (date, member), grouping for display and
// the JSON file the dashboard later ingests.
package entry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/scoring"
	"github.com/okian/perfdash/pkg/logger"
)

// Decision is a Resolver's answer to a key collision.
type Decision int

const (
	// Abort keeps the existing record and rejects the incoming one.
	Abort Decision = iota
	// Overwrite replaces the existing record.
	Overwrite
)

// Resolver is consulted when an incoming record collides with an existing
// one. A nil Resolver aborts.
type Resolver func(existing, incoming model.Record) Decision

// AlwaysOverwrite is a Resolver that replaces on every collision.
func AlwaysOverwrite(model.Record, model.Record) Decision { return Overwrite }

// Outcome reports what a mutation did.
type Outcome int

const (
	Added Outcome = iota
	Updated
	Overwritten
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Overwritten:
		return "overwritten"
	default:
		return "unknown"
	}
}

// Book is an ordered record list with a unique (date, member) index.
type Book struct {
	mu      sync.RWMutex
	records []model.Record
	index   map[model.Key]int
	calc    *scoring.Calculator
	logger  logger.Logger
}

// NewBook creates an empty book.
func NewBook(opts ...Option) *Book {
	b := &Book{
		index:  make(map[model.Key]int),
		calc:   scoring.NewCalculator(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add validates in and appends it. A key collision is settled by resolve.
func (b *Book) Add(ctx context.Context, in Input, resolve Resolver) (Outcome, error) {
	rec, err := b.prepare(in)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if at, exists := b.index[rec.Key()]; exists {
		if !decide(resolve, b.records[at], rec) {
			return 0, fmt.Errorf("%w: %s on %s", ErrDuplicate, rec.Member, rec.Date)
		}
		b.records[at] = rec
		b.logger.Info(ctx, "record overwritten", logger.String("date", rec.Date), logger.String("member", rec.Member))
		return Overwritten, nil
	}

	b.records = append(b.records, rec)
	b.index[rec.Key()] = len(b.records) - 1
	b.logger.Debug(ctx, "record added", logger.String("date", rec.Date), logger.String("member", rec.Member))
	return Added, nil
}

// Edit replaces the record at idx. Moving it onto another record's key asks
// resolve; on Overwrite the other record is replaced and idx is removed.
func (b *Book) Edit(ctx context.Context, idx int, in Input, resolve Resolver) (Outcome, error) {
	rec, err := b.prepare(in)
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if idx < 0 || idx >= len(b.records) {
		return 0, fmt.Errorf("%w: %d", ErrIndexNotFound, idx)
	}

	at, exists := b.index[rec.Key()]
	if !exists || at == idx {
		delete(b.index, b.records[idx].Key())
		b.records[idx] = rec
		b.index[rec.Key()] = idx
		b.logger.Debug(ctx, "record updated", logger.Int("index", idx))
		return Updated, nil
	}

	if !decide(resolve, b.records[at], rec) {
		return 0, fmt.Errorf("%w: %s on %s", ErrDuplicate, rec.Member, rec.Date)
	}
	b.records[at] = rec
	b.removeLocked(idx)
	b.logger.Info(ctx, "record overwritten by edit", logger.Int("index", idx), logger.String("date", rec.Date), logger.String("member", rec.Member))
	return Overwritten, nil
}

// Delete removes the record at idx.
func (b *Book) Delete(ctx context.Context, idx int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if idx < 0 || idx >= len(b.records) {
		return fmt.Errorf("%w: %d", ErrIndexNotFound, idx)
	}
	b.removeLocked(idx)
	b.logger.Debug(ctx, "record deleted", logger.Int("index", idx))
	return nil
}

// Records returns a copy of the records in entry order.
func (b *Book) Records() []model.Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.records)
}

// Len returns the number of records.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

// fileRecord is the on-disk shape. Derived fields are not written.
type fileRecord struct {
	Date             string     `json:"date"`
	Member           string     `json:"member"`
	Products         int        `json:"products"`
	Quality          int        `json:"quality"`
	Errors           int        `json:"errors"`
	ErrorCategory    model.Tags `json:"errorCategory,omitempty"`
	ErrorDescription model.Tags `json:"errorDescription,omitempty"`
}

// Load replaces the book with the records in r. Every element is validated
// and keys must be unique; on any failure the book is left untouched.
func (b *Book) Load(ctx context.Context, r io.Reader) error {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	var elems []fileRecord
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		return ErrSchema
	}

	records := make([]model.Record, 0, len(elems))
	index := make(map[model.Key]int, len(elems))
	for i, e := range elems {
		rec := model.Record{
			Date:             e.Date,
			Member:           e.Member,
			Products:         e.Products,
			Quality:          e.Quality,
			Errors:           e.Errors,
			ErrorCategory:    e.ErrorCategory,
			ErrorDescription: e.ErrorDescription,
		}
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("%w: element %d: %w", ErrSchema, i, err)
		}
		if _, dup := index[rec.Key()]; dup {
			return fmt.Errorf("%w: element %d: %w", ErrSchema, i, ErrDuplicate)
		}
		rec.DailyScore = b.calc.Score(rec.Products, rec.Quality, rec.Errors)
		index[rec.Key()] = len(records)
		records = append(records, rec)
	}

	b.mu.Lock()
	b.records, b.index = records, index
	b.mu.Unlock()
	b.logger.Info(ctx, "book loaded", logger.Int("records", len(records)))
	return nil
}

// WriteJSON writes the book as a JSON array indented by two spaces.
func (b *Book) WriteJSON(w io.Writer) error {
	b.mu.RLock()
	out := make([]fileRecord, len(b.records))
	for i, r := range b.records {
		out[i] = fileRecord{
			Date:             r.Date,
			Member:           r.Member,
			Products:         r.Products,
			Quality:          r.Quality,
			Errors:           r.Errors,
			ErrorCategory:    r.ErrorCategory,
			ErrorDescription: r.ErrorDescription,
		}
	}
	b.mu.RUnlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// FileName names the saved file after the most common record date. Ties go
// to the date that reached the winning count first.
func (b *Book) FileName() (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.records) == 0 {
		return "", ErrEmptyBook
	}
	counts := make(map[string]int)
	var best string
	var bestCount int
	for _, r := range b.records {
		counts[r.Date]++
		if counts[r.Date] > bestCount {
			best, bestCount = r.Date, counts[r.Date]
		}
	}
	return "Employee-Performance-" + best + ".json", nil
}

// Entry is a record together with its position in the book.
type Entry struct {
	Index  int
	Record model.Record
}

// DateGroup lists the entries recorded on one date.
type DateGroup struct {
	Date    string
	Entries []Entry
}

// GroupByDate groups entries by date, dates in chronological order and
// entries in book order.
func (b *Book) GroupByDate() []DateGroup {
	b.mu.RLock()
	defer b.mu.RUnlock()

	pos := make(map[string]int)
	var groups []DateGroup
	for i, r := range b.records {
		g, ok := pos[r.Date]
		if !ok {
			g = len(groups)
			pos[r.Date] = g
			groups = append(groups, DateGroup{Date: r.Date})
		}
		groups[g].Entries = append(groups[g].Entries, Entry{Index: i, Record: r})
	}
	slices.SortStableFunc(groups, func(a, b DateGroup) int {
		return model.CompareDates(a.Date, b.Date)
	})
	return groups
}

func (b *Book) prepare(in Input) (model.Record, error) {
	rec, err := Validate(in)
	if err != nil {
		return model.Record{}, err
	}
	rec.DailyScore = b.calc.Score(rec.Products, rec.Quality, rec.Errors)
	return rec, nil
}

// removeLocked drops idx and reindexes the records after it.
func (b *Book) removeLocked(idx int) {
	delete(b.index, b.records[idx].Key())
	b.records = slices.Delete(b.records, idx, idx+1)
	for i := idx; i < len(b.records); i++ {
		b.index[b.records[i].Key()] = i
	}
}

func decide(resolve Resolver, existing, incoming model.Record) bool {
	return resolve != nil && resolve(existing, incoming) == Overwrite
}
