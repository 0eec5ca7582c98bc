// Package app holds the dashboard session: the loaded record set and the
// filter, sort and page state that every view is derived from.
package app

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/okian/perfdash/internal/domain/aggregate"
	"github.com/okian/perfdash/internal/domain/filter"
	"github.com/okian/perfdash/internal/domain/ingest"
	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/paging"
	"github.com/okian/perfdash/internal/domain/types"
	"github.com/okian/perfdash/pkg/logger"
	"github.com/okian/perfdash/pkg/metrics"
)

// Session owns the full record set and the view state.
type Session struct {
	mu sync.RWMutex

	id       string
	records  []model.Record
	criteria model.Criteria
	sort     model.SortSpec
	page     int
	pageSize int

	ingestor *ingest.Ingestor
	logger   logger.Logger

	lastView *types.Dashboard
	// beforeRender runs inside the recovered render section; tests use it.
	beforeRender func()
}

// New constructs an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		sort:     model.DefaultSort(),
		page:     1,
		pageSize: model.DefaultPageSize,
		ingestor: ingest.New(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID identifies the session in logs and views.
func (s *Session) ID() string { return s.id }

// Load ingests sources and, when at least one record is admitted, replaces
// the record set, defaults the date filter to the data's bounds and returns
// to page 1. When nothing is admitted the previous state is kept.
func (s *Session) Load(ctx context.Context, sources ...ingest.Source) (ingest.Result, error) {
	res, err := s.ingestor.Load(ctx, sources...)
	if err != nil {
		s.logger.Warn(ctx, "load rejected, keeping current records",
			logger.String("session", s.id), logger.Error(err))
		return res, err
	}

	c := model.Criteria{}
	if from, to, ok := filter.DateBounds(res.Records); ok {
		c.DateFrom, c.DateTo = from, to
	}

	s.mu.Lock()
	s.records = res.Records
	s.criteria = c
	s.page = 1
	s.mu.Unlock()

	s.logger.Info(ctx, "records loaded",
		logger.String("session", s.id),
		logger.Int("records", len(res.Records)),
		logger.Int("failed_files", len(res.Failed())))
	return res, nil
}

// Records returns the full record set.
func (s *Session) Records() []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Employees lists the distinct members of the full record set.
func (s *Session) Employees() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter.Employees(s.records)
}

// Criteria returns the active filter.
func (s *Session) Criteria() model.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Sort returns the active sort.
func (s *Session) Sort() model.SortSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sort
}

// Page returns the current 1-based page.
func (s *Session) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// ApplyFilter replaces the criteria and returns to page 1.
func (s *Session) ApplyFilter(ctx context.Context, c model.Criteria) {
	s.mu.Lock()
	s.criteria = c
	s.page = 1
	s.mu.Unlock()
	s.logger.Debug(ctx, "filter applied", logger.String("session", s.id), logger.Bool("unconstrained", c.IsZero()))
}

// SortBy toggles the sort on column. The page is kept.
func (s *Session) SortBy(ctx context.Context, column model.Column) model.SortSpec {
	s.mu.Lock()
	s.sort = s.sort.Toggle(column)
	spec := s.sort
	s.mu.Unlock()
	s.logger.Debug(ctx, "sort changed", logger.String("session", s.id),
		logger.String("column", string(spec.Column)), logger.String("direction", string(spec.Direction)))
	return spec
}

// SetSort replaces the sort outright. The page is kept.
func (s *Session) SetSort(spec model.SortSpec) {
	s.mu.Lock()
	s.sort = spec
	s.mu.Unlock()
}

// ChangePage moves to page p of the filtered set. Out-of-range pages are
// rejected and the current page is kept.
func (s *Session) ChangePage(ctx context.Context, p int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(filter.Apply(s.records, s.criteria))
	if !(n == 0 && p == 1) {
		if err := paging.CheckPage(n, p, s.pageSize); err != nil {
			s.logger.Debug(ctx, "page rejected", logger.String("session", s.id), logger.Int("page", p))
			return err
		}
	}
	s.page = p
	return nil
}

// View derives the dashboard from the current state. A failure inside the
// pipeline is logged and returned as ErrRender; the previous view remains
// available from LastView.
func (s *Session) View(ctx context.Context) (view types.Dashboard, err error) {
	s.mu.RLock()
	records, criteria, spec, page, size := s.records, s.criteria, s.sort, s.page, s.pageSize
	hook := s.beforeRender
	s.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRender, r)
		}
		if err != nil {
			metrics.RecordRenderError()
			s.logger.Error(ctx, "view failed", logger.String("session", s.id), logger.Error(err))
			view = types.Dashboard{}
		}
	}()

	if hook != nil {
		hook()
	}
	view, err = render(records, criteria, spec, page, size)
	if err != nil {
		return types.Dashboard{}, fmt.Errorf("%w: %w", ErrRender, err)
	}
	view.SessionID = s.id

	s.mu.Lock()
	last := view
	s.lastView = &last
	s.mu.Unlock()
	return view, nil
}

// LastView returns the most recent successful view.
func (s *Session) LastView() (types.Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastView == nil {
		return types.Dashboard{}, false
	}
	return *s.lastView, true
}

func render(records []model.Record, c model.Criteria, spec model.SortSpec, page, size int) (types.Dashboard, error) {
	filtered := filter.Apply(records, c)
	metrics.UpdateFilteredRecords(len(filtered))

	ordered := paging.Sort(filtered, spec)
	rows, err := paging.Paginate(ordered, page, size)
	if err != nil {
		return types.Dashboard{}, err
	}

	summary, ok := aggregate.Summarize(filtered)
	return types.Dashboard{
		Filter:    types.NewFilter(c),
		Summary:   types.NewSummary(summary, ok),
		Employees: types.NewEmployeeRows(aggregate.Employees(filtered)),
		Table: types.Table{
			Rows:         types.NewTableRows(rows),
			Page:         page,
			PageSize:     size,
			TotalPages:   paging.TotalPages(len(filtered), size),
			TotalRecords: len(filtered),
			SortColumn:   string(spec.Column),
			SortDesc:     spec.Direction == model.Desc,
		},
		Products: aggregate.Trend(filtered, aggregate.Products),
		Scores:   aggregate.Trend(filtered, aggregate.DailyScore),
	}, nil
}
