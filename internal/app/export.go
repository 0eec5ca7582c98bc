package app

import (
	"context"
	"fmt"
	"io"

	"github.com/okian/perfdash/internal/adapters/xlsx"
	"github.com/okian/perfdash/internal/domain/export"
	"github.com/okian/perfdash/internal/domain/filter"
	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/paging"
	"github.com/okian/perfdash/pkg/logger"
	"github.com/okian/perfdash/pkg/metrics"
)

// Export kinds, used as metric labels.
const (
	KindAll      = "all"
	KindEmployee = "employee"
)

// ExportAll writes the filtered set, in table order, as a one-sheet
// workbook. It returns the suggested file name.
func (s *Session) ExportAll(ctx context.Context, w io.Writer) (string, error) {
	s.mu.RLock()
	c, spec := s.criteria, s.sort
	recs := paging.Sort(filter.Apply(s.records, c), spec)
	s.mu.RUnlock()

	if len(recs) == 0 {
		return "", ErrNothingToExport
	}
	sheet, err := export.Project(recs, export.Context{Criteria: c})
	if err != nil {
		return "", fmt.Errorf("project report: %w", err)
	}
	if err := xlsx.Write(w, xlsx.NamedSheet{Name: "Performance Report", Sheet: sheet}); err != nil {
		return "", err
	}

	name := export.FileNameAll(c)
	metrics.RecordExport(KindAll)
	s.logger.Info(ctx, "exported report", logger.String("session", s.id),
		logger.String("file", name), logger.Int("records", len(recs)))
	return name, nil
}

// ExportEmployee writes one member's filtered records as a workbook with a
// sheet per month. It returns the suggested file name.
func (s *Session) ExportEmployee(ctx context.Context, member string, w io.Writer) (string, error) {
	s.mu.RLock()
	c := s.criteria
	c.Employee = member
	recs := paging.Sort(filter.Apply(s.records, c), model.SortSpec{Column: model.ColumnDate, Direction: model.Asc})
	s.mu.RUnlock()

	if member == "" || len(recs) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNothingToExport, member)
	}

	months := export.ByMonth(recs)
	sheets := make([]xlsx.NamedSheet, 0, len(months))
	for _, g := range months {
		sheet, err := export.Project(g.Records, export.Context{Employee: member, Criteria: c})
		if err != nil {
			return "", fmt.Errorf("project %s: %w", g.Month, err)
		}
		sheets = append(sheets, xlsx.NamedSheet{Name: g.Month, Sheet: sheet})
	}
	if err := xlsx.Write(w, sheets...); err != nil {
		return "", err
	}

	name := export.FileNameEmployee(member)
	metrics.RecordExport(KindEmployee)
	s.logger.Info(ctx, "exported employee report", logger.String("session", s.id),
		logger.String("member", member), logger.String("file", name), logger.Int("sheets", len(sheets)))
	return name, nil
}
