package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/okian/perfdash/internal/app"
	"github.com/okian/perfdash/internal/domain/ingest"
	"github.com/okian/perfdash/internal/domain/model"
	"github.com/spf13/cobra"
)

type viewFlags struct {
	filters filterFlags
	sort    string
	order   string
	page    int
	json    bool
}

func newViewCmd(c *cli) *cobra.Command {
	f := &viewFlags{}
	cmd := &cobra.Command{
		Use:   "view FILE...",
		Short: "Render the dashboard for one or more performance files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, c, f, args)
		},
	}
	f.filters.register(cmd)
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort column: "+columnNames())
	cmd.Flags().StringVar(&f.order, "order", "", "sort direction: asc or desc")
	cmd.Flags().IntVar(&f.page, "page", 1, "table page")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the view as JSON")
	return cmd
}

func runView(cmd *cobra.Command, c *cli, f *viewFlags, args []string) error {
	ctx := cmd.Context()
	s, err := loadSession(cmd, c, args)
	if err != nil {
		return err
	}

	criteria, err := f.filters.apply(cmd, s.Criteria())
	if err != nil {
		return err
	}
	s.ApplyFilter(ctx, criteria)

	spec, err := sortSpec(f.sort, f.order)
	if err != nil {
		return err
	}
	s.SetSort(spec)

	if err := s.ChangePage(ctx, f.page); err != nil {
		return err
	}

	view, err := s.View(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}
	_, err = fmt.Fprint(out, renderDashboard(view))
	return err
}

// loadSession ingests the files named on the command line. Rejected files
// are reported on stderr; the command fails only if nothing was admitted.
func loadSession(cmd *cobra.Command, c *cli, paths []string) (*app.Session, error) {
	sources := make([]ingest.Source, len(paths))
	for i, p := range paths {
		sources[i] = ingest.FileSource(p)
	}

	s := app.New(
		app.WithPageSize(c.cfg.PageSize),
		app.WithIngestor(c.ingestor()),
		app.WithLogger(c.log),
	)
	res, err := s.Load(cmd.Context(), sources...)
	for _, o := range res.Failed() {
		cmd.PrintErrf("skipped %s: %v\n", o.Source, o.Err)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// sortSpec starts from the default order. Naming a column behaves like
// clicking its header once; order overrides the direction.
func sortSpec(column, order string) (model.SortSpec, error) {
	spec := model.DefaultSort()
	if column != "" {
		col, ok := model.ParseColumn(column)
		if !ok {
			return spec, fmt.Errorf("unknown sort column %q (want %s)", column, columnNames())
		}
		spec = spec.Toggle(col)
	}
	switch strings.ToLower(order) {
	case "":
	case string(model.Asc):
		spec.Direction = model.Asc
	case string(model.Desc):
		spec.Direction = model.Desc
	default:
		return spec, fmt.Errorf("unknown sort order %q (want asc or desc)", order)
	}
	return spec, nil
}

func columnNames() string {
	names := make([]string, len(model.Columns))
	for i, c := range model.Columns {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
