package main

import (
	"fmt"

	"github.com/okian/perfdash/internal/domain/model"
	"github.com/spf13/cobra"
)

// filterFlags are the dashboard filter controls shared by view and export.
type filterFlags struct {
	from       string
	to         string
	employee   string
	qualityMin int
	maxErrors  int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.from, "from", "", "first date to include (YYYY-MM-DD, default earliest in data)")
	fs.StringVar(&f.to, "to", "", "last date to include (YYYY-MM-DD, default latest in data)")
	fs.StringVar(&f.employee, "employee", "", "only this member (exact name)")
	fs.IntVar(&f.qualityMin, "quality-min", 0, "minimum quality rating")
	fs.IntVar(&f.maxErrors, "max-errors", 0, "maximum number of errors")
}

// apply overlays the flags the user set onto base.
func (f *filterFlags) apply(cmd *cobra.Command, base model.Criteria) (model.Criteria, error) {
	c := base
	fs := cmd.Flags()
	for name, v := range map[string]string{"from": f.from, "to": f.to} {
		if fs.Changed(name) && v != "" {
			if _, ok := model.ParseDate(v); !ok {
				return c, fmt.Errorf("--%s: %q is not a YYYY-MM-DD date", name, v)
			}
		}
	}
	if fs.Changed("from") {
		c.DateFrom = f.from
	}
	if fs.Changed("to") {
		c.DateTo = f.to
	}
	if fs.Changed("employee") {
		c.Employee = f.employee
	}
	if fs.Changed("quality-min") {
		c.QualityMin = model.Int(f.qualityMin)
	}
	if fs.Changed("max-errors") {
		c.MaxErrors = model.Int(f.maxErrors)
	}
	return c, nil
}
