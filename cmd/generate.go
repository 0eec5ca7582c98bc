package main

import (
	"fmt"
	"time"

	"github.com/okian/perfdash/internal/domain/entry"
	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/testrecords"
	"github.com/spf13/cobra"
)

// Default generator settings.
const (
	defaultGenerateRecords = 40
	defaultGenerateSeed    = 1
)

type generateFlags struct {
	records int
	seed    uint64
	start   string
	book    string
	out     string
}

func newGenerateCmd(c *cli) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic performance file for demos and load tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, c, f)
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&f.records, "records", defaultGenerateRecords, "number of records")
	fs.Uint64Var(&f.seed, "seed", defaultGenerateSeed, "random seed; equal seeds give equal files")
	fs.StringVar(&f.start, "start", time.Now().Format(model.DateLayout), "first date (YYYY-MM-DD)")
	fs.StringVar(&f.book, "book", "", "output file (default named after the most common date)")
	fs.StringVar(&f.out, "out", ".", "output directory when --book is not set")
	return cmd
}

func runGenerate(cmd *cobra.Command, c *cli, f *generateFlags) error {
	if f.records <= 0 {
		return fmt.Errorf("--records must be positive, got %d", f.records)
	}
	start, ok := model.ParseDate(f.start)
	if !ok {
		return fmt.Errorf("--start: %q is not a YYYY-MM-DD date", f.start)
	}

	ef := &entryFlags{book: f.book}
	b := entry.NewBook(entry.WithCalculator(c.calculator()), entry.WithLogger(c.log))
	for _, r := range testrecords.Generate(f.records, f.seed, start) {
		if _, err := b.Add(cmd.Context(), entry.InputOf(r), nil); err != nil {
			return err
		}
	}
	return ef.save(cmd, c, b, f.out)
}
