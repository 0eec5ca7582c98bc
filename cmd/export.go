package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/perfdash/pkg/logger"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	filters filterFlags
	member  string
	out     string
}

func newExportCmd(c *cli) *cobra.Command {
	f := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export FILE...",
		Short: "Write the filtered records as an Excel report",
		Long: `Without --report-for, writes every filtered record to one sheet.
With --report-for NAME, writes that member's filtered records with one
sheet per month.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, c, f, args)
		},
	}
	f.filters.register(cmd)
	cmd.Flags().StringVar(&f.member, "report-for", "", "write a per-month report for this member")
	cmd.Flags().StringVar(&f.out, "out", ".", "output directory")
	return cmd
}

func runExport(cmd *cobra.Command, c *cli, f *exportFlags, args []string) error {
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

	var (
		buf  bytes.Buffer
		name string
	)
	if f.member != "" {
		name, err = s.ExportEmployee(ctx, f.member, &buf)
	} else {
		name, err = s.ExportAll(ctx, &buf)
	}
	if err != nil {
		return err
	}

	path := filepath.Join(f.out, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // reports are meant to be shared
		return fmt.Errorf("write %s: %w", path, err)
	}
	c.log.Info(ctx, "report written", logger.String("path", path), logger.Int("bytes", buf.Len()))
	cmd.Println(path)
	return nil
}
