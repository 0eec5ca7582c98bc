package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/okian/perfdash/internal/domain/entry"
	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/pkg/logger"
	"github.com/spf13/cobra"
)

type entryFlags struct {
	book         string
	out          string
	onConflict   string
	date         string
	member       string
	products     string
	quality      string
	errors       string
	categories   []string
	descriptions []string
}

func newEntryCmd(c *cli) *cobra.Command {
	f := &entryFlags{}
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Maintain a hand-entered performance file",
	}
	cmd.PersistentFlags().StringVar(&f.book, "book", "", "performance file to read and update")

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEntryAdd(cmd, c, f)
		},
	}
	f.registerRecord(add)
	add.Flags().StringVar(&f.out, "out", ".", "directory for a new file when --book is not set")

	edit := &cobra.Command{
		Use:   "edit INDEX",
		Short: "Change the record at INDEX; unset fields keep their values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntryEdit(cmd, c, f, args[0])
		},
	}
	f.registerRecord(edit)

	del := &cobra.Command{
		Use:   "delete INDEX",
		Short: "Delete the record at INDEX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntryDelete(cmd, c, f, args[0])
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List records grouped by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEntryList(cmd, c, f)
		},
	}

	cmd.AddCommand(add, edit, del, list)
	return cmd
}

func (f *entryFlags) registerRecord(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.date, "date", "", "record date (YYYY-MM-DD)")
	flags.StringVar(&f.member, "member", "", "team member")
	flags.StringVar(&f.products, "products", "", "units produced")
	flags.StringVar(&f.quality, "quality", "", "quality rating 1-10")
	flags.StringVar(&f.errors, "errors", "", "number of errors")
	flags.StringSliceVar(&f.categories, "category", nil, "error category (repeatable)")
	flags.StringSliceVar(&f.descriptions, "description", nil, "error description (repeatable)")
	flags.StringVar(&f.onConflict, "on-conflict", "abort", "when the date and member already exist: abort or overwrite")
}

// overlay copies the record flags the user set onto in.
func (f *entryFlags) overlay(cmd *cobra.Command, in entry.Input) entry.Input {
	flags := cmd.Flags()
	set := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	set("date", &in.Date, f.date)
	set("member", &in.Member, f.member)
	set("products", &in.Products, f.products)
	set("quality", &in.Quality, f.quality)
	set("errors", &in.Errors, f.errors)
	if flags.Changed("category") {
		in.ErrorCategory = model.Tags(f.categories)
	}
	if flags.Changed("description") {
		in.ErrorDescription = model.Tags(f.descriptions)
	}
	return in
}

func (f *entryFlags) resolver(cmd *cobra.Command) (entry.Resolver, error) {
	switch f.onConflict {
	case "abort":
		return func(existing, _ model.Record) entry.Decision {
			cmd.PrintErrf("%s already has a record on %s\n", existing.Member, existing.Date)
			return entry.Abort
		}, nil
	case "overwrite":
		return entry.AlwaysOverwrite, nil
	default:
		return nil, fmt.Errorf("unknown --on-conflict %q (want abort or overwrite)", f.onConflict)
	}
}

// openBook loads the --book file. A missing file yields an empty book.
func (f *entryFlags) openBook(cmd *cobra.Command, c *cli) (*entry.Book, error) {
	b := entry.NewBook(entry.WithCalculator(c.calculator()), entry.WithLogger(c.log))
	if f.book == "" {
		return b, nil
	}
	file, err := os.Open(f.book)
	if errors.Is(err, fs.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	if err := b.Load(cmd.Context(), file); err != nil {
		return nil, fmt.Errorf("%s: %w", f.book, err)
	}
	return b, nil
}

func (f *entryFlags) save(cmd *cobra.Command, c *cli, b *entry.Book, dir string) error {
	path := f.book
	if path == "" {
		name, err := b.FileName()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, name)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := b.WriteJSON(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	c.log.Info(cmd.Context(), "performance file saved", logger.String("path", path), logger.Int("records", b.Len()))
	cmd.Println(path)
	return nil
}

func runEntryAdd(cmd *cobra.Command, c *cli, f *entryFlags) error {
	resolve, err := f.resolver(cmd)
	if err != nil {
		return err
	}
	b, err := f.openBook(cmd, c)
	if err != nil {
		return err
	}
	outcome, err := b.Add(cmd.Context(), f.overlay(cmd, entry.Input{}), resolve)
	if err != nil {
		return err
	}
	cmd.PrintErrf("record %s\n", outcome)
	return f.save(cmd, c, b, f.out)
}

func runEntryEdit(cmd *cobra.Command, c *cli, f *entryFlags, arg string) error {
	if f.book == "" {
		return errors.New("--book is required")
	}
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("INDEX must be an integer: %w", err)
	}
	resolve, err := f.resolver(cmd)
	if err != nil {
		return err
	}
	b, err := f.openBook(cmd, c)
	if err != nil {
		return err
	}
	records := b.Records()
	if idx < 0 || idx >= len(records) {
		return fmt.Errorf("%w: %d", entry.ErrIndexNotFound, idx)
	}
	outcome, err := b.Edit(cmd.Context(), idx, f.overlay(cmd, entry.InputOf(records[idx])), resolve)
	if err != nil {
		return err
	}
	cmd.PrintErrf("record %s\n", outcome)
	return f.save(cmd, c, b, "")
}

func runEntryDelete(cmd *cobra.Command, c *cli, f *entryFlags, arg string) error {
	if f.book == "" {
		return errors.New("--book is required")
	}
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("INDEX must be an integer: %w", err)
	}
	b, err := f.openBook(cmd, c)
	if err != nil {
		return err
	}
	if err := b.Delete(cmd.Context(), idx); err != nil {
		return err
	}
	return f.save(cmd, c, b, "")
}

func runEntryList(cmd *cobra.Command, c *cli, f *entryFlags) error {
	if f.book == "" {
		return errors.New("--book is required")
	}
	b, err := f.openBook(cmd, c)
	if err != nil {
		return err
	}
	groups := b.GroupByDate()
	if len(groups) == 0 {
		cmd.Println("No records.")
		return nil
	}
	for _, g := range groups {
		cmd.Println(titleStyle.Render(g.Date))
		data := make([][]string, len(g.Entries))
		for i, e := range g.Entries {
			r := e.Record
			data[i] = []string{
				strconv.Itoa(e.Index), r.Member, strconv.Itoa(r.Products), strconv.Itoa(r.Quality),
				strconv.Itoa(r.Errors), strconv.Itoa(r.DailyScore), r.ErrorCategory.String(), r.ErrorDescription.String(),
			}
		}
		cmd.Println(table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "Member", "Products", "Quality", "Errors", "Daily Score", "Categories", "Descriptions").
			Rows(data...).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			String())
	}
	return nil
}
