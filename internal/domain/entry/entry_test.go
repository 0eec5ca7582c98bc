package entry_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/perfdash/internal/domain/entry"
	"github.com/okian/perfdash/internal/domain/ingest"
	"github.com/okian/perfdash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func form(date, member, products, quality, errs string) entry.Input {
	return entry.Input{Date: date, Member: member, Products: products, Quality: quality, Errors: errs}
}

func TestValidate(t *testing.T) {
	Convey("Given form input", t, func() {
		Convey("When every field is valid", func() {
			rec, err := entry.Validate(form("2025-03-02", "Ahmed", "30", "9", "9"))

			Convey("Then a record should be produced", func() {
				So(err, ShouldBeNil)
				So(rec.Products, ShouldEqual, 30)
				So(rec.Quality, ShouldEqual, 9)
			})
		})

		Convey("When the member is omitted", func() {
			_, err := entry.Validate(form("2025-03-02", "", "1", "5", "0"))
			So(err, ShouldBeNil)
		})

		Convey("When a field is rejected", func() {
			cases := []struct {
				in    entry.Input
				field string
			}{
				{form("", "A", "1", "5", "0"), "date"},
				{form("2025-3-2", "A", "1", "5", "0"), "date"},
				{form("2025-03-02", "A", "-1", "5", "0"), "products"},
				{form("2025-03-02", "A", "abc", "5", "0"), "products"},
				{form("2025-03-02", "A", "1", "0", "0"), "quality"},
				{form("2025-03-02", "A", "1", "11", "0"), "quality"},
				{form("2025-03-02", "A", "1", "5", "-2"), "errors"},
				{form("2025-03-02", "A", "1", "5", ""), "errors"},
			}

			Convey("Then the error should name the field", func() {
				for _, c := range cases {
					_, err := entry.Validate(c.in)
					So(errors.Is(err, entry.ErrValidation), ShouldBeTrue)
					var ve *entry.ValidationError
					So(errors.As(err, &ve), ShouldBeTrue)
					So(ve.Field, ShouldEqual, c.field)
				}
			})
		})
	})
}

func TestBook(t *testing.T) {
	ctx := context.Background()

	Convey("Given a book with one record", t, func() {
		b := entry.NewBook()
		outcome, err := b.Add(ctx, form("2025-03-01", "Gohary", "34", "9", "1"), nil)
		So(err, ShouldBeNil)
		So(outcome, ShouldEqual, entry.Added)

		Convey("Then its daily score should be computed", func() {
			So(b.Records()[0].DailyScore, ShouldEqual, 94)
		})

		Convey("When adding the same date and member with the resolver aborting", func() {
			asked := false
			_, err := b.Add(ctx, form("2025-03-01", "Gohary", "1", "1", "1"), func(existing, incoming model.Record) entry.Decision {
				asked = true
				So(existing.Products, ShouldEqual, 34)
				So(incoming.Products, ShouldEqual, 1)
				return entry.Abort
			})

			Convey("Then it should be rejected and the book unchanged", func() {
				So(asked, ShouldBeTrue)
				So(errors.Is(err, entry.ErrDuplicate), ShouldBeTrue)
				So(b.Len(), ShouldEqual, 1)
				So(b.Records()[0].Products, ShouldEqual, 34)
			})
		})

		Convey("When adding a duplicate without a resolver", func() {
			_, err := b.Add(ctx, form("2025-03-01", "Gohary", "1", "1", "1"), nil)
			So(errors.Is(err, entry.ErrDuplicate), ShouldBeTrue)
		})

		Convey("When adding a duplicate with overwrite", func() {
			outcome, err := b.Add(ctx, form("2025-03-01", "Gohary", "30", "10", "0"), entry.AlwaysOverwrite)

			Convey("Then the record should be replaced in place", func() {
				So(err, ShouldBeNil)
				So(outcome, ShouldEqual, entry.Overwritten)
				So(b.Len(), ShouldEqual, 1)
				So(b.Records()[0].DailyScore, ShouldEqual, 100)
			})
		})

		Convey("When the input is invalid", func() {
			_, err := b.Add(ctx, form("2025-03-01", "Sara", "1", "12", "0"), nil)
			So(errors.Is(err, entry.ErrValidation), ShouldBeTrue)
			So(b.Len(), ShouldEqual, 1)
		})
	})

	Convey("Given a book with three records", t, func() {
		b := entry.NewBook()
		for _, in := range []entry.Input{
			form("2025-03-01", "Gohary", "34", "9", "1"),
			form("2025-03-02", "Lamees", "28", "9", "2"),
			form("2025-03-01", "Sara", "30", "10", "0"),
		} {
			_, err := b.Add(ctx, in, nil)
			So(err, ShouldBeNil)
		}

		Convey("When editing a record in place", func() {
			outcome, err := b.Edit(ctx, 1, form("2025-03-02", "Lamees", "30", "10", "0"), nil)

			Convey("Then its score should be recomputed", func() {
				So(err, ShouldBeNil)
				So(outcome, ShouldEqual, entry.Updated)
				So(b.Records()[1].DailyScore, ShouldEqual, 100)
			})
		})

		Convey("When editing a record onto another record's key", func() {
			in := form("2025-03-01", "Sara", "5", "5", "0")

			Convey("And the resolver aborts", func() {
				_, err := b.Edit(ctx, 0, in, nil)
				So(errors.Is(err, entry.ErrDuplicate), ShouldBeTrue)
				So(b.Len(), ShouldEqual, 3)
			})

			Convey("And the resolver overwrites", func() {
				outcome, err := b.Edit(ctx, 0, in, entry.AlwaysOverwrite)

				Convey("Then the target is replaced and the edited slot removed", func() {
					So(err, ShouldBeNil)
					So(outcome, ShouldEqual, entry.Overwritten)
					recs := b.Records()
					So(recs, ShouldHaveLength, 2)
					So(recs[0].Member, ShouldEqual, "Lamees")
					So(recs[1].Member, ShouldEqual, "Sara")
					So(recs[1].Products, ShouldEqual, 5)
				})

				Convey("And the index should follow the shifted records", func() {
					_, err := b.Add(ctx, form("2025-03-01", "Sara", "1", "1", "1"), nil)
					So(errors.Is(err, entry.ErrDuplicate), ShouldBeTrue)
					_, err = b.Add(ctx, form("2025-03-01", "Gohary", "1", "1", "1"), nil)
					So(err, ShouldBeNil)
				})
			})
		})

		Convey("When deleting a record", func() {
			So(b.Delete(ctx, 0), ShouldBeNil)

			Convey("Then its key should be free again", func() {
				So(b.Len(), ShouldEqual, 2)
				_, err := b.Add(ctx, form("2025-03-01", "Gohary", "1", "1", "1"), nil)
				So(err, ShouldBeNil)
			})
		})

		Convey("When addressing a missing index", func() {
			So(errors.Is(b.Delete(ctx, 3), entry.ErrIndexNotFound), ShouldBeTrue)
			_, err := b.Edit(ctx, -1, form("2025-03-01", "X", "1", "1", "1"), nil)
			So(errors.Is(err, entry.ErrIndexNotFound), ShouldBeTrue)
		})

		Convey("When grouping by date", func() {
			groups := b.GroupByDate()

			Convey("Then dates should be chronological with book indices kept", func() {
				So(groups, ShouldHaveLength, 2)
				So(groups[0].Date, ShouldEqual, "2025-03-01")
				So(groups[0].Entries, ShouldHaveLength, 2)
				So(groups[0].Entries[1].Index, ShouldEqual, 2)
				So(groups[1].Entries[0].Record.Member, ShouldEqual, "Lamees")
			})
		})

		Convey("When naming the saved file", func() {
			name, err := b.FileName()
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "Employee-Performance-2025-03-01.json")
		})
	})
}

func TestFileName(t *testing.T) {
	Convey("Given a tie between dates", t, func() {
		ctx := context.Background()
		b := entry.NewBook()
		for _, in := range []entry.Input{
			form("2025-03-05", "A", "1", "5", "0"),
			form("2025-03-04", "A", "1", "5", "0"),
			form("2025-03-04", "B", "1", "5", "0"),
			form("2025-03-05", "B", "1", "5", "0"),
		} {
			_, err := b.Add(ctx, in, nil)
			So(err, ShouldBeNil)
		}

		Convey("Then the date that reached the count first should win", func() {
			name, err := b.FileName()
			So(err, ShouldBeNil)
			So(name, ShouldEqual, "Employee-Performance-2025-03-04.json")
		})
	})

	Convey("Given an empty book", t, func() {
		_, err := entry.NewBook().FileName()
		So(errors.Is(err, entry.ErrEmptyBook), ShouldBeTrue)
	})
}

func TestWriteAndLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given a saved book", t, func() {
		b := entry.NewBook()
		in := form("2025-03-02", "Ahmed", "30", "9", "9")
		in.ErrorCategory = model.Tags{"Assembly", "Paint"}
		_, err := b.Add(ctx, in, nil)
		So(err, ShouldBeNil)
		_, err = b.Add(ctx, form("2025-03-02", "Sara", "30", "10", "0"), nil)
		So(err, ShouldBeNil)

		var buf bytes.Buffer
		So(b.WriteJSON(&buf), ShouldBeNil)

		Convey("Then the output should be indented by two spaces without derived fields", func() {
			So(buf.String(), ShouldStartWith, "[\n  {\n    \"date\": \"2025-03-02\"")
			So(buf.String(), ShouldNotContainSubstring, "dailyScore")
			So(buf.String(), ShouldNotContainSubstring, "sourceFile")
			So(json.Valid(buf.Bytes()), ShouldBeTrue)
		})

		Convey("When the file is ingested", func() {
			got, err := ingest.New().Parse("saved.json", buf.Bytes())

			Convey("Then the records should round-trip", func() {
				So(err, ShouldBeNil)
				want := b.Records()
				for i := range want {
					want[i].SourceFile = "saved.json"
				}
				So(cmp.Diff(want, got), ShouldBeEmpty)
			})
		})

		Convey("When the file is loaded into another book", func() {
			other := entry.NewBook()
			So(other.Load(ctx, bytes.NewReader(buf.Bytes())), ShouldBeNil)
			So(cmp.Diff(b.Records(), other.Records()), ShouldBeEmpty)
		})
	})

	Convey("Given malformed files", t, func() {
		b := entry.NewBook()
		_, err := b.Add(ctx, form("2025-03-02", "Sara", "30", "10", "0"), nil)
		So(err, ShouldBeNil)

		Convey("Then non-arrays, invalid elements and duplicates are rejected", func() {
			for _, payload := range []string{
				`{"date": "2025-03-02"}`,
				`null`,
				`not json`,
				`[{"date": "2025-03-02", "member": "A", "products": 1, "quality": 0, "errors": 0}]`,
				`[{"date": "2025-03-02", "member": "A", "products": 1, "quality": 5, "errors": 0},
				  {"date": "2025-03-02", "member": "A", "products": 2, "quality": 5, "errors": 0}]`,
			} {
				So(errors.Is(b.Load(ctx, strings.NewReader(payload)), entry.ErrSchema), ShouldBeTrue)
			}

			Convey("And the book should keep its records", func() {
				So(b.Len(), ShouldEqual, 1)
			})
		})
	})
}
