package paging_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/perfdash/internal/domain/model"
	"github.com/okian/perfdash/internal/domain/paging"
	"github.com/okian/perfdash/internal/testrecords"
	. "github.com/smartystreets/goconvey/convey"
)

func members(recs []model.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Member
	}
	return out
}

func TestSort(t *testing.T) {
	Convey("Given the sample records", t, func() {
		recs := testrecords.Sample()

		Convey("When sorting by the default spec", func() {
			got := paging.Sort(recs, model.DefaultSort())

			Convey("Then newest dates should come first with ties in input order", func() {
				So(members(got), ShouldResemble, []string{"Omar", "Ahmed", "Sara", "Gohary", "Lamees"})
			})

			Convey("And the input should be untouched", func() {
				So(members(recs), ShouldResemble, []string{"Gohary", "Lamees", "Ahmed", "Sara", "Omar"})
			})
		})

		Convey("When sorting by composite score ascending", func() {
			got := paging.Sort(recs, model.SortSpec{Column: model.ColumnScore, Direction: model.Asc})

			Convey("Then the composite score should order the rows", func() {
				So(members(got), ShouldResemble, []string{"Omar", "Ahmed", "Lamees", "Sara", "Gohary"})
			})
		})

		Convey("When sorting by score descending", func() {
			got := paging.Sort(recs, model.SortSpec{Column: model.ColumnScore, Direction: model.Desc})
			So(members(got), ShouldResemble, []string{"Gohary", "Sara", "Lamees", "Ahmed", "Omar"})
		})

		Convey("When sorting by products descending", func() {
			got := paging.Sort(recs, model.SortSpec{Column: model.ColumnProducts, Direction: model.Desc})

			Convey("Then equal products should keep input order", func() {
				So(members(got), ShouldResemble, []string{"Gohary", "Ahmed", "Sara", "Lamees", "Omar"})
			})
		})

		Convey("When sorting by quality and errors", func() {
			So(members(paging.Sort(recs, model.SortSpec{Column: model.ColumnQuality, Direction: model.Asc}))[0], ShouldEqual, "Omar")
			So(members(paging.Sort(recs, model.SortSpec{Column: model.ColumnErrors, Direction: model.Desc}))[0], ShouldEqual, "Ahmed")
		})

		Convey("When the column is unknown", func() {
			got := paging.Sort(recs, model.SortSpec{Column: "status", Direction: model.Desc})

			Convey("Then the input order should be preserved", func() {
				So(members(got), ShouldResemble, members(recs))
			})
		})
	})

	Convey("Given members differing only by case", t, func() {
		recs := []model.Record{{Member: "sara"}, {Member: "Ahmed"}, {Member: "nadia"}, {Member: "Mona"}}
		got := paging.Sort(recs, model.SortSpec{Column: model.ColumnMember, Direction: model.Asc})

		Convey("Then names should compare case-insensitively", func() {
			So(members(got), ShouldResemble, []string{"Ahmed", "Mona", "nadia", "sara"})
		})
	})

	Convey("Given dates across a month boundary", t, func() {
		recs := []model.Record{{Date: "2025-02-28", Member: "a"}, {Date: "2025-03-01", Member: "b"}, {Date: "2025-01-31", Member: "c"}}
		got := paging.Sort(recs, model.SortSpec{Column: model.ColumnDate, Direction: model.Asc})
		So(members(got), ShouldResemble, []string{"c", "a", "b"})
	})
}

func TestPaginate(t *testing.T) {
	Convey("Given 23 generated records sorted by score", t, func() {
		recs := testrecords.Generate(23, 11, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		ordered := paging.Sort(recs, model.SortSpec{Column: model.ColumnScore, Direction: model.Desc})
		total := paging.TotalPages(len(ordered), model.DefaultPageSize)

		Convey("Then there should be three pages", func() {
			So(total, ShouldEqual, 3)
		})

		Convey("Then the pages should partition the set exactly", func() {
			var joined []model.Record
			for p := 1; p <= total; p++ {
				page, err := paging.Paginate(ordered, p, model.DefaultPageSize)
				So(err, ShouldBeNil)
				joined = append(joined, page...)
			}
			So(joined, ShouldResemble, ordered)

			last, _ := paging.Paginate(ordered, 3, model.DefaultPageSize)
			So(last, ShouldHaveLength, 3)
		})

		Convey("Then appending to a page should not clobber the next page", func() {
			first, _ := paging.Paginate(ordered, 1, model.DefaultPageSize)
			_ = append(first, model.Record{Member: "intruder"})
			So(ordered[10].Member, ShouldNotEqual, "intruder")
		})

		Convey("When requesting a page outside the range", func() {
			_, errLow := paging.Paginate(ordered, 0, model.DefaultPageSize)
			_, errHigh := paging.Paginate(ordered, 4, model.DefaultPageSize)

			Convey("Then the request should be rejected", func() {
				So(errors.Is(errLow, paging.ErrPageOutOfRange), ShouldBeTrue)
				So(errors.Is(errHigh, paging.ErrPageOutOfRange), ShouldBeTrue)
			})
		})

		Convey("When the page size is invalid", func() {
			_, err := paging.Paginate(ordered, 1, 0)
			So(errors.Is(err, paging.ErrInvalidSize), ShouldBeTrue)
		})
	})

	Convey("Given an empty set", t, func() {
		page, err := paging.Paginate(nil, 1, model.DefaultPageSize)

		Convey("Then page 1 should be an empty page", func() {
			So(err, ShouldBeNil)
			So(page, ShouldBeEmpty)
			So(paging.TotalPages(0, model.DefaultPageSize), ShouldEqual, 0)
		})

		Convey("Then page 2 should be rejected", func() {
			_, err := paging.Paginate(nil, 2, model.DefaultPageSize)
			So(errors.Is(err, paging.ErrPageOutOfRange), ShouldBeTrue)
		})
	})
}
