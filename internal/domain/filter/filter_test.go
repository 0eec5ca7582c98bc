package filter_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/perfdash/internal/domain/filter"
	"github.com/okian/perfdash/internal/domain/model"
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

func TestApply(t *testing.T) {
	Convey("Given the sample records", t, func() {
		recs := testrecords.Sample()

		Convey("When applying empty criteria", func() {
			got := filter.Apply(recs, model.Criteria{})

			Convey("Then every record should be returned in order", func() {
				So(cmp.Diff(recs, got), ShouldBeEmpty)
			})

			Convey("And the result should be a new slice", func() {
				got[0].Member = "changed"
				So(recs[0].Member, ShouldEqual, "Gohary")
			})
		})

		Convey("When requiring quality >= 8 and errors <= 1", func() {
			got := filter.Apply(recs, model.Criteria{QualityMin: model.Int(8), MaxErrors: model.Int(1)})

			Convey("Then only Gohary and Sara should pass", func() {
				So(members(got), ShouldResemble, []string{"Gohary", "Sara"})
			})
		})

		Convey("When bounding the date range inclusively", func() {
			got := filter.Apply(recs, model.Criteria{DateFrom: "2025-03-02", DateTo: "2025-03-02"})

			Convey("Then only records on that day should pass", func() {
				So(members(got), ShouldResemble, []string{"Ahmed", "Sara"})
			})
		})

		Convey("When selecting one employee", func() {
			got := filter.Apply(recs, model.Criteria{Employee: "Lamees"})
			So(members(got), ShouldResemble, []string{"Lamees"})

			Convey("Then the match should be exact", func() {
				So(filter.Apply(recs, model.Criteria{Employee: "lamees"}), ShouldBeEmpty)
			})
		})

		Convey("When no record matches", func() {
			got := filter.Apply(recs, model.Criteria{DateFrom: "2030-01-01"})

			Convey("Then the result should be empty, not nil", func() {
				So(got, ShouldNotBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When filtering twice with the same criteria", func() {
			c := model.Criteria{DateFrom: "2025-03-01", QualityMin: model.Int(9)}
			once := filter.Apply(recs, c)
			twice := filter.Apply(once, c)

			Convey("Then the result should not change", func() {
				So(cmp.Diff(once, twice), ShouldBeEmpty)
			})
		})
	})

	Convey("Given generated records", t, func() {
		recs := testrecords.Generate(200, 7, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

		Convey("Then filtering should be idempotent for many criteria", func() {
			for q := 1; q <= 10; q++ {
				for e := 0; e <= 10; e += 2 {
					c := model.Criteria{QualityMin: model.Int(q), MaxErrors: model.Int(e), DateTo: "2025-01-15"}
					once := filter.Apply(recs, c)
					So(cmp.Diff(once, filter.Apply(once, c)), ShouldBeEmpty)
					for _, r := range once {
						So(filter.Match(r, c), ShouldBeTrue)
					}
				}
			}
		})
	})
}

func TestEmployeesAndBounds(t *testing.T) {
	Convey("Given the sample records", t, func() {
		recs := testrecords.Sample()

		Convey("Then employees should be distinct and sorted", func() {
			So(filter.Employees(recs), ShouldResemble, []string{"Ahmed", "Gohary", "Lamees", "Omar", "Sara"})
		})

		Convey("Then the date bounds should span the data", func() {
			from, to, ok := filter.DateBounds(recs)
			So(ok, ShouldBeTrue)
			So(from, ShouldEqual, "2025-03-01")
			So(to, ShouldEqual, "2025-03-03")
		})

		Convey("Then an empty set should have no bounds", func() {
			_, _, ok := filter.DateBounds(nil)
			So(ok, ShouldBeFalse)
		})
	})
}
