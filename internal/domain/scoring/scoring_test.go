package scoring_test

import (
	"errors"
	"testing"

	"github.com/okian/rollcall/internal/domain/aggregate"
	"github.com/okian/rollcall/internal/domain/model"
	"github.com/okian/rollcall/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// matrix builds a matrix from row-major cells.
func matrix(identities []string, cells [][]uint8) *aggregate.Matrix {
	rows := make([]model.Comment, len(cells))
	for i := range rows {
		rows[i] = model.Comment{ThreadID: 1, CommentID: int64(i + 1)}
	}
	m := aggregate.NewMatrix(identities, rows)
	for r, row := range cells {
		for c, v := range row {
			if v == 1 {
				m.Mark(r, c)
			}
		}
	}
	return m
}

func TestScore(t *testing.T) {
	ids := []string{"id1", "id2"}

	Convey("Given a machine matrix and a ground truth", t, func() {
		machine := matrix(ids, [][]uint8{{1, 0}, {0, 1}})
		truth := matrix(ids, [][]uint8{{1, 0}, {1, 0}})

		Convey("When scoring", func() {
			r, err := scoring.Score(machine, truth)
			So(err, ShouldBeNil)

			Convey("Then each identity gets its confusion counts", func() {
				id1, ok := r.For("id1")
				So(ok, ShouldBeTrue)
				So(id1, ShouldResemble, scoring.Confusion{TruePositive: 1, FalseNegative: 1})
				So(id1.Precision().String(), ShouldEqual, "1")
				So(id1.Recall().String(), ShouldEqual, "0.5")

				id2, _ := r.For("id2")
				So(id2, ShouldResemble, scoring.Confusion{FalsePositive: 1})
				So(id2.Precision().Value, ShouldEqual, 0)
				So(id2.Precision().Defined, ShouldBeTrue)
				So(id2.Recall().Defined, ShouldBeFalse)
				So(id2.Recall().String(), ShouldEqual, "undefined")
			})

			Convey("Then totals sum the counts before dividing", func() {
				So(r.Total, ShouldResemble, scoring.Confusion{TruePositive: 1, FalsePositive: 1, FalseNegative: 1})
				So(r.Total.Precision().Value, ShouldEqual, 0.5)
				So(r.Total.Recall().Value, ShouldEqual, 0.5)
				So(r.Comments, ShouldEqual, 2)
			})

			Convey("Then an unknown identity is reported as such", func() {
				_, ok := r.For("id3")
				So(ok, ShouldBeFalse)
			})
		})
	})

	Convey("Given identical matrices", t, func() {
		m := matrix(ids, [][]uint8{{1, 1}, {0, 0}, {1, 0}})
		r, err := scoring.Score(m, matrix(ids, [][]uint8{{1, 1}, {0, 0}, {1, 0}}))

		Convey("Then precision and recall are perfect", func() {
			So(err, ShouldBeNil)
			So(r.Total.Precision().String(), ShouldEqual, "1")
			So(r.Total.Recall().String(), ShouldEqual, "1")
		})
	})

	Convey("Given empty matrices", t, func() {
		r, err := scoring.Score(matrix(ids, nil), matrix(ids, nil))

		Convey("Then every ratio is undefined", func() {
			So(err, ShouldBeNil)
			So(r.Total.Precision().Defined, ShouldBeFalse)
			So(r.Total.Recall().Defined, ShouldBeFalse)
		})
	})

	Convey("Given matrices of different shapes", t, func() {
		Convey("When the row counts differ", func() {
			_, err := scoring.Score(matrix(ids, [][]uint8{{1, 0}}), matrix(ids, nil))
			So(errors.Is(err, scoring.ErrShapeMismatch), ShouldBeTrue)
		})

		Convey("When the identity columns differ", func() {
			_, err := scoring.Score(matrix(ids, nil), matrix([]string{"id2", "id1"}, nil))
			So(errors.Is(err, scoring.ErrShapeMismatch), ShouldBeTrue)
		})
	})
}
