package tabular_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/rollcall/internal/adapters/tabular"
	"github.com/okian/rollcall/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func read(name, body string) (*tabular.Table, error) {
	return tabular.Read(context.Background(), name, strings.NewReader(body))
}

func TestRead(t *testing.T) {
	Convey("Given a CSV with a byte order mark and padded headers", t, func() {
		table, err := read("c.csv", "\ufeffglobal_ID , local_ID,comment\n1,2,\"hi, there\"\n")
		So(err, ShouldBeNil)

		Convey("Then headers are normalised and values trimmed", func() {
			So(table.Has("global_ID"), ShouldBeTrue)
			So(table.Len(), ShouldEqual, 1)
			So(table.Value(0, "comment"), ShouldEqual, "hi, there")
			So(table.Value(0, "missing"), ShouldEqual, "")
			So(table.Value(5, "comment"), ShouldEqual, "")
		})
	})

	Convey("Given an empty file", t, func() {
		_, err := read("empty.csv", "")
		So(errors.Is(err, tabular.ErrFormat), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "empty.csv")
	})

	Convey("Given a cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := tabular.Read(ctx, "c.csv", strings.NewReader("a\n1\n"))
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})

	Convey("Given a missing file", t, func() {
		_, err := tabular.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
		So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
	})
}

func TestRequire(t *testing.T) {
	Convey("Given a table missing columns", t, func() {
		table := tabular.New("c.csv", []string{"global_ID", "text"}, nil)
		err := table.Require("global_ID", "local_ID", "comment")

		Convey("Then every missing column is named", func() {
			var fe *tabular.FormatError
			So(errors.As(err, &fe), ShouldBeTrue)
			So(fe.File, ShouldEqual, "c.csv")
			So(fe.Columns, ShouldResemble, []string{"local_ID", "comment"})
			So(err.Error(), ShouldEqual, "format error in c.csv: missing required columns [local_ID, comment]")
		})
	})

	Convey("Given a table whose header sits in a later row", t, func() {
		table := tabular.New("c.csv", []string{"exported", "", ""}, [][]string{
			{"", "", ""},
			{"global_ID", "local_ID", "comment"},
		})
		err := table.Require("global_ID", "local_ID", "comment")
		So(errors.Is(err, tabular.ErrFormat), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "header found in row 3 instead of the first row")
	})
}

func TestInt(t *testing.T) {
	Convey("Given numeric cells", t, func() {
		table := tabular.New("c.csv", []string{"n"}, [][]string{{"12"}, {"12.0"}, {"1.5"}, {"x"}})

		n, err := table.Int(0, "n")
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 12)

		n, err = table.Int(1, "n")
		So(err, ShouldBeNil)
		So(n, ShouldEqual, 12)

		_, err = table.Int(2, "n")
		So(errors.Is(err, tabular.ErrFormat), ShouldBeTrue)

		_, err = table.Int(3, "n")
		So(err.Error(), ShouldContainSubstring, "row 5")
	})
}

func TestWrite(t *testing.T) {
	Convey("Given a header and rows", t, func() {
		header := []string{"Name", "Mentions"}
		rows := [][]string{{"Tom Thibodeau", "3"}, {"Leon, Rose", "1"}}

		Convey("When writing to a buffer", func() {
			var buf bytes.Buffer
			So(tabular.Write(&buf, header, rows), ShouldBeNil)
			So(buf.String(), ShouldEqual, "Name,Mentions\nTom Thibodeau,3\n\"Leon, Rose\",1\n")
		})

		Convey("When writing to a nested path and reading it back", func() {
			path := filepath.Join(t.TempDir(), "by_game", "7.csv")
			So(tabular.WriteFile(path, header, rows), ShouldBeNil)

			table, err := tabular.ReadFile(context.Background(), path)
			So(err, ShouldBeNil)
			So(table.Name, ShouldEqual, "7.csv")
			So(cmp.Diff(rows, table.Rows), ShouldBeEmpty)
		})
	})
}

func TestLoadComments(t *testing.T) {
	Convey("Given a comments table", t, func() {
		table, err := read("comments.csv", "global_ID,local_ID,comment\n1,1,Randle!\n1,2.0,\n2,1,go\n")
		So(err, ShouldBeNil)

		comments, err := tabular.LoadComments(table)
		So(err, ShouldBeNil)
		So(cmp.Diff([]model.Comment{
			{ThreadID: 1, CommentID: 1, Text: "Randle!"},
			{ThreadID: 1, CommentID: 2},
			{ThreadID: 2, CommentID: 1, Text: "go"},
		}, comments), ShouldBeEmpty)
	})

	Convey("Given a non-integral id", t, func() {
		table, _ := read("comments.csv", "global_ID,local_ID,comment\n1,a,x\n")
		_, err := tabular.LoadComments(table)
		So(errors.Is(err, tabular.ErrFormat), ShouldBeTrue)
	})

	Convey("Given a non-positive id", t, func() {
		table, _ := read("comments.csv", "global_ID,local_ID,comment\n0,1,x\n")
		_, err := tabular.LoadComments(table)
		So(errors.Is(err, tabular.ErrFormat), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "not positive")
	})
}

func TestLoadThreadsAndTeams(t *testing.T) {
	Convey("Given a threads table", t, func() {
		table, _ := read("threads.csv", "dt,ID,title\n3/15/2020,4,Post Game Thread: The New York Knicks defeat the Nets\n")
		threads, err := tabular.LoadThreads(table)
		So(err, ShouldBeNil)
		So(threads, ShouldResemble, []model.ThreadInfo{
			{ThreadID: 4, Posted: "3/15/2020", Title: "Post Game Thread: The New York Knicks defeat the Nets"},
		})
	})

	Convey("Given a teams table with blanks", t, func() {
		table, _ := read("teams.csv", "Team\nKnicks\n\nNets\n")
		teams, err := tabular.LoadTeams(table)
		So(err, ShouldBeNil)
		So(teams, ShouldResemble, []string{"Knicks", "Nets"})
	})

	Convey("Given a stop-word table", t, func() {
		table, _ := read("stop.csv", "Knicks,Nets\nnew york,brooklyn\nmsg,\n")

		words, err := tabular.LoadStopWords(table, "Knicks")
		So(err, ShouldBeNil)
		So(words, ShouldResemble, []string{"new york", "msg"})

		_, err = tabular.LoadStopWords(table, "Bulls")
		So(errors.Is(err, tabular.ErrFormat), ShouldBeTrue)
	})
}

func TestLoadMatrix(t *testing.T) {
	const body = "global_ID,local_ID,comment,Julius Randle,Tom Thibodeau\n1,1,a,1,\n1,2,b,0,1\n"

	Convey("Given a ground-truth table", t, func() {
		table, _ := read("truth.csv", body)

		Convey("When identities come from the header", func() {
			m, err := tabular.LoadMatrix(table, nil)
			So(err, ShouldBeNil)
			So(m.Identities(), ShouldResemble, []string{"Julius Randle", "Tom Thibodeau"})
			So(m.Len(), ShouldEqual, 2)
			So(m.Get(0, "Julius Randle"), ShouldEqual, 1)
			So(m.Get(0, "Tom Thibodeau"), ShouldEqual, 0)
			So(m.Get(1, "Tom Thibodeau"), ShouldEqual, 1)
		})

		Convey("When identities are given in another order", func() {
			m, err := tabular.LoadMatrix(table, []string{"Tom Thibodeau", "Julius Randle"})
			So(err, ShouldBeNil)
			So(m.Cell(1, 0), ShouldEqual, 1)
			So(m.Cell(0, 1), ShouldEqual, 1)
		})

		Convey("When a given identity has no column", func() {
			_, err := tabular.LoadMatrix(table, []string{"Leon Rose"})
			So(errors.Is(err, tabular.ErrFormat), ShouldBeTrue)
		})
	})

	Convey("Given a cell outside 0 and 1", t, func() {
		table, _ := read("truth.csv", "global_ID,local_ID,comment,Julius Randle\n1,1,a,2\n")
		_, err := tabular.LoadMatrix(table, nil)
		So(errors.Is(err, tabular.ErrFormat), ShouldBeTrue)
		So(err.Error(), ShouldContainSubstring, "Julius Randle")
	})

	Convey("Given a ground-truth table repeating a comment key", t, func() {
		table, _ := read("truth.csv", "global_ID,local_ID,comment,Julius Randle\n1,1,a,1\n1,2,b,0\n1,1,a again,0\n")
		m, err := tabular.LoadMatrix(table, nil)

		Convey("Then loading fails before any scoring", func() {
			So(m, ShouldBeNil)
			So(errors.Is(err, tabular.ErrFormat), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "row 4: key 1:1 repeats row 2")
		})
	})
}
