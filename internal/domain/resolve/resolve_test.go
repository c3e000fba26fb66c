package resolve_test

import (
	"sync"
	"testing"

	"github.com/okian/rollcall/internal/domain/resolve"
	"github.com/okian/rollcall/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func index(entries ...roster.Entry) *roster.Index {
	idx, err := roster.New(entries...)
	if err != nil {
		panic(err)
	}
	return idx
}

func TestResolve(t *testing.T) {
	nick := roster.Entry{Name: "Brandon Jennings", First: []string{"Brandon"}, Last: []string{"Jennings"}, Nicknames: []string{"Lee"}}
	last := roster.Entry{Name: "Courtney Lee", First: []string{"Courtney"}, Last: []string{"Lee"}}

	Convey("Given a surface that is one entry's nickname and another's last name", t, func() {
		Convey("When the nickname entry comes first", func() {
			r := resolve.New(index(nick, last))
			e, ok := r.Resolve("Lee")

			Convey("Then the last-name entry wins", func() {
				So(ok, ShouldBeTrue)
				So(e.Name, ShouldEqual, "Courtney Lee")
			})
		})

		Convey("When the last-name entry comes first", func() {
			r := resolve.New(index(last, nick))
			e, ok := r.Resolve("Lee")

			Convey("Then the last-name entry still wins", func() {
				So(ok, ShouldBeTrue)
				So(e.Name, ShouldEqual, "Courtney Lee")
			})
		})
	})

	Convey("Given a surface shared only by short forms and nicknames", t, func() {
		r := resolve.New(index(
			roster.Entry{Name: "A One", Nicknames: []string{"Boss"}},
			roster.Entry{Name: "B Two", FirstShort: []string{"Boss"}},
			roster.Entry{Name: "C Three"},
		))

		Convey("Then the last tentative match wins", func() {
			name, ok := r.Name("Boss")
			So(ok, ShouldBeTrue)
			So(name, ShouldEqual, "B Two")
		})
	})

	Convey("Given a roster", t, func() {
		r := resolve.New(index(
			roster.Entry{Name: "RJ Barrett", First: []string{"RJ"}, Last: []string{"Barrett"}},
			roster.Entry{Name: "Tom Thibodeau", First: []string{"Tom"}, Last: []string{"Thibodeau"}, LastShort: []string{"Thibs"}},
		))

		Convey("Then display, first and last names resolve", func() {
			for _, s := range []string{"RJ Barrett", "RJ", "Barrett", "Thibodeau", "Thibs"} {
				_, ok := r.Resolve(s)
				So(ok, ShouldBeTrue)
			}
		})

		Convey("Then comparison is case-sensitive", func() {
			_, ok := r.Resolve("Rj Barrett")
			So(ok, ShouldBeFalse)
			_, ok = r.Resolve("thibs")
			So(ok, ShouldBeFalse)
		})

		Convey("Then an unknown surface is a miss, repeatedly", func() {
			e, ok := r.Resolve("Nobody")
			So(ok, ShouldBeFalse)
			So(e.Name, ShouldBeEmpty)
			_, ok = r.Resolve("Nobody")
			So(ok, ShouldBeFalse)
		})

		Convey("When resolving concurrently", func() {
			var wg sync.WaitGroup
			results := make([]string, 50)
			for i := range results {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], _ = r.Name("Thibs")
				}(i)
			}
			wg.Wait()

			Convey("Then every caller gets the same identity", func() {
				for _, name := range results {
					So(name, ShouldEqual, "Tom Thibodeau")
				}
			})
		})
	})
}
