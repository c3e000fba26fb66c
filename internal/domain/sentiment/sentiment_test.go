package sentiment_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/rollcall/internal/domain/sentiment"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLexicon(t *testing.T) {
	Convey("Given a lexicon classifier", t, func() {
		ctx := context.Background()
		lex := sentiment.NewLexicon([]string{"great", "Clutch", " "}, []string{"awful", "fire"})

		Convey("When the text is mostly positive", func() {
			label, err := lex.Classify(ctx, "Great coaching, CLUTCH timeout!")

			Convey("Then it is Positive", func() {
				So(err, ShouldBeNil)
				So(label, ShouldEqual, sentiment.Positive)
				So(label.String(), ShouldEqual, "Positive")
			})
		})

		Convey("When the text is negative", func() {
			label, _ := lex.Classify(ctx, "fire the coach, awful rotations")
			So(label, ShouldEqual, sentiment.Negative)
			So(label.String(), ShouldEqual, "Negative")
		})

		Convey("When positive and negative words tie", func() {
			label, _ := lex.Classify(ctx, "great player, awful coach")
			So(label, ShouldEqual, sentiment.Negative)
		})

		Convey("When a positive word is negated", func() {
			So(lex.Score("not great"), ShouldEqual, -1)
			So(lex.Score("don't fire him, great call"), ShouldEqual, 2)
		})

		Convey("When links and handles carry sentiment words", func() {
			So(lex.Score("https://great.example/awful @great"), ShouldEqual, 0)
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := lex.Classify(cctx, "great")
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given raw text", t, func() {
		So(sentiment.Tokens("Thibs' D-scheme... is GREAT!!"), ShouldResemble, []string{"thibs'", "d", "scheme", "is", "great"})
	})
}

func TestFunc(t *testing.T) {
	Convey("Given a function classifier", t, func() {
		boom := errors.New("boom")
		c := sentiment.Func(func(_ context.Context, text string) (sentiment.Label, error) {
			if text == "" {
				return sentiment.Negative, boom
			}
			return sentiment.Positive, nil
		})

		label, err := c.Classify(context.Background(), "x")
		So(err, ShouldBeNil)
		So(label, ShouldEqual, sentiment.Positive)
		_, err = c.Classify(context.Background(), "")
		So(err, ShouldEqual, boom)
	})
}
