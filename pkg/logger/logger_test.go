package logger

import (
	"bytes"
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initialized with defaults", func() {
			So(Init(), ShouldBeNil)

			Convey("Then Get returns a usable logger", func() {
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initialized with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it fails", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "unknown log format")
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing JSON to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithWriter(&buf), WithFormat("json")), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "extracted", String("team", "Knicks"), Int("mentions", 3))

			Convey("Then the fields and caller are present", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, `"msg":"extracted"`)
				So(out, ShouldContainSubstring, `"team":"Knicks"`)
				So(out, ShouldContainSubstring, `"mentions":3`)
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When using a named logger with bound fields", func() {
			Named("extract").With(Int64("thread", 7)).Warn(ctx, "skipped")

			Convey("Then the component and bound field are present", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, `"component":"extract"`)
				So(out, ShouldContainSubstring, `"thread":7`)
			})
		})

		Convey("When the level is raised above debug", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(ctx, "hidden")

			Convey("Then lower levels are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
			})
		})

		Convey("When an unknown level is supplied", func() {
			err := SetLevelString("loud")

			Convey("Then an error is returned", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
