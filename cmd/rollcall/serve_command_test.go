package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	service "github.com/okian/rollcall/internal/app"
	"github.com/okian/rollcall/internal/config"
	"github.com/okian/rollcall/pkg/logger"
)

func TestHTTPServer(t *testing.T) {
	convey.Convey("Given the HTTP server of an unpublished service", t, func() {
		svc := service.New(config.New(), service.WithLogger(logger.Nop()))
		srv := newHTTPServer(context.Background(), ":0", svc)

		serve := func(path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
			return w
		}

		convey.Convey("Then the timeouts are set", func() {
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			convey.So(srv.Addr, convey.ShouldEqual, ":0")
		})

		convey.Convey("Then the OpenAPI document and health are served", func() {
			convey.So(serve("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(serve("/healthz").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then report routes wait for a published report", func() {
			convey.So(serve("/threads").Code, convey.ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}
