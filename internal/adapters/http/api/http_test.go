package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/rollcall/internal/adapters/http/api"
	"github.com/okian/rollcall/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type mockDependencies struct {
	threads   []types.Thread
	season    types.Season
	scores    *types.Scores
	err       error
	stats     map[string]any
	lastQuery int64
}

func (m *mockDependencies) Threads(context.Context) ([]types.Thread, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.threads, nil
}

func (m *mockDependencies) Thread(_ context.Context, id int64) (types.Thread, error) {
	m.lastQuery = id
	if m.err != nil {
		return types.Thread{}, m.err
	}
	for _, t := range m.threads {
		if t.ThreadID == id {
			return t, nil
		}
	}
	return types.Thread{}, fmt.Errorf("thread %d: %w", id, types.ErrNotFound)
}

func (m *mockDependencies) Season(context.Context) (types.Season, error) {
	if m.err != nil {
		return types.Season{}, m.err
	}
	return m.season, nil
}

func (m *mockDependencies) Scores(context.Context) (types.Scores, error) {
	if m.err != nil {
		return types.Scores{}, m.err
	}
	if m.scores == nil {
		return types.Scores{}, types.ErrNotFound
	}
	return *m.scores, nil
}

func (m *mockDependencies) GetStats() map[string]any { return m.stats }

func newMux(deps *mockDependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a server over a published report", t, func() {
		half := 0.5
		deps := &mockDependencies{
			threads: []types.Thread{
				{ThreadID: 10, Title: "Knicks vs Nets", Result: "Win", Comments: 3,
					Identities: []types.Mention{{Identity: "Julius Randle", Mentions: 2}}},
				{ThreadID: 20, Title: "Knicks at Bulls", Result: "Lose", Comments: 1},
			},
			season: types.Season{Won: 1, Lost: 1, Races: []types.RaceStat{
				{Race: "AA", Managers: 2, NetWin: types.Value{Value: &half, Defined: true}},
			}},
			stats: map[string]any{"team": "Knicks", "published": true},
		}
		mux := newMux(deps)

		Convey("When probing health", func() {
			w := get(mux, "/healthz")

			Convey("Then it reports ok as JSON", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
				So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
			})
		})

		Convey("When scraping metrics after a request", func() {
			_ = get(mux, "/season")
			w := get(mux, "/metrics")

			Convey("Then the request counter is exposed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "rollcall_http_requests_total")
			})
		})

		Convey("When reading stats", func() {
			w := get(mux, "/stats")

			Convey("Then the provider's stats are encoded", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body map[string]any
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["team"], ShouldEqual, "Knicks")
			})
		})

		Convey("When listing threads", func() {
			w := get(mux, "/threads")

			Convey("Then every thread is returned in order", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body []types.Thread
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(len(body), ShouldEqual, 2)
				So(body[0].ThreadID, ShouldEqual, 10)
				So(body[0].Identities[0].Identity, ShouldEqual, "Julius Randle")
			})
		})

		Convey("When filtering threads by result", func() {
			w := get(mux, "/threads?result=Lose")

			Convey("Then only matching threads are returned", func() {
				var body []types.Thread
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(len(body), ShouldEqual, 1)
				So(body[0].ThreadID, ShouldEqual, 20)
				So(len(deps.threads), ShouldEqual, 2)
			})
		})

		Convey("When reading one thread", func() {
			w := get(mux, "/threads/20")

			Convey("Then it is returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(deps.lastQuery, ShouldEqual, 20)
				So(w.Body.String(), ShouldContainSubstring, `"result":"Lose"`)
			})
		})

		Convey("When reading an unknown thread", func() {
			w := get(mux, "/threads/99")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(w.Body.String(), ShouldContainSubstring, `"code":"not_found"`)
			})
		})

		Convey("When the thread id is not a number", func() {
			w := get(mux, "/threads/abc")

			Convey("Then the request is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, api.ErrBadRequest.Error())
			})
		})

		Convey("When reading the season", func() {
			w := get(mux, "/season")

			Convey("Then defined values carry a number", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var body types.Season
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Won, ShouldEqual, 1)
				So(*body.Races[0].NetWin.Value, ShouldEqual, 0.5)
				So(body.Races[0].NetLoss.Defined, ShouldBeFalse)
				So(body.Races[0].NetLoss.Value, ShouldBeNil)
			})
		})

		Convey("When the run had no ground truth", func() {
			w := get(mux, "/scores")

			Convey("Then scores are not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When scores exist", func() {
			deps.scores = &types.Scores{Comments: 4, Total: types.Score{Identity: "Total", TruePositives: 2}}
			w := get(mux, "/scores")

			Convey("Then they are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"true_positives":2`)
			})
		})

		Convey("When posting to a read-only route", func() {
			req := httptest.NewRequest(http.MethodPost, "/threads", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the method is not allowed", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})

		Convey("When requesting an unknown path", func() {
			w := get(mux, "/unknown")

			Convey("Then it is not found", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestServer_NoReport(t *testing.T) {
	Convey("Given a server before any report is published", t, func() {
		deps := &mockDependencies{err: types.ErrNoReport, stats: map[string]any{"published": false}}
		mux := newMux(deps)

		Convey("Then report routes are unavailable", func() {
			for _, path := range []string{"/threads", "/threads/1", "/season", "/scores"} {
				w := get(mux, path)
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
				So(w.Body.String(), ShouldContainSubstring, `"code":"no_report"`)
			}
		})

		Convey("Then stats still answer", func() {
			So(get(mux, "/stats").Code, ShouldEqual, http.StatusOK)
		})
	})

	Convey("Given a provider failing unexpectedly", t, func() {
		deps := &mockDependencies{err: errors.New("disk gone")}
		w := get(newMux(deps), "/season")

		Convey("Then the error is internal", func() {
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "disk gone")
		})
	})
}
