package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/combine/internal/adapters/http/api"
	service "github.com/okian/combine/internal/app"
	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/pkg/logger"
)

func init() {
	_ = logger.Init()
}

const amberBody = `{"athlete_id":"a1","gender":"male","age_group":"16-17","sport":"Hockey",` +
	`"sprint":3.3,"vertical":50,"broad":210,"strength":30,"endurance":"4:40"}`

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out
}

func TestRoutes(t *testing.T) {
	Convey("Given a router over a started service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(1))
		So(svc.Start(ctx), ShouldBeNil)
		defer func() { _ = svc.Stop(ctx) }()
		h := api.NewServer(svc).Router(ctx)

		Convey("When /healthz is requested", func() {
			w := do(h, http.MethodGet, "/healthz", "")

			Convey("Then it should report ok", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decode(w)["status"], ShouldEqual, "ok")
			})
		})

		Convey("When /metrics is scraped after a request", func() {
			do(h, http.MethodGet, "/v1/options", "")
			w := do(h, http.MethodGet, "/metrics", "")

			Convey("Then request counters should be exposed under the route pattern", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "combine_assessment_http_requests_total")
				So(w.Body.String(), ShouldContainSubstring, `endpoint="/v1/options"`)
			})
		})

		Convey("When the options are requested", func() {
			w := do(h, http.MethodGet, "/v1/options", "")

			Convey("Then every enumeration should be present", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := decode(w)
				So(body["genders"], ShouldHaveLength, 2)
				So(body["age_groups"], ShouldHaveLength, 6)
				So(body["sports"], ShouldHaveLength, 7)
				So(body["chart_labels"], ShouldResemble, []any{"Sprint", "Vertical", "Broad", "Strength", "Endurance"})
			})
		})

		Convey("When a time is parsed", func() {
			ok := do(h, http.MethodPost, "/v1/time/parse", `{"value":"3.56"}`)
			bad := do(h, http.MethodPost, "/v1/time/parse", `{"value":"3:60"}`)
			junk := do(h, http.MethodPost, "/v1/time/parse", `{`)

			Convey("Then valid text should parse and invalid text should be a 400", func() {
				So(ok.Code, ShouldEqual, http.StatusOK)
				So(decode(ok)["display"], ShouldEqual, "3:56")
				So(bad.Code, ShouldEqual, http.StatusBadRequest)
				So(decode(bad)["code"], ShouldEqual, "bad_request")
				So(junk.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When an assessment is posted", func() {
			w := do(h, http.MethodPost, "/v1/assessments", amberBody)

			Convey("Then it should be created with a Hockey plan", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				var rep service.Report
				So(json.Unmarshal(w.Body.Bytes(), &rep), ShouldBeNil)
				So(rep.Assessment.AthleteID, ShouldEqual, "a1")
				So(rep.Recommendation.Sport, ShouldEqual, "Hockey")
				So(rep.Recommendation.Primary.Name, ShouldEqual, "Speed (20m acceleration)")
				So(rep.Summary.Greens, ShouldEqual, 0)
			})

			Convey("Then the athlete should be readable", func() {
				r := do(h, http.MethodGet, "/v1/athletes/a1", "")
				So(r.Code, ShouldEqual, http.StatusOK)
				var view service.AthleteView
				So(json.Unmarshal(r.Body.Bytes(), &view), ShouldBeNil)
				So(view.Session.AthleteID, ShouldEqual, "a1")
				So(view.Session.Retests, ShouldBeEmpty)
			})

			Convey("Then the squad should list the athlete", func() {
				r := do(h, http.MethodGet, "/v1/squad?limit=5", "")
				So(r.Code, ShouldEqual, http.StatusOK)
				So(decode(r)["athletes"], ShouldHaveLength, 1)
			})
		})

		Convey("When inputs are incomplete", func() {
			w := do(h, http.MethodPost, "/v1/assessments", strings.Replace(amberBody, `"4:40"`, `"fast"`, 1))

			Convey("Then the form message should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				body := decode(w)
				So(body["code"], ShouldEqual, "incomplete_inputs")
				So(body["message"], ShouldEqual, service.MsgIncompleteInputs)
			})
		})

		Convey("When a retest has no baseline", func() {
			w := do(h, http.MethodPost, "/v1/assessments",
				strings.Replace(amberBody, `"athlete_id":"a1"`, `"athlete_id":"nobody","kind":"retest"`, 1))

			Convey("Then a 409 should ask for a baseline", func() {
				So(w.Code, ShouldEqual, http.StatusConflict)
				So(decode(w)["message"], ShouldEqual, service.MsgNoBaseline)
			})
		})

		Convey("When an unknown athlete or bad limit is requested", func() {
			missing := do(h, http.MethodGet, "/v1/athletes/ghost", "")
			badLimit := do(h, http.MethodGet, "/v1/squad?limit=abc", "")
			zeroLimit := do(h, http.MethodGet, "/v1/squad?limit=0", "")

			Convey("Then the right status codes should be returned", func() {
				So(missing.Code, ShouldEqual, http.StatusNotFound)
				So(badLimit.Code, ShouldEqual, http.StatusBadRequest)
				So(zeroLimit.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When a batch is posted", func() {
			body := fmt.Sprintf(`{"submissions":[%s,%s]}`,
				strings.Replace(amberBody, `{`, `{"submission_id":"x1",`, 1),
				strings.Replace(amberBody, `{`, `{"submission_id":"x1",`, 1))
			w := do(h, http.MethodPost, "/v1/assessments/batch", body)

			Convey("Then it should be accepted with the duplicate reported", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				var res service.BatchResult
				So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
				So(res.Accepted, ShouldEqual, 1)
				So(res.Duplicates, ShouldEqual, 1)
			})
		})

		Convey("When an empty batch is posted", func() {
			w := do(h, http.MethodPost, "/v1/assessments/batch", `{"submissions":[]}`)

			Convey("Then it should be a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When stats are requested", func() {
			w := do(h, http.MethodGet, "/v1/stats", "")

			Convey("Then the service stats should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(decode(w)["started"], ShouldBeTrue)
			})
		})

		Convey("When a CORS preflight arrives", func() {
			req := httptest.NewRequest(http.MethodOptions, "/v1/assessments", http.NoBody)
			req.Header.Set("Origin", "https://coach.example.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then the origin should be allowed", func() {
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldEqual, "*")
			})
		})
	})
}

// stubDeps fails every call with err.
type stubDeps struct {
	err   error
	batch service.BatchResult
}

func (s stubDeps) Assess(context.Context, model.Submission) (service.Report, error) { //nolint:gocritic // hugeParam: matches Dependencies
	return service.Report{}, s.err
}

func (s stubDeps) SubmitBatch(context.Context, []model.Submission) (service.BatchResult, error) {
	return s.batch, s.err
}

func (s stubDeps) Athlete(context.Context, string) (service.AthleteView, error) {
	return service.AthleteView{}, s.err
}

func (s stubDeps) Squad(context.Context, int) ([]model.SquadEntry, error) { return nil, s.err }
func (s stubDeps) Options() service.Options { return service.Options{} }
func (s stubDeps) ParseTime(string) (service.ParsedTime, error) { return service.ParsedTime{}, s.err }
func (s stubDeps) GetStats() map[string]any { return map[string]any{} }

func TestErrorMapping(t *testing.T) {
	Convey("Given handlers whose dependencies fail", t, func() {
		ctx := context.Background()

		Convey("When the failure is unexpected", func() {
			h := api.NewServer(stubDeps{err: errors.New("disk on fire")}).Router(ctx)
			w := do(h, http.MethodPost, "/v1/assessments", amberBody)

			Convey("Then a 500 should hide the cause", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				body := decode(w)
				So(body["code"], ShouldEqual, "internal_error")
				So(body["message"], ShouldNotContainSubstring, "disk")
			})
		})

		Convey("When the queue is full", func() {
			deps := stubDeps{
				err:   service.ErrBackpressure,
				batch: service.BatchResult{Rejected: 1, Items: []service.BatchItem{{SubmissionID: "s1", Status: service.StatusRejected}}},
			}
			h := api.NewServer(deps).Router(ctx)
			w := do(h, http.MethodPost, "/v1/assessments/batch", `{"submissions":[{}]}`)

			Convey("Then a 429 should still carry the item statuses", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
				So(decode(w)["rejected"], ShouldEqual, float64(1))
			})
		})

		Convey("When the service has not started", func() {
			h := api.NewServer(stubDeps{err: service.ErrNotStarted}).Router(ctx)
			w := do(h, http.MethodPost, "/v1/assessments/batch", `{"submissions":[{}]}`)

			Convey("Then a 503 should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})

		Convey("When the batch is too large", func() {
			h := api.NewServer(stubDeps{err: service.ErrBatchTooLarge}).Router(ctx)
			w := do(h, http.MethodPost, "/v1/assessments/batch", `{"submissions":[{}]}`)

			Convey("Then a 413 should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusRequestEntityTooLarge)
			})
		})

		Convey("When the body exceeds the size limit", func() {
			h := api.NewServer(stubDeps{}).Router(ctx)
			big := `{"value":"` + string(bytes.Repeat([]byte("9"), 2<<20)) + `"}`
			w := do(h, http.MethodPost, "/v1/time/parse", big)

			Convey("Then it should be rejected as a bad request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestServerOptions(t *testing.T) {
	Convey("Given a server with restricted origins and an extra route", t, func() {
		ctx := context.Background()
		h := api.NewServer(stubDeps{},
			api.WithCORSOrigins("https://club.example.com"),
			api.WithRoutes(func(_ context.Context, r chi.Router) {
				r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
			}),
		).Router(ctx)

		Convey("When the extra route is requested", func() {
			w := do(h, http.MethodGet, "/extra", "")

			Convey("Then it should be served", func() {
				So(w.Code, ShouldEqual, http.StatusTeapot)
			})
		})

		Convey("When a foreign origin sends a request", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set("Origin", "https://other.example.com")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then no CORS allow header should be set", func() {
				So(w.Header().Get("Access-Control-Allow-Origin"), ShouldBeEmpty)
			})
		})
	})
}

func TestErrorHelpers(t *testing.T) {
	Convey("Given the op-tagged error helpers", t, func() {
		cause := errors.New("boom")

		Convey("Then kinds and causes should both match errors.Is", func() {
			err := api.WrapKind("api.test", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.test: bad request: boom")
			So(api.NewKind("api.test", api.ErrBadRequest).Error(), ShouldEqual, "api.test: bad request")
			So(api.Wrap("api.test", nil), ShouldBeNil)
		})
	})
}
