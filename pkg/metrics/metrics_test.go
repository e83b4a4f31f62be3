package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)
			m.assessments.WithLabelValues("baseline").Inc()

			Convey("Then collectors should use the namespace and subsystem", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_assessments_total")
			})
		})

		Convey("When empty options are passed", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults should be kept", func() {
				So(m.namespace, ShouldEqual, "combine")
				So(m.subsystem, ShouldEqual, "assessment")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})

		Convey("When registering twice on the same registry", func() {
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then the second registration should panic", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording assessment outcomes", func() {
			before := testutil.ToFloat64(globalManager.assessments.WithLabelValues("retest"))
			RecordAssessment("retest")
			RecordScore("sprint", "green")
			RecordRecommendation("Hockey", "sprint")
			RecordAssessmentError("no_baseline")
			RecordParseFailure()
			RecordScoringLatency(0.2)

			Convey("Then counters should move", func() {
				So(testutil.ToFloat64(globalManager.assessments.WithLabelValues("retest")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.scores.WithLabelValues("sprint", "green")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When setting gauges", func() {
			UpdateQueueSize(7)
			UpdateQueueCapacity(100)
			UpdateWorkerCount(4)
			UpdateAthletesTracked(12)

			Convey("Then gauges should hold the last value", func() {
				So(testutil.ToFloat64(globalManager.queueSize), ShouldEqual, 7)
				So(testutil.ToFloat64(globalManager.queueCapacity), ShouldEqual, 100)
				So(testutil.ToFloat64(globalManager.workerCount), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.athletesTracked), ShouldEqual, 12)
			})
		})

		Convey("When recording intake, queue, and worker activity", func() {
			So(func() {
				RecordBatchSubmission()
				RecordSubmissionDuplicate()
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				RecordWorkerProcessingLatency(1.5)
				RecordWorkerError()
				RecordSnapshot("save", 3, 20)
				RecordHTTPRequest("/v1/options", "GET", "200")
				RecordHTTPRequestDuration("/v1/options", "GET", "200", 0.4)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(9)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.snapshotRecords), ShouldEqual, 20)
		})

		Convey("When exposing the registry", func() {
			RecordHTTPRequest("/healthz", "GET", "200")
			expected := `
# HELP combine_assessment_system_goroutine_count Number of goroutines
# TYPE combine_assessment_system_goroutine_count gauge
combine_assessment_system_goroutine_count 9
`
			UpdateSystemGoroutineCount(9)

			Convey("Then it should gather the service collectors", func() {
				So(GetRegistry(), ShouldNotBeNil)
				err := testutil.GatherAndCompare(GetRegistry(), strings.NewReader(expected), "combine_assessment_system_goroutine_count")
				So(err, ShouldBeNil)
			})
		})
	})
}
