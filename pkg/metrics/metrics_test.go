package metrics

import (
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be enabled", func() {
				So(manager, ShouldNotBeNil)
				So(manager.Enabled(), ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithPrometheusRegistry(registry),
			)
			manager.RecordValuation("v2", "1-20", "3B")

			Convey("Then metric names follow the namespace", func() {
				n, err := testutil.GatherAndCount(registry, "test_namespace_valuation_computed_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("Valuations are counted per model, tier and position", func() {
			m.RecordValuation("v2", "1-20", "3B")
			m.RecordValuation("v2", "1-20", "3B")
			m.RecordValuation("v3", "Top 10", "C")
			So(testutil.ToFloat64(m.valuations.WithLabelValues("v2", "1-20", "3B")), ShouldEqual, 2)
			So(testutil.ToFloat64(m.valuations.WithLabelValues("v3", "Top 10", "C")), ShouldEqual, 1)
		})

		Convey("Validation errors, fallbacks and failures are counted", func() {
			m.RecordValidationError("rank")
			m.RecordFallback("v3")
			m.RecordValuationError("v3", "missing_segment")
			So(testutil.ToFloat64(m.validationErrors.WithLabelValues("rank")), ShouldEqual, 1)
			So(testutil.ToFloat64(m.fallbacks.WithLabelValues("v3")), ShouldEqual, 1)
			So(testutil.ToFloat64(m.valuationErrors.WithLabelValues("v3", "missing_segment")), ShouldEqual, 1)
		})

		Convey("Latency and HTTP histograms accept observations", func() {
			m.RecordValuationLatency("v2", 0.04)
			m.RecordBatchSize(12)
			m.RecordHTTPRequest("/v1/valuations", "GET", "200")
			m.RecordHTTPRequestDuration("/v1/valuations", "GET", "200", 1.5)
			m.RecordErrorByEndpoint("/v1/valuations", "GET", "invalid_input")
			So(testutil.CollectAndCount(m.valuationLatency), ShouldEqual, 1)
			So(testutil.CollectAndCount(m.httpRequestDuration), ShouldEqual, 1)
			So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/v1/valuations", "GET", "200")), ShouldEqual, 1)
		})

		Convey("Queue and worker metrics track batch jobs", func() {
			m.UpdateQueueSize(7)
			m.RecordQueueReject("queue_full")
			m.RecordJobProcessed()
			m.RecordJobProcessed()
			So(testutil.ToFloat64(m.queueSize), ShouldEqual, 7)
			So(testutil.ToFloat64(m.queueRejects.WithLabelValues("queue_full")), ShouldEqual, 1)
			So(testutil.ToFloat64(m.jobsProcessed), ShouldEqual, 2)
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))
		m.RecordValuation("v2", "1-20", "3B")
		m.RecordHTTPRequest("/healthz", "GET", "200")

		Convey("Nothing is recorded", func() {
			So(testutil.CollectAndCount(m.valuations), ShouldEqual, 0)
			So(testutil.CollectAndCount(m.httpRequests), ShouldEqual, 0)
		})
	})
}

func TestGlobalRegistry(t *testing.T) {
	Convey("Given the global manager", t, func() {
		RecordValuation("v1", "21-50", "SS")
		RecordValidationError("position")
		RecordHTTPRequest("/healthz", "GET", "200")

		Convey("The custom registry exposes service and runtime metrics", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			joined := strings.Join(names, " ")
			So(joined, ShouldContainSubstring, "prospect_valuation_computed_total")
			So(joined, ShouldContainSubstring, "prospect_valuation_validation_errors_total")
			So(joined, ShouldContainSubstring, "go_goroutines")
			So(Default(), ShouldNotBeNil)
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the global manager rebuilt with options", t, func() {
		Init(WithNamespace("scout"), WithMetricsEnabled(false))
		Reset(func() { Init() })

		Convey("The registry carries the new names and the switch", func() {
			So(Default().Enabled(), ShouldBeFalse)
			RecordValuation("v2", "1-20", "3B")

			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			joined := strings.Join(names, " ")
			So(joined, ShouldNotContainSubstring, "prospect_valuation")
			So(joined, ShouldContainSubstring, "go_goroutines")
		})

		Convey("Init without options restores the defaults", func() {
			Init()
			So(Default().Enabled(), ShouldBeTrue)
			RecordValuation("v2", "1-20", "3B")
			n, err := testutil.GatherAndCount(GetRegistry(), "prospect_valuation_computed_total")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 50; j++ {
					m.RecordValuation("v2", "51-100", "RHP")
				}
			}()
		}
		wg.Wait()

		So(testutil.ToFloat64(m.valuations.WithLabelValues("v2", "51-100", "RHP")), ShouldEqual, 1000)
	})
}
