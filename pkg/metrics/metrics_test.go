package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "sweetsixteen")
				So(manager.subsystem, ShouldEqual, "recruiting")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "test-namespace")
				So(manager.subsystem, ShouldEqual, "test-subsystem")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			})
		})

		Convey("When options receive zero values", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "sweetsixteen")
				So(manager.subsystem, ShouldEqual, "recruiting")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording business metrics", func() {
			// These must not panic even before any service wiring.
			So(func() {
				RecordScoreComputed()
				RecordShortlistBuilt()
				RecordQuestsGenerated("team", 2)
				RecordQuestsGenerated("deck", 4)
				RecordBoardUpdate()
				RecordCacheHit()
				RecordCacheMiss()
				UpdateCacheSize(10)
			}, ShouldNotPanic)
		})

		Convey("When recording operational metrics", func() {
			So(func() {
				UpdateQueueSize(5)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.05)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueError()
				UpdateWorkerCount(4)
				RecordWorkerLatency(1.5)
				RecordWorkerError()
				RecordSweepLatency(12.0)
				UpdateTotalRecruits(300)
				UpdateTotalTeams(64)
			}, ShouldNotPanic)
		})

		Convey("When recording HTTP metrics", func() {
			So(func() {
				RecordHTTPRequest("shortlist", "GET", "200")
				RecordHTTPRequestDuration("shortlist", "GET", "200", 3.2)
				RecordErrorByComponent("board", "not_found")
				RecordErrorByEndpoint("rank", "GET", "not_found")
			}, ShouldNotPanic)
		})

		Convey("When fetching the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
