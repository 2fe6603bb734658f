package config_test

import (
	"runtime"
	"testing"

	"github.com/nonianfoix/sweet-sixteen/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.CacheSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.ShortlistMin, convey.ShouldEqual, 3)
			convey.So(cfg.ShortlistMax, convey.ShouldEqual, 6)
			convey.So(cfg.LeaderWindow, convey.ShouldEqual, 12)
			convey.So(cfg.Temperature, convey.ShouldEqual, 2.2)
			convey.So(cfg.BadgeLimit, convey.ShouldEqual, 4)
			convey.So(cfg.DeckSize, convey.ShouldEqual, 4)
			convey.So(cfg.SyndicateRatePerAlum, convey.ShouldEqual, 0.05)
			convey.So(cfg.UserTeam, convey.ShouldEqual, "")
		})
	})
}
