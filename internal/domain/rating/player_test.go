package rating_test

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"vlrank/internal/domain/rating"
)

func TestPlayerUpdater_Update(t *testing.T) {
	Convey("Given the default player updater", t, func() {
		u := rating.NewPlayerUpdater()

		Convey("When a player performs exactly at the opponent average", func() {
			upd := u.Update(1500, 0, rating.PlayerPerf{Rating: 1.0, ACS: 200},
				rating.PlayerContext{
					OpponentMeanElo:   1500,
					OpponentAvgRating: 1.0,
					MatchAvgRating:    1.0,
					MatchAvgACS:       200,
					TeamResult:        0.5,
					Importance:        1.0,
				})

			Convey("Then expected and actual are both even and nothing moves", func() {
				So(upd.Expected, ShouldAlmostEqual, 0.5, 1e-12)
				So(upd.PerfRatio, ShouldAlmostEqual, 1.0, 1e-12)
				So(upd.Actual, ShouldAlmostEqual, 0.5, 1e-12)
				So(upd.Delta, ShouldAlmostEqual, 0, 1e-12)
				So(upd.Provenance, ShouldEqual, rating.ProvActual)
			})
		})

		Convey("When the player outperforms and the team won", func() {
			upd := u.Update(1500, 0, rating.PlayerPerf{Rating: 1.3, ACS: 260},
				rating.PlayerContext{
					OpponentMeanElo:   1500,
					OpponentAvgRating: 1.0,
					MatchAvgRating:    1.0,
					MatchAvgACS:       200,
					TeamResult:        1.0,
					Importance:        1.0,
				})

			Convey("Then the rating rises", func() {
				So(upd.Actual, ShouldBeGreaterThan, 0.5)
				So(upd.Delta, ShouldBeGreaterThan, 0)
				So(upd.Post, ShouldBeGreaterThan, upd.Pre)
			})
		})

		Convey("When the win/loss nudge is applied", func() {
			base := rating.PlayerContext{
				OpponentMeanElo:   1500,
				OpponentAvgRating: 1.0,
				MatchAvgRating:    1.0,
				MatchAvgACS:       200,
				Importance:        1.0,
			}
			perf := rating.PlayerPerf{Rating: 1.0, ACS: 200}

			win := base
			win.TeamResult = 1.0
			loss := base
			loss.TeamResult = 0.0

			wu := u.Update(1500, 0, perf, win)
			lu := u.Update(1500, 0, perf, loss)

			Convey("Then a win adds 0.025 and a loss removes 0.025", func() {
				So(wu.Actual, ShouldAlmostEqual, 0.525, 1e-12)
				So(lu.Actual, ShouldAlmostEqual, 0.475, 1e-12)
			})
		})

		Convey("When the K factor decays with experience", func() {
			ctx := rating.PlayerContext{
				OpponentMeanElo: 1500, OpponentAvgRating: 1.0,
				MatchAvgRating: 1.0, MatchAvgACS: 200,
				TeamResult: 0.5, Importance: 1.0,
			}
			perf := rating.PlayerPerf{Rating: 1.0, ACS: 200}

			rookie := u.Update(1500, 0, perf, ctx)
			veteran := u.Update(1500, 3, perf, ctx)

			Convey("Then K halves after three games", func() {
				So(rookie.K, ShouldAlmostEqual, 18.0, 1e-12)
				So(veteran.K, ShouldAlmostEqual, 9.0, 1e-12)
			})
		})

		Convey("When a single match would swing too far", func() {
			upd := u.Update(1500, 0, rating.PlayerPerf{Rating: 3.0, ACS: 400},
				rating.PlayerContext{
					OpponentMeanElo:   2200, // heavy underdog, expected near 0
					OpponentAvgRating: 1.0,
					MatchAvgRating:    1.0,
					MatchAvgACS:       200,
					TeamResult:        1.0,
					Importance:        2.0,
				})

			Convey("Then the delta clamps at the bound", func() {
				So(upd.Delta, ShouldBeLessThanOrEqualTo, 20.0)
				So(math.Abs(upd.Delta), ShouldBeLessThanOrEqualTo, 20.0)
			})
		})
	})
}

func TestPlayerUpdater_FallbackChain(t *testing.T) {
	Convey("Given the default player updater", t, func() {
		u := rating.NewPlayerUpdater()
		perf := rating.PlayerPerf{Rating: 0, ACS: 0} // missing figures

		Convey("When the opponent average is available", func() {
			upd := u.Update(1500, 0, perf, rating.PlayerContext{
				OpponentMeanElo: 1500, OpponentAvgRating: 1.1,
				MatchAvgRating: 1.05, MatchAvgACS: 200,
				TeamResult: 0.5, Importance: 1.0,
			})

			Convey("Then the opponent average stands in", func() {
				So(upd.Provenance, ShouldEqual, rating.ProvOpponentAverage)
				So(upd.PerfRatio, ShouldAlmostEqual, 1.0, 1e-12)
			})
		})

		Convey("When only the match average is available", func() {
			upd := u.Update(1500, 0, perf, rating.PlayerContext{
				OpponentMeanElo: 1500, OpponentAvgRating: 0,
				MatchAvgRating: 1.05, MatchAvgACS: 200,
				TeamResult: 0.5, Importance: 1.0,
			})

			So(upd.Provenance, ShouldEqual, rating.ProvMatchAverage)
			So(upd.PerfRatio, ShouldAlmostEqual, 1.0, 1e-12)
		})

		Convey("When no figures exist anywhere in the match", func() {
			upd := u.Update(1500, 0, perf, rating.PlayerContext{
				OpponentMeanElo: 1500,
				TeamResult:      0.5, Importance: 1.0,
			})

			Convey("Then 1.0 stands in and the result stays finite", func() {
				So(upd.Provenance, ShouldEqual, rating.ProvDefault)
				So(math.IsNaN(upd.Post), ShouldBeFalse)
				So(math.IsInf(upd.Post, 0), ShouldBeFalse)
				So(upd.PerfRatio, ShouldAlmostEqual, 1.0, 1e-12)
			})
		})
	})
}
