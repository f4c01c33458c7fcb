package rating_test

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"vlrank/internal/domain/rating"
)

func TestTeamUpdater_Update(t *testing.T) {
	Convey("Given the default team updater", t, func() {
		u := rating.NewTeamUpdater()

		Convey("When two equal teams meet with importance 1 and margin 4", func() {
			upd := u.Update(1500, 1500, nil, nil, true, true, 1.0, 4.0)

			Convey("Then expected scores are even", func() {
				So(upd.A.Expected, ShouldAlmostEqual, 0.5, 1e-12)
				So(upd.B.Expected, ShouldAlmostEqual, 0.5, 1e-12)
			})

			Convey("And the effective K is 25*ln(5)", func() {
				So(upd.K, ShouldAlmostEqual, 25*math.Log(5), 1e-9)
				So(upd.K, ShouldAlmostEqual, 40.236, 0.001)
			})

			Convey("And the deltas are symmetric", func() {
				So(upd.A.Post, ShouldAlmostEqual, 1520.118, 0.001)
				So(upd.B.Post, ShouldAlmostEqual, 1479.882, 0.001)
				So(upd.A.Post-1500, ShouldAlmostEqual, 1500-upd.B.Post, 1e-9)
				So(upd.Updated, ShouldBeTrue)
			})
		})

		Convey("When the series result is unknown", func() {
			upd := u.Update(1550, 1450, nil, nil, false, false, 1.2, 2.0)

			Convey("Then ratings carry through unchanged", func() {
				So(upd.Updated, ShouldBeFalse)
				So(upd.A.Post, ShouldEqual, 1550.0)
				So(upd.B.Post, ShouldEqual, 1450.0)
				So(upd.A.Actual, ShouldEqual, 0.5)
				So(upd.B.Actual, ShouldEqual, 0.5)
			})
		})

		Convey("When the rosters differ in strength", func() {
			strong := []float64{1700, 1700, 1700, 1700, 1700}
			weak := []float64{1300, 1300, 1300, 1300, 1300}
			upd := u.Update(1500, 1500, strong, weak, true, true, 1.0, 1.0)

			Convey("Then the stronger roster is favored despite equal team ratings", func() {
				So(upd.A.Expected, ShouldBeGreaterThan, 0.5)
				So(upd.B.Expected, ShouldBeLessThan, 0.5)
			})
		})

		Convey("When the winner was a heavy favorite", func() {
			fav := u.Update(1900, 1500, nil, nil, true, true, 1.0, 4.0)
			even := u.Update(1500, 1500, nil, nil, true, true, 1.0, 4.0)

			Convey("Then the favorite's K is dampened", func() {
				So(fav.K, ShouldBeLessThan, even.K)
			})
		})
	})
}

func TestTeamUpdater_MOVMultiplier(t *testing.T) {
	Convey("Given the default team updater", t, func() {
		u := rating.NewTeamUpdater()

		Convey("When the margin grows at a fixed rating gap", func() {
			Convey("Then the multiplier strictly increases", func() {
				prev := u.MOVMultiplier(1, 200)
				for _, m := range []float64{2, 3, 4, 6, 8} {
					cur := u.MOVMultiplier(m, 200)
					So(cur, ShouldBeGreaterThan, prev)
					prev = cur
				}
			})
		})

		Convey("When the rating gap grows at a fixed margin", func() {
			Convey("Then the multiplier strictly decreases", func() {
				prev := u.MOVMultiplier(4, 0)
				for _, gap := range []float64{100, 250, 500, 1000} {
					cur := u.MOVMultiplier(4, gap)
					So(cur, ShouldBeLessThan, prev)
					prev = cur
				}
			})
		})

		Convey("When the gap is negative", func() {
			Convey("Then only its magnitude matters", func() {
				So(u.MOVMultiplier(4, -300), ShouldAlmostEqual, u.MOVMultiplier(4, 300), 1e-12)
			})
		})

		Convey("When the margin is below the floor", func() {
			Convey("Then it is treated as 1", func() {
				So(u.MOVMultiplier(0.2, 0), ShouldAlmostEqual, u.MOVMultiplier(1, 0), 1e-12)
			})
		})
	})
}

func TestTeamUpdater_Effective(t *testing.T) {
	Convey("Given the default team updater", t, func() {
		u := rating.NewTeamUpdater()

		Convey("When the roster is empty", func() {
			Convey("Then the effective rating equals the team rating", func() {
				So(u.Effective(1600, nil), ShouldEqual, 1600.0)
			})
		})

		Convey("When the roster averages above the baseline", func() {
			eff := u.Effective(1500, []float64{1700, 1700})

			Convey("Then the team rating is nudged up by the blend", func() {
				So(eff, ShouldAlmostEqual, 1500+0.15*200, 1e-9)
			})
		})
	})
}
