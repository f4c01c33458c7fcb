package share_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"vlrank/internal/domain/share"
)

func total(shares []share.Share) float64 {
	var sum float64
	for _, s := range shares {
		sum += s.Value
	}
	return sum
}

func TestCompute(t *testing.T) {
	Convey("Given a full roster with clean figures", t, func() {
		players := []share.PlayerInput{
			{Player: "a", Rating: 1.35},
			{Player: "b", Rating: 1.10},
			{Player: "c", Rating: 0.95},
			{Player: "d", Rating: 0.90},
			{Player: "e", Rating: 0.70},
		}

		Convey("When computing shares", func() {
			shares := share.Compute(players, 1.0)

			Convey("Then they sum to one", func() {
				So(total(shares), ShouldAlmostEqual, 1.0, 1e-6)
			})

			Convey("And no share exceeds the cap", func() {
				for _, s := range shares {
					So(s.Value, ShouldBeLessThanOrEqualTo, 0.35+1e-9)
					So(s.Value, ShouldBeGreaterThan, 0)
				}
			})

			Convey("And better figures earn bigger shares", func() {
				So(shares[0].Value, ShouldBeGreaterThan, shares[4].Value)
			})
		})
	})

	Convey("Given one player dwarfing the roster", t, func() {
		players := []share.PlayerInput{
			{Player: "star", Rating: 5.0},
			{Player: "b", Rating: 0.4},
			{Player: "c", Rating: 0.4},
			{Player: "d", Rating: 0.4},
			{Player: "e", Rating: 0.4},
		}
		shares := share.Compute(players, 1.0)

		Convey("Then the relative clamp and cap bound the star's share", func() {
			So(shares[0].Value, ShouldBeLessThanOrEqualTo, 0.35+1e-9)
			So(total(shares), ShouldAlmostEqual, 1.0, 1e-6)
		})
	})

	Convey("Given missing figures on part of the roster", t, func() {
		players := []share.PlayerInput{
			{Player: "a", Rating: 1.2},
			{Player: "b", Rating: 0}, // missing
			{Player: "c", Rating: 0.8},
		}
		shares := share.Compute(players, 1.0)

		Convey("Then the team's non-zero mean fills the hole", func() {
			So(total(shares), ShouldAlmostEqual, 1.0, 1e-6)
			// filled with mean(1.2, 0.8) = 1.0, so b lands between a and c
			So(shares[1].Value, ShouldBeLessThan, shares[0].Value)
			So(shares[1].Value, ShouldBeGreaterThan, shares[2].Value)
		})
	})

	Convey("Given a roster with no figures at all", t, func() {
		players := []share.PlayerInput{
			{Player: "a"}, {Player: "b"}, {Player: "c"}, {Player: "d"},
		}

		Convey("When the match average exists", func() {
			shares := share.Compute(players, 1.05)

			Convey("Then everyone splits evenly", func() {
				So(total(shares), ShouldAlmostEqual, 1.0, 1e-6)
				for _, s := range shares {
					So(s.Value, ShouldAlmostEqual, 0.25, 1e-9)
				}
			})
		})

		Convey("When not even the match average exists", func() {
			shares := share.Compute(players, 0)

			Convey("Then the unit fallback still splits evenly", func() {
				So(total(shares), ShouldAlmostEqual, 1.0, 1e-6)
				for _, s := range shares {
					So(s.Value, ShouldAlmostEqual, 0.25, 1e-9)
				}
			})
		})
	})

	Convey("Given degenerate roster sizes", t, func() {
		Convey("When the roster is empty", func() {
			So(share.Compute(nil, 1.0), ShouldBeNil)
		})

		Convey("When the roster has one player", func() {
			shares := share.Compute([]share.PlayerInput{{Player: "solo", Rating: 1.4}}, 1.0)

			Convey("Then they get full credit", func() {
				So(shares, ShouldHaveLength, 1)
				So(shares[0].Value, ShouldEqual, 1.0)
			})
		})

		Convey("When the cap is unsatisfiable (two players)", func() {
			shares := share.Compute([]share.PlayerInput{
				{Player: "a", Rating: 1.2},
				{Player: "b", Rating: 0.8},
			}, 1.0)

			Convey("Then the all-capped vector renormalizes to sum 1", func() {
				So(total(shares), ShouldAlmostEqual, 1.0, 1e-6)
			})
		})
	})
}
