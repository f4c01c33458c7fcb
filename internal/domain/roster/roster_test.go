package roster_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"vlrank/internal/domain/canonical"
	"vlrank/internal/domain/model"
	"vlrank/internal/domain/roster"
)

func TestResolver_Resolve(t *testing.T) {
	Convey("Given box-score rows with inconsistent team spellings", t, func() {
		r := roster.NewResolver(canonical.New())
		rows := []model.BoxScoreRow{
			{MatchID: 7, Player: "yay", Team: "Team Liquid"},
			{MatchID: 7, Player: "nAts", Team: "team-liquid"}, // map 1
			{MatchID: 7, Player: "nAts", Team: "TEAM LIQUID"}, // map 2, duplicate
			{MatchID: 7, Player: "aspas", Team: "Fnatic"},
			{MatchID: 8, Player: "zekken", Team: "Team Liquid"}, // other match
			{MatchID: 7, Player: "", Team: "Team Liquid"},       // junk row
		}

		Convey("When resolving Team Liquid for match 7", func() {
			players := r.Resolve(rows, 7, "Team Liquid")

			Convey("Then canonical matching joins the variants, deduped, in order", func() {
				So(players, ShouldResemble, []string{"yay", "nAts"})
			})
		})

		Convey("When resolving the opposing team", func() {
			So(r.Resolve(rows, 7, "FNATIC"), ShouldResemble, []string{"aspas"})
		})

		Convey("When no rows match", func() {
			Convey("Then the roster is empty, not an error", func() {
				So(r.Resolve(rows, 7, "Sentinels"), ShouldBeEmpty)
			})
		})

		Convey("When the team name is empty", func() {
			So(r.Resolve(rows, 7, ""), ShouldBeEmpty)
		})
	})
}
