package canonical_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"vlrank/internal/domain/canonical"
)

func TestNormalizer_Key(t *testing.T) {
	Convey("Given a normalizer without aliases", t, func() {
		n := canonical.New()

		Convey("When keying differently spelled variants of one team", func() {
			Convey("Then case, punctuation, and spacing collapse", func() {
				So(n.Key("Team Liquid"), ShouldEqual, "teamliquid")
				So(n.Key("team-liquid"), ShouldEqual, "teamliquid")
				So(n.Key("  TEAM   LIQUID  "), ShouldEqual, "teamliquid")
			})
		})

		Convey("When the name carries diacritics", func() {
			Convey("Then they are stripped", func() {
				So(n.Key("Vitalité"), ShouldEqual, "vitalite")
				So(n.Key("Fnatic Köln"), ShouldEqual, "fnatickoln")
			})
		})

		Convey("When the name mixes digits and symbols", func() {
			So(n.Key("100 Thieves!"), ShouldEqual, "100thieves")
			So(n.Key("G2 Esports"), ShouldEqual, "g2esports")
		})

		Convey("When the input is empty", func() {
			Convey("Then the key is empty", func() {
				So(n.Key(""), ShouldEqual, "")
				So(n.Key("   "), ShouldEqual, "")
			})
		})

		Convey("When comparing with Same", func() {
			So(n.Same("Team Liquid", "TEAM-LIQUID"), ShouldBeTrue)
			So(n.Same("Team Liquid", "Fnatic"), ShouldBeFalse)

			Convey("And empty names never match anything", func() {
				So(n.Same("", ""), ShouldBeFalse)
			})
		})
	})
}

func TestNormalizer_Aliases(t *testing.T) {
	Convey("Given a normalizer with a known alias", t, func() {
		n := canonical.New(canonical.WithAliases(map[string]string{
			"tl":  "Team Liquid",
			"nrg": "NRG Esports",
		}))

		Convey("When keying the alias", func() {
			Convey("Then it resolves to the canonical team's key", func() {
				So(n.Key("TL"), ShouldEqual, n.Key("Team Liquid"))
				So(n.Key("nrg"), ShouldEqual, "nrgesports")
			})
		})

		Convey("When keying a non-aliased name", func() {
			So(n.Key("Sentinels"), ShouldEqual, "sentinels")
		})
	})
}
