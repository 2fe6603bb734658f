package model_test

import (
	"testing"

	"github.com/nonianfoix/sweet-sixteen/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRecruitNormalized(t *testing.T) {
	Convey("Given a recruit without motivations", t, func() {
		r := model.Recruit{ID: "r1", Name: "Jalen Moore", HomeState: "OH"}

		Convey("When normalized", func() {
			n := r.Normalized()

			Convey("Then every motivation defaults to the midpoint", func() {
				So(n.Motivations, ShouldNotBeNil)
				for _, c := range model.CategoryPriority {
					So(n.Motivations.Weight(c), ShouldEqual, model.Midpoint)
				}
			})

			Convey("And the original is untouched", func() {
				So(r.Motivations, ShouldBeNil)
			})
		})
	})

	Convey("Given a recruit with explicit motivations", t, func() {
		r := model.Recruit{
			ID:          "r2",
			Motivations: &model.Motivations{Proximity: 90, NIL: 10},
		}

		Convey("When normalized", func() {
			n := r.Normalized()

			Convey("Then explicit weights are preserved", func() {
				So(n.Motivations.Weight(model.CategoryProximity), ShouldEqual, 90)
				So(n.Motivations.Weight(model.CategoryNIL), ShouldEqual, 10)
				So(n.Motivations.Weight(model.CategoryExposure), ShouldEqual, 0)
			})
		})
	})
}

func TestTeamNormalized(t *testing.T) {
	Convey("Given a team with no optional signals", t, func() {
		tm := model.Team{Name: "Alpha U"}

		Convey("When normalized", func() {
			n := tm.Normalized()

			Convey("Then each signal defaults to the midpoint", func() {
				So(*n.Prestige, ShouldEqual, model.Midpoint)
				So(*n.NILBudget, ShouldEqual, model.Midpoint)
				So(*n.MediaMarket, ShouldEqual, model.Midpoint)
				So(*n.AcademicRating, ShouldEqual, model.Midpoint)
				So(*n.DevelopmentRating, ShouldEqual, model.Midpoint)
				So(*n.RelationshipLevel, ShouldEqual, model.Midpoint)
				So(*n.ProjectedMinutes, ShouldEqual, 20.0)
			})

			Convey("And the pitch defaults to balanced", func() {
				So(n.Pitch, ShouldEqual, model.PitchBalanced)
			})

			Convey("And defaulted signals do not share storage", func() {
				*n.Prestige = 99
				So(*n.NILBudget, ShouldEqual, model.Midpoint)
				So(*n.MediaMarket, ShouldEqual, model.Midpoint)
				So(*n.AcademicRating, ShouldEqual, model.Midpoint)
				So(*n.DevelopmentRating, ShouldEqual, model.Midpoint)
				So(*n.RelationshipLevel, ShouldEqual, model.Midpoint)
			})
		})
	})

	Convey("Given a team with explicit signals", t, func() {
		prestige := 96.0
		tm := model.Team{Name: "Beta State", Prestige: &prestige, Pitch: model.PitchNILHeavy}

		Convey("When normalized", func() {
			n := tm.Normalized()

			Convey("Then explicit values survive", func() {
				So(*n.Prestige, ShouldEqual, 96.0)
				So(n.Pitch, ShouldEqual, model.PitchNILHeavy)
			})
		})
	})
}

func TestBadgeFor(t *testing.T) {
	Convey("Given the closed category set", t, func() {
		Convey("Then every category maps to a distinct badge", func() {
			seen := map[model.Badge]bool{}
			for _, c := range model.CategoryPriority {
				b := model.BadgeFor(c)
				So(b, ShouldNotBeEmpty)
				So(seen[b], ShouldBeFalse)
				seen[b] = true
			}
		})

		Convey("And the priority list covers all seven categories", func() {
			So(len(model.CategoryPriority), ShouldEqual, 7)
			So(model.CategoryPriority[0], ShouldEqual, model.CategoryProximity)
			So(model.CategoryPriority[len(model.CategoryPriority)-1], ShouldEqual, model.CategoryPlayingTime)
		})
	})
}

func TestCommittedTo(t *testing.T) {
	Convey("Given recruits in different commitment states", t, func() {
		Convey("An uncommitted recruit reports no program", func() {
			So(model.Recruit{}.CommittedTo(), ShouldBeEmpty)
		})

		Convey("A verbally committed recruit reports the program", func() {
			r := model.Recruit{VerbalCommitment: "Alpha U"}
			So(r.CommittedTo(), ShouldEqual, "Alpha U")
		})

		Convey("A signed recruit still reports the program", func() {
			r := model.Recruit{VerbalCommitment: "Alpha U", IsSigned: true}
			So(r.CommittedTo(), ShouldEqual, "Alpha U")
		})
	})
}
