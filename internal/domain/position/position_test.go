package position_test

import (
	"errors"
	"testing"

	"github.com/okian/prospect/internal/domain/position"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given raw position input", t, func() {
		Convey("When it is a known position in any case with padding", func() {
			p, err := position.Parse("  rhp ")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, position.RightyP)

			p, err = position.Parse("3b")
			So(err, ShouldBeNil)
			So(p, ShouldEqual, position.ThirdBase)
		})

		Convey("When it is empty", func() {
			_, err := position.Parse("")
			So(errors.Is(err, position.ErrUnknownPosition), ShouldBeTrue)
		})

		Convey("When it is not enumerated", func() {
			_, err := position.Parse("DH")
			So(errors.Is(err, position.ErrUnknownPosition), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "DH")
		})
	})
}

func TestType(t *testing.T) {
	Convey("Given every position", t, func() {
		want := map[position.Position]position.Type{
			position.ThirdBase:  position.Hitter,
			position.Shortstop:  position.Hitter,
			position.Outfield:   position.Hitter,
			position.FirstBase:  position.Hitter,
			position.SecondBase: position.Hitter,
			position.RightyP:    position.Pitcher,
			position.LeftyP:     position.Pitcher,
			position.Catcher:    position.CatcherType,
		}

		Convey("Then each collapses to its sampling type", func() {
			So(len(position.All()), ShouldEqual, len(want))
			for _, p := range position.All() {
				So(p.Type(), ShouldEqual, want[p])
			}
		})
	})
}
