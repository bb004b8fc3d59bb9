package tables

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/okian/prospect/internal/domain/outcome"
	"github.com/okian/prospect/internal/domain/position"
	"github.com/okian/prospect/internal/domain/tier"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBuiltinCatalog(t *testing.T) {
	Convey("Given the builtin catalog", t, func() {
		c := Builtin()

		Convey("Then it lists v1 through v4 with v2 as default", func() {
			So(c.Versions(), ShouldResemble, []string{"v1", "v2", "v3", "v4"})
			So(c.Default().Version(), ShouldEqual, DefaultVersion)

			s, err := c.Get("")
			So(err, ShouldBeNil)
			So(s.Version(), ShouldEqual, "v2")
		})

		Convey("When an unknown version is requested", func() {
			_, err := c.Get("v9")
			So(errors.Is(err, ErrUnknownModel), ShouldBeTrue)
		})

		Convey("Every reachable segment resolves and its outcomes sum to one", func() {
			for _, v := range c.Versions() {
				s, _ := c.Get(v)
				for rank := tier.MinRank; rank <= tier.MaxRank; rank++ {
					for _, p := range position.All() {
						seg, err := s.Segment(rank, p)
						So(err, ShouldBeNil)

						d, _, err := s.Distribution(seg)
						So(err, ShouldBeNil)
						So(math.Abs(d.Total()-1), ShouldBeLessThan, 1e-6)

						if s.Projector() == ProjectLookup {
							_, _, err := s.Cell(seg)
							So(err, ShouldBeNil)
						}
						if s.SampleBacked() {
							smp, _, err := s.Sample(seg)
							So(err, ShouldBeNil)
							So(smp.Len(), ShouldBeGreaterThan, 0)
						}
					}
				}
			}
		})
	})
}

func TestSetFallbacks(t *testing.T) {
	Convey("Given the v3 segment tables", t, func() {
		s := V3()
		seg, err := s.Segment(5, position.Catcher)
		So(err, ShouldBeNil)
		So(seg.Tier.Key, ShouldEqual, "1-10")

		Convey("A top-10 catcher uses the OF lookup entry with a warning", func() {
			c, warn, err := s.Cell(seg)
			So(err, ShouldBeNil)
			of, _, _ := s.Cell(Segment{Tier: seg.Tier, Position: position.Outfield})
			So(c, ShouldResemble, of)
			So(warn, ShouldContainSubstring, "using OF values")
		})

		Convey("A top-10 catcher uses the tier-wide outcome table with a warning", func() {
			d, warn, err := s.Distribution(seg)
			So(err, ShouldBeNil)
			So(d.First(), ShouldEqual, 0.37)
			So(warn, ShouldContainSubstring, "tier-wide")
		})

		Convey("A covered segment reports no warning", func() {
			ss, _ := s.Segment(30, position.Shortstop)
			_, warn, err := s.Cell(ss)
			So(err, ShouldBeNil)
			So(warn, ShouldBeEmpty)
		})
	})

	Convey("Given a sample-backed set with a hole", t, func() {
		s := V2()
		s.samples = map[string]map[position.Type]outcome.Sample{
			"1-20": {
				position.Hitter:      outcome.MustSample(1, 2, 3),
				position.CatcherType: outcome.MustSample(),
			},
			"21-50":  {},
			"51-100": {position.Pitcher: outcome.MustSample(10)},
		}

		Convey("An empty segment pools the tier", func() {
			seg, _ := s.Segment(3, position.Catcher)
			smp, warn, err := s.Sample(seg)
			So(err, ShouldBeNil)
			So(smp.Len(), ShouldEqual, 3)
			So(strings.Contains(warn, "n=3"), ShouldBeTrue)
		})

		Convey("A tier with no comps at all is a missing segment", func() {
			seg, _ := s.Segment(30, position.Shortstop)
			_, _, err := s.Sample(seg)
			So(errors.Is(err, ErrMissingSegment), ShouldBeTrue)

			_, _, err = s.Distribution(seg)
			So(errors.Is(err, ErrMissingSegment), ShouldBeTrue)
		})
	})

	Convey("Given market bands", t, func() {
		b, ok := V4().Band("26-50")
		So(ok, ShouldBeTrue)
		So(b, ShouldResemble, MarketBand{MinMOIC: 3, MaxMOIC: 10})

		_, ok = V4().Band("nope")
		So(ok, ShouldBeFalse)

		_, ok = V1().Band("1-20")
		So(ok, ShouldBeFalse)
	})
}

func TestSetValidation(t *testing.T) {
	Convey("Given sets with broken tables", t, func() {
		Convey("A blend set missing a tier value is rejected", func() {
			s := V2()
			delete(s.rankEV, "21-50")
			_, err := NewCatalog("", s)
			So(errors.Is(err, ErrInvalidSet), ShouldBeTrue)
		})

		Convey("A lookup tier without the default position is rejected", func() {
			s := V3()
			delete(s.lookup["26-50"], position.Outfield)
			_, err := NewCatalog("", s)
			So(errors.Is(err, ErrInvalidSet), ShouldBeTrue)
		})

		Convey("Empirical probability without comps is rejected", func() {
			s := V3()
			s.probability = ProbEmpirical
			_, err := NewCatalog("", s)
			So(errors.Is(err, ErrInvalidSet), ShouldBeTrue)
		})

		Convey("A star rate above the MLB rate is rejected", func() {
			s := V3()
			s.lookup["11-25"][position.Catcher] = Cell{Value1Pct: 1, MLB: 0.1, Star: 0.5}
			_, err := NewCatalog("", s)
			So(errors.Is(err, ErrInvalidSet), ShouldBeTrue)
		})

		Convey("Duplicate versions are rejected", func() {
			_, err := NewCatalog("", V1(), V1())
			So(errors.Is(err, ErrInvalidSet), ShouldBeTrue)
		})

		Convey("An unknown default is rejected", func() {
			_, err := NewCatalog("v7", V1())
			So(errors.Is(err, ErrUnknownModel), ShouldBeTrue)
		})

		Convey("An empty catalog is rejected", func() {
			_, err := NewCatalog("")
			So(errors.Is(err, ErrInvalidSet), ShouldBeTrue)
		})
	})
}
