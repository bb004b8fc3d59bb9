package outcome_test

import (
	"errors"
	"testing"

	"github.com/okian/prospect/internal/domain/outcome"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLowerBound(t *testing.T) {
	Convey("Given a sorted sample with duplicates", t, func() {
		s := outcome.MustSample(100, 100, 71038, 1_100_000, 4_100_000, 12_400_000, 12_400_000, 55_245_570)

		Convey("When the threshold exceeds every element", func() {
			So(s.LowerBound(1e12), ShouldEqual, s.Len())
		})

		Convey("When the threshold is at or below the minimum", func() {
			So(s.LowerBound(100), ShouldEqual, 0)
			So(s.LowerBound(-5), ShouldEqual, 0)
		})

		Convey("When the threshold hits a run of equal values", func() {
			So(s.LowerBound(12_400_000), ShouldEqual, 5)
		})

		Convey("When the threshold falls between values", func() {
			So(s.LowerBound(5_000_000), ShouldEqual, 5)
		})

		Convey("When the slice is empty", func() {
			So(outcome.LowerBound(nil, 10), ShouldEqual, 0)
		})
	})
}

func TestProbAtLeast(t *testing.T) {
	Convey("Given the 51-100 pitcher comps", t, func() {
		s := outcome.MustSample(
			100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
			100, 100, 100, 100, 100, 71038, 71038, 71038, 71038, 100000,
			150000, 250000, 400000, 600000, 900000, 1200000, 1800000, 2500000, 3400000,
			4600000, 6000000, 7700000, 9800000, 12000000, 15000000, 19000000, 24000000,
			30000000, 38000000, 47000000, 58000000, 70000000, 82000000, 94000000,
			103000000, 106000000, 107000000, 241000000, 327000000, 485310896, 485310896,
		)

		Convey("Ties at the threshold count as at-or-above", func() {
			p, err := s.ProbAtLeast(485310896)
			So(err, ShouldBeNil)
			So(p, ShouldEqual, 2.0/float64(s.Len()))
		})

		Convey("The probability never increases with the threshold", func() {
			prev := 1.0
			for threshold := 0.0; threshold <= 5e8; threshold += 2.5e6 {
				p, err := s.ProbAtLeast(threshold)
				So(err, ShouldBeNil)
				So(p, ShouldBeLessThanOrEqualTo, prev)
				prev = p
			}
		})

		Convey("A threshold at the minimum gives certainty", func() {
			p, _ := s.ProbAtLeast(100)
			So(p, ShouldEqual, 1.0)
		})

		Convey("A threshold above the maximum gives zero", func() {
			p, _ := s.ProbAtLeast(5e8)
			So(p, ShouldEqual, 0.0)
		})
	})

	Convey("Given an empty sample", t, func() {
		_, err := outcome.MustSample().ProbAtLeast(1)
		So(errors.Is(err, outcome.ErrEmptySample), ShouldBeTrue)
	})
}

func TestNewSample(t *testing.T) {
	Convey("Given unsorted values", t, func() {
		_, err := outcome.NewSample(3, 1, 2)
		So(errors.Is(err, outcome.ErrUnsortedSample), ShouldBeTrue)
	})

	Convey("Given a caller that keeps its slice", t, func() {
		values := []float64{1, 2, 3}
		s, err := outcome.NewSample(values...)
		So(err, ShouldBeNil)
		values[0] = 99
		So(s.Values()[0], ShouldEqual, 1)
	})

	Convey("Given samples to pool", t, func() {
		pooled := outcome.Pool(outcome.MustSample(1, 5), outcome.MustSample(2, 3, 9))
		So(pooled.Values(), ShouldResemble, []float64{1, 2, 3, 5, 9})
	})
}
