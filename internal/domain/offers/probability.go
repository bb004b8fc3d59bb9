package offers

import (
	"math"

	"github.com/okian/prospect/internal/domain/outcome"
	"github.com/okian/prospect/internal/domain/tables"
)

// Stress heuristic weights and output bounds.
const (
	downsideWeight = 0.7
	tailWeight     = 0.3
	scoreWeight    = 0.6
	aggWeight      = 0.4
	stressFloor    = 0.10
	stressCeil     = 0.90
	// tailFloor is where the "tail win" buckets start.
	tailFloor = 75e6
)

// Probability estimates the chance that realized earnings clear the
// break-even level of an offer at the given MOIC.
type Probability interface {
	Name() string
	Probability(moic, breakEven float64) float64
}

// Empirical is the survival frequency in the segment's comps.
type Empirical struct {
	Sample outcome.Sample
}

// Name implements Probability.
func (Empirical) Name() string { return string(tables.ProbEmpirical) }

// Probability returns (n - lowerBound(breakEven)) / n. An empty sample yields 0;
// callers resolve samples through the table store, which never hands one out.
func (e Empirical) Probability(_, breakEven float64) float64 {
	p, err := e.Sample.ProbAtLeast(breakEven)
	if err != nil {
		return 0
	}
	return p
}

// Buckets reads survival off a precomputed outcome distribution.
type Buckets struct {
	Dist outcome.Distribution
}

// Name implements Probability.
func (Buckets) Name() string { return string(tables.ProbBuckets) }

// Probability implements Probability.
func (b Buckets) Probability(_, breakEven float64) float64 {
	return b.Dist.Survival(breakEven)
}

// Stress is an interpolation heuristic, not a statistical estimator. It mixes
// the segment's downside and tail masses with how aggressive the MOIC is
// within the market band, and never returns 0% or 100%.
type Stress struct {
	Dist outcome.Distribution
	Band tables.MarketBand
}

// Name implements Probability.
func (Stress) Name() string { return string(tables.ProbStress) }

// Score is the 0-1 uncertainty of the segment: 0.7*downside + 0.3*(1-tail).
func (s Stress) Score() float64 {
	downside := s.Dist.First()
	tail := s.Dist.AtLeast(tailFloor)
	return downsideWeight*downside + tailWeight*(1-tail)
}

// Probability implements Probability.
func (s Stress) Probability(moic, _ float64) float64 {
	return StressProbability(s.Score(), Aggressiveness(moic, s.Band))
}

// Aggressiveness places moic in the band: 1 at or below MinMOIC, 0 at or
// above MaxMOIC. A degenerate band has no width and scores 0.
func Aggressiveness(moic float64, band tables.MarketBand) float64 {
	width := band.MaxMOIC - band.MinMOIC
	if width <= 0 {
		return 0
	}
	return clamp((band.MaxMOIC-moic)/width, 0, 1)
}

// StressProbability maps score and aggressiveness to clamp(1-stress, 0.10, 0.90).
func StressProbability(score, agg float64) float64 {
	stress := scoreWeight*score + aggWeight*agg
	return clamp(1-stress, stressFloor, stressCeil)
}

// clamp bounds v to [lo, hi]; NaN maps to lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
