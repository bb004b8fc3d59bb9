// Package projection maps a (tier, position) segment to a point estimate of
// career earnings and the value of 1% equity.
package projection

import (
	"fmt"
	"math"

	"github.com/okian/prospect/internal/domain/tables"
)

// OnePercent converts career earnings into the value of 1% equity.
const OnePercent = 0.01

// Rates are the success rates a lookup table carries for a segment.
type Rates struct {
	MLB  float64
	Star float64
}

// Estimate is a projector's output for one segment. ProjectedEarnings is the
// headline figure and the base of every offer's break-even; ConditionalEarnings
// is informational only.
type Estimate struct {
	// ProjectedEarnings is the unconditional point estimate of career earnings ($).
	ProjectedEarnings float64
	// Value1Pct is the value of 1% equity ($).
	Value1Pct float64
	// Rates is nil when the model does not carry success rates.
	Rates *Rates
	// ConditionalEarnings is the earnings estimate given the player reaches
	// MLB; zero when not modeled.
	ConditionalEarnings float64
	Warnings            []string
}

// Projector computes an Estimate for a segment.
type Projector interface {
	Project(seg tables.Segment) (Estimate, error)
}

// For returns the projector configured by set.
func For(set *tables.Set) (Projector, error) {
	switch set.Projector() {
	case tables.ProjectBlend:
		return NewBlend(set)
	case tables.ProjectLookup:
		return NewLookup(set)
	default:
		return nil, fmt.Errorf("%w: %s uses %q", ErrUnsupportedSet, set.Version(), set.Projector())
	}
}

// Blend is the weighted geometric-blend model.
type Blend struct {
	set    *tables.Set
	params tables.BlendParams
}

// NewBlend binds the blend model to set.
func NewBlend(set *tables.Set) (*Blend, error) {
	p, ok := set.Blend()
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a blend set", ErrUnsupportedSet, set.Version())
	}
	return &Blend{set: set, params: p}, nil
}

// Project blends the tier and position multipliers and clamps the result.
func (b *Blend) Project(seg tables.Segment) (Estimate, error) {
	rv, err := b.set.RankValue(seg.Tier.Key)
	if err != nil {
		return Estimate{}, err
	}
	pv, err := b.set.PositionValue(seg.Position)
	if err != nil {
		return Estimate{}, err
	}
	ev := BlendEV(b.params, rv, pv)
	return Estimate{ProjectedEarnings: ev, Value1Pct: OnePercent * ev}, nil
}

// BlendEV is the blend formula:
//
//	raw = (rank/base)^wRank * (pos/base)^wPos
//	ev  = clamp(base * raw * calibration * uplift * growth, minEV, maxEV)
func BlendEV(p tables.BlendParams, rankValue, posValue float64) float64 {
	rankMult := rankValue / p.Base
	posMult := posValue / p.Base

	raw := math.Pow(rankMult, p.WRank) * math.Pow(posMult, p.WPos)
	ev := p.Base * raw * p.Calibration * p.HistUplift * p.FwdGrowth

	return math.Max(p.MinEV, math.Min(ev, p.MaxEV))
}

// Lookup is the direct segment-lookup model. Its table already folds in
// success and star rates.
type Lookup struct {
	set *tables.Set
}

// NewLookup binds the lookup model to set.
func NewLookup(set *tables.Set) (*Lookup, error) {
	if set.Projector() != tables.ProjectLookup {
		return nil, fmt.Errorf("%w: %s is not a lookup set", ErrUnsupportedSet, set.Version())
	}
	return &Lookup{set: set}, nil
}

// Project reads the expected 1% value and back-derives earnings from it.
func (l *Lookup) Project(seg tables.Segment) (Estimate, error) {
	c, warn, err := l.set.Cell(seg)
	if err != nil {
		return Estimate{}, err
	}
	est := Estimate{
		Value1Pct:         c.Value1Pct,
		ProjectedEarnings: c.Value1Pct / OnePercent,
		Rates:             &Rates{MLB: c.MLB, Star: c.Star},
	}
	if c.MLB > 0 {
		est.ConditionalEarnings = est.ProjectedEarnings / c.MLB
	}
	if warn != "" {
		est.Warnings = append(est.Warnings, warn)
	}
	return est, nil
}
