// Package valuation is the pure calculation boundary: rank and position in,
// a ValuationResult out, for one model set.
package valuation

import (
	"fmt"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/internal/domain/offers"
	"github.com/okian/prospect/internal/domain/outcome"
	"github.com/okian/prospect/internal/domain/position"
	"github.com/okian/prospect/internal/domain/projection"
	"github.com/okian/prospect/internal/domain/tables"
	"github.com/okian/prospect/internal/domain/tier"
	"github.com/okian/prospect/pkg/money"
)

// Engine evaluates one model set. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	set       *tables.Set
	projector projection.Projector
	offers    *offers.Generator
}

// New binds a model set to its projector and the offer schedule.
func New(set *tables.Set, gen *offers.Generator) (*Engine, error) {
	p, err := projection.For(set)
	if err != nil {
		return nil, err
	}
	return &Engine{set: set, projector: p, offers: gen}, nil
}

// Set returns the model set the engine evaluates.
func (e *Engine) Set() *tables.Set { return e.set }

// Validate checks rank and position without computing anything.
func Validate(rank int, pos position.Position) error {
	if rank < tier.MinRank || rank > tier.MaxRank {
		return &ValidationError{Field: "rank", Value: rank, Err: tier.ErrRankOutOfRange}
	}
	if !pos.Valid() {
		return &ValidationError{Field: "position", Value: fmt.Sprintf("%q", string(pos)), Err: position.ErrUnknownPosition}
	}
	return nil
}

// Compute projects earnings for (rank, pos), prices the offer schedule and
// attaches the outcome distribution.
func (e *Engine) Compute(rank int, pos position.Position) (model.ValuationResult, error) {
	if err := Validate(rank, pos); err != nil {
		return model.ValuationResult{}, err
	}
	seg, err := e.set.Segment(rank, pos)
	if err != nil {
		return model.ValuationResult{}, err
	}
	var warns warnings

	est, err := e.projector.Project(seg)
	if err != nil {
		return model.ValuationResult{}, err
	}
	warns.add(est.Warnings...)

	dist, warn, err := e.set.Distribution(seg)
	if err != nil {
		return model.ValuationResult{}, err
	}
	warns.add(warn)

	prob, size, err := e.probability(seg, dist, &warns)
	if err != nil {
		return model.ValuationResult{}, err
	}

	rows, err := e.offers.Generate(est.Value1Pct, est.ProjectedEarnings, prob)
	if err != nil {
		return model.ValuationResult{}, err
	}

	projected := money.FromFloat(est.ProjectedEarnings)
	value1 := money.FromFloat(est.Value1Pct)
	res := model.ValuationResult{
		Model:             e.set.Version(),
		Rank:              rank,
		Tier:              model.Tier{Key: seg.Tier.Key, Label: seg.Tier.Label},
		Position:          pos,
		PosType:           seg.PosType(),
		ProjectedEarnings: projected,
		Value1Pct:         value1,
		Headline:          money.Millions(projected),
		EarningsDisplay:   money.Full(projected),
		Value1Display:     money.Full(value1),
		Distribution:      masses(dist),
		SampleSize:        size,
		Basis:             e.basis(seg, size),
		Offers:            rows,
		Warnings:          warns.list(),
	}
	if est.Rates != nil {
		mlb, star := est.Rates.MLB, est.Rates.Star
		res.MLBProbability = &mlb
		res.StarProbability = &star
	}
	if est.ConditionalEarnings > 0 {
		c := money.FromFloat(est.ConditionalEarnings)
		res.ConditionalEarnings = &c
	}
	return res, nil
}

// probability picks the offer annotation strategy for the segment. size is
// the comp count when the strategy reads comps.
func (e *Engine) probability(seg tables.Segment, dist outcome.Distribution, warns *warnings) (offers.Probability, int, error) {
	size := 0
	if e.set.SampleBacked() {
		smp, warn, err := e.set.Sample(seg)
		if err != nil {
			return nil, 0, err
		}
		warns.add(warn)
		size = smp.Len()
		if e.set.Probability() == tables.ProbEmpirical {
			return offers.Empirical{Sample: smp}, size, nil
		}
	}
	switch e.set.Probability() {
	case tables.ProbBuckets:
		return offers.Buckets{Dist: dist}, size, nil
	case tables.ProbStress:
		band, ok := e.set.Band(seg.Tier.Key)
		if !ok {
			band.MinMOIC, band.MaxMOIC = e.offers.Bounds()
		}
		return offers.Stress{Dist: dist, Band: band}, size, nil
	default:
		return nil, 0, fmt.Errorf("%w: %s cannot use %q", tables.ErrInvalidSet, e.set.Version(), e.set.Probability())
	}
}

func (e *Engine) basis(seg tables.Segment, size int) string {
	if size > 0 {
		return fmt.Sprintf("Based on %s for %s %s (n=%d).", e.set.Source(), seg.Tier.Label, seg.PosType(), size)
	}
	return fmt.Sprintf("Precomputed outcome table for %s %s.", seg.Tier.Label, seg.PosType())
}

func masses(d outcome.Distribution) []model.BucketMass {
	out := make([]model.BucketMass, len(d))
	for i, m := range d {
		out[i] = model.BucketMass{Bucket: m.Bucket.Name, Probability: m.P}
	}
	return out
}

// warnings collects distinct, non-empty messages in order.
type warnings []string

func (w *warnings) add(msgs ...string) {
	for _, m := range msgs {
		if m == "" {
			continue
		}
		dup := false
		for _, have := range *w {
			if have == m {
				dup = true
				break
			}
		}
		if !dup {
			*w = append(*w, m)
		}
	}
}

func (w warnings) list() []string {
	if len(w) == 0 {
		return nil
	}
	return append([]string(nil), w...)
}
