// Package tables is the read-only store of versioned valuation tables. A Set
// is built once, validated, and never mutated afterwards; every accessor
// returns values or copies.
package tables

import (
	"fmt"

	"github.com/okian/prospect/internal/domain/outcome"
	"github.com/okian/prospect/internal/domain/position"
	"github.com/okian/prospect/internal/domain/tier"
)

// ProjectorKind selects the earnings projection algorithm.
type ProjectorKind string

// Projector kinds.
const (
	ProjectBlend  ProjectorKind = "blend"
	ProjectLookup ProjectorKind = "lookup"
)

// ProbabilityKind selects how offer rows are annotated.
type ProbabilityKind string

// Probability kinds.
const (
	ProbEmpirical ProbabilityKind = "empirical"
	ProbBuckets   ProbabilityKind = "buckets"
	ProbStress    ProbabilityKind = "stress"
)

// BlendParams are the scalar constants of the weighted geometric blend.
type BlendParams struct {
	Base        float64 `json:"base" yaml:"base"`
	WRank       float64 `json:"w_rank" yaml:"w_rank"`
	WPos        float64 `json:"w_pos" yaml:"w_pos"`
	Calibration float64 `json:"calibration" yaml:"calibration"`
	HistUplift  float64 `json:"hist_uplift" yaml:"hist_uplift"`
	FwdGrowth   float64 `json:"fwd_growth" yaml:"fwd_growth"`
	MinEV       float64 `json:"min_ev" yaml:"min_ev"`
	MaxEV       float64 `json:"max_ev" yaml:"max_ev"`
}

// Cell is one tier x position entry of the direct-lookup tables.
type Cell struct {
	Value1Pct float64 // expected value of 1% equity, $
	MLB       float64 // probability of reaching MLB
	Star      float64 // probability of a star outcome
}

// MarketBand bounds the MOIC range the market considers conservative (Max)
// through aggressive (Min) for a tier.
type MarketBand struct {
	MinMOIC float64 `json:"min_moic" yaml:"min_moic"`
	MaxMOIC float64 `json:"max_moic" yaml:"max_moic"`
}

// Segment is the (tier, position) key every table is indexed by.
type Segment struct {
	Tier     tier.Band
	Position position.Position
}

// PosType is the coarse sampling key of the segment.
func (s Segment) PosType() position.Type { return s.Position.Type() }

func (s Segment) String() string {
	return fmt.Sprintf("%s %s", s.Tier.Key, s.Position)
}

// Set is one model version: a tier scheme, the tables behind it and the
// strategies that read them.
type Set struct {
	version     string
	description string
	tiers       tier.Partition
	projector   ProjectorKind
	probability ProbabilityKind
	bucketing   outcome.Bucketing
	source      string

	blend   BlendParams
	rankEV  map[string]float64
	posEV   map[position.Position]float64
	lookup  map[string]map[position.Position]Cell
	lookDef position.Position

	samples   map[string]map[position.Type]outcome.Sample
	dists     map[string]map[position.Type]outcome.Distribution
	tierDists map[string]outcome.Distribution
	bands     map[string]MarketBand
}

// Version is the model identifier, e.g. "v2".
func (s *Set) Version() string { return s.version }

// Description is a one-line summary for listings.
func (s *Set) Description() string { return s.description }

// Tiers is the rank partition used by this set.
func (s *Set) Tiers() tier.Partition { return s.tiers }

// Projector names the projection algorithm.
func (s *Set) Projector() ProjectorKind { return s.projector }

// Probability names the offer probability strategy.
func (s *Set) Probability() ProbabilityKind { return s.probability }

// Bucketing is the outcome bucketing used for distributions.
func (s *Set) Bucketing() outcome.Bucketing {
	return append(outcome.Bucketing(nil), s.bucketing...)
}

// SampleBacked reports whether outcome data comes from raw comps rather than
// precomputed tables.
func (s *Set) SampleBacked() bool { return len(s.samples) > 0 }

// Source describes where the outcome data comes from.
func (s *Set) Source() string { return s.source }

// Segment resolves rank and position into a table key.
func (s *Set) Segment(rank int, pos position.Position) (Segment, error) {
	b, err := s.tiers.Of(rank)
	if err != nil {
		return Segment{}, err
	}
	if !pos.Valid() {
		return Segment{}, fmt.Errorf("%w: %q", position.ErrUnknownPosition, pos)
	}
	return Segment{Tier: b, Position: pos}, nil
}

// Blend returns the blend constants. ok is false for lookup sets.
func (s *Set) Blend() (BlendParams, bool) {
	return s.blend, s.projector == ProjectBlend
}

// RankValue is RANK_EV[tier] of the blend model.
func (s *Set) RankValue(tierKey string) (float64, error) {
	v, ok := s.rankEV[tierKey]
	if !ok {
		return 0, fmt.Errorf("%w: no rank value for tier %s in %s", ErrMissingSegment, tierKey, s.version)
	}
	return v, nil
}

// PositionValue is POS_EV[position] of the blend model.
func (s *Set) PositionValue(pos position.Position) (float64, error) {
	v, ok := s.posEV[pos]
	if !ok {
		return 0, fmt.Errorf("%w: no position value for %s in %s", ErrMissingSegment, pos, s.version)
	}
	return v, nil
}

// Cell returns the direct-lookup entry for seg. When the tier has no entry for
// the position, the tier's default-position entry is returned with a warning.
func (s *Set) Cell(seg Segment) (Cell, string, error) {
	row, ok := s.lookup[seg.Tier.Key]
	if !ok {
		return Cell{}, "", fmt.Errorf("%w: %s has no lookup row for tier %s", ErrMissingSegment, s.version, seg.Tier.Key)
	}
	if c, ok := row[seg.Position]; ok {
		return c, "", nil
	}
	c, ok := row[s.lookDef]
	if !ok {
		return Cell{}, "", fmt.Errorf("%w: %s", ErrMissingSegment, seg)
	}
	warn := fmt.Sprintf("no %s entry for tier %s; using %s values", seg.Position, seg.Tier.Label, s.lookDef)
	return c, warn, nil
}

// Sample returns the comps for seg. A missing or empty segment falls back to
// every comp in the tier, with a warning.
func (s *Set) Sample(seg Segment) (outcome.Sample, string, error) {
	row := s.samples[seg.Tier.Key]
	if smp, ok := row[seg.PosType()]; ok && !smp.Empty() {
		return smp, "", nil
	}
	pool := make([]outcome.Sample, 0, len(row))
	for _, pt := range position.Types() {
		if smp, ok := row[pt]; ok {
			pool = append(pool, smp)
		}
	}
	pooled := outcome.Pool(pool...)
	if pooled.Empty() {
		return outcome.Sample{}, "", fmt.Errorf("%w: %s has no comps for %s %s", ErrMissingSegment, s.version, seg.Tier.Label, seg.PosType())
	}
	warn := fmt.Sprintf("no %s comps for tier %s; using all tier comps (n=%d)", seg.PosType(), seg.Tier.Label, pooled.Len())
	return pooled, warn, nil
}

// Distribution returns the outcome distribution for seg. Sample-backed sets
// derive it from the segment's comps; the others read the precomputed table
// and fall back to the tier-only distribution.
func (s *Set) Distribution(seg Segment) (outcome.Distribution, string, error) {
	if s.SampleBacked() {
		smp, warn, err := s.Sample(seg)
		if err != nil {
			return nil, "", err
		}
		d, err := outcome.FromSample(s.bucketing, smp)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s: %v", ErrMissingSegment, seg, err)
		}
		return d, warn, nil
	}
	if d, ok := s.dists[seg.Tier.Key][seg.PosType()]; ok {
		return append(outcome.Distribution(nil), d...), "", nil
	}
	d, ok := s.tierDists[seg.Tier.Key]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s has no outcome table for %s %s", ErrMissingSegment, s.version, seg.Tier.Label, seg.PosType())
	}
	warn := fmt.Sprintf("no %s outcome table for tier %s; using tier-wide outcomes", seg.PosType(), seg.Tier.Label)
	return append(outcome.Distribution(nil), d...), warn, nil
}

// Band returns the market MOIC band quoted for a tier. ok is false when the
// set quotes none; callers then use their own MOIC schedule as the band.
func (s *Set) Band(tierKey string) (MarketBand, bool) {
	b, ok := s.bands[tierKey]
	return b, ok
}

// validate guards table shapes so lookups never divide by zero or read a
// hole that is reachable from a valid rank.
func (s *Set) validate() error {
	if s.version == "" {
		return fmt.Errorf("%w: empty version", ErrInvalidSet)
	}
	if err := s.tiers.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidSet, s.version, err)
	}
	if len(s.bucketing) == 0 {
		return fmt.Errorf("%w: %s: no bucketing", ErrInvalidSet, s.version)
	}
	keys := s.tiers.Keys()
	switch s.projector {
	case ProjectBlend:
		if s.blend.Base <= 0 {
			return fmt.Errorf("%w: %s: blend base must be positive", ErrInvalidSet, s.version)
		}
		if s.blend.MinEV > s.blend.MaxEV {
			return fmt.Errorf("%w: %s: min_ev above max_ev", ErrInvalidSet, s.version)
		}
		for _, k := range keys {
			if v, ok := s.rankEV[k]; !ok || v <= 0 {
				return fmt.Errorf("%w: %s: rank value for %s must be positive", ErrInvalidSet, s.version, k)
			}
		}
		for _, p := range position.All() {
			if v, ok := s.posEV[p]; !ok || v <= 0 {
				return fmt.Errorf("%w: %s: position value for %s must be positive", ErrInvalidSet, s.version, p)
			}
		}
	case ProjectLookup:
		for _, k := range keys {
			row, ok := s.lookup[k]
			if !ok {
				return fmt.Errorf("%w: %s: no lookup row for %s", ErrInvalidSet, s.version, k)
			}
			if _, ok := row[s.lookDef]; !ok {
				return fmt.Errorf("%w: %s: tier %s lacks default position %s", ErrInvalidSet, s.version, k, s.lookDef)
			}
			for p, c := range row {
				if c.MLB < 0 || c.MLB > 1 || c.Star < 0 || c.Star > c.MLB {
					return fmt.Errorf("%w: %s: bad rates for %s %s", ErrInvalidSet, s.version, k, p)
				}
			}
		}
	default:
		return fmt.Errorf("%w: %s: unknown projector %q", ErrInvalidSet, s.version, s.projector)
	}
	switch s.probability {
	case ProbEmpirical:
		if !s.SampleBacked() {
			return fmt.Errorf("%w: %s: empirical probability needs comps", ErrInvalidSet, s.version)
		}
	case ProbBuckets, ProbStress:
	default:
		return fmt.Errorf("%w: %s: unknown probability strategy %q", ErrInvalidSet, s.version, s.probability)
	}
	if s.probability == ProbStress {
		for k, b := range s.bands {
			if b.MinMOIC <= 0 || b.MaxMOIC < b.MinMOIC {
				return fmt.Errorf("%w: %s: bad market band for %s", ErrInvalidSet, s.version, k)
			}
		}
	}
	return nil
}
