package tables

import (
	"fmt"
	"sort"

	"github.com/okian/prospect/internal/domain/outcome"
	"github.com/okian/prospect/internal/domain/position"
	"github.com/okian/prospect/internal/domain/tier"
)

// DefaultVersion is the model used when none is requested.
const DefaultVersion = "v2"

// Catalog is the immutable registry of model sets.
type Catalog struct {
	sets     map[string]*Set
	fallback string
}

// NewCatalog validates every set and indexes it by version. The first set is
// the default unless def names another one.
func NewCatalog(def string, sets ...*Set) (*Catalog, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidSet)
	}
	c := &Catalog{sets: make(map[string]*Set, len(sets)), fallback: sets[0].version}
	for _, s := range sets {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.sets[s.version]; dup {
			return nil, fmt.Errorf("%w: duplicate version %s", ErrInvalidSet, s.version)
		}
		c.sets[s.version] = s
	}
	if def != "" {
		if _, ok := c.sets[def]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownModel, def)
		}
		c.fallback = def
	}
	return c, nil
}

// Builtin returns the catalog of compiled-in model versions v1..v4.
func Builtin() *Catalog {
	c, err := NewCatalog(DefaultVersion, V1(), V2(), V3(), V4())
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the set for version; an empty version selects the default.
func (c *Catalog) Get(version string) (*Set, error) {
	if version == "" {
		version = c.fallback
	}
	s, ok := c.sets[version]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, version)
	}
	return s, nil
}

// Default returns the default set.
func (c *Catalog) Default() *Set { return c.sets[c.fallback] }

// Versions lists versions in ascending order.
func (c *Catalog) Versions() []string {
	out := make([]string, 0, len(c.sets))
	for v := range c.sets {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// V1 blends tier and position averages without uplift or growth and prices
// offers with the stress heuristic.
func V1() *Set {
	bs := outcome.Standard()
	return &Set{
		version:     "v1",
		description: "weighted blend, 3-band tiers, stress-heuristic probabilities",
		tiers:       tier.Three(),
		projector:   ProjectBlend,
		probability: ProbStress,
		bucketing:   bs,
		source:      compsSource,
		blend: BlendParams{
			Base:        54.4e6,
			WRank:       0.6,
			WPos:        0.4,
			Calibration: 0.91,
			HistUplift:  1.0,
			FwdGrowth:   1.0,
			MinEV:       5e6,
			MaxEV:       400e6,
		},
		rankEV:  rankEV(),
		posEV:   posEV(),
		samples: comps(),
	}
}

// V2 is the calibrated blend with empirical survival probabilities.
func V2() *Set {
	bs := outcome.Standard()
	return &Set{
		version:     "v2",
		description: "calibrated weighted blend, 3-band tiers, empirical probabilities",
		tiers:       tier.Three(),
		projector:   ProjectBlend,
		probability: ProbEmpirical,
		bucketing:   bs,
		source:      compsSource,
		blend: BlendParams{
			Base:        54.4e6,
			WRank:       0.7,
			WPos:        0.3,
			Calibration: 0.91,
			HistUplift:  1.55,
			FwdGrowth:   1.30,
			MinEV:       5e6,
			MaxEV:       400e6,
		},
		rankEV:  rankEV(),
		posEV:   posEV(),
		samples: comps(),
	}
}

// V3 reads expected 1% values directly from 5-band segment tables and
// annotates offers from precomputed outcome buckets.
func V3() *Set {
	bs := outcome.Standard()
	return &Set{
		version:     "v3",
		description: "segment lookup, 5-band tiers, bucket probabilities",
		tiers:       tier.Five(),
		projector:   ProjectLookup,
		probability: ProbBuckets,
		bucketing:   bs,
		source:      segmentSource,
		lookup:      segmentCells(),
		lookDef:     position.Outfield,
		dists:       segmentOutcomes(bs),
		tierDists:   tierOutcomes(bs),
	}
}

// V4 shares the v3 tables and prices offers with the stress heuristic
// against per-tier market bands.
func V4() *Set {
	bs := outcome.Standard()
	return &Set{
		version:     "v4",
		description: "segment lookup, 5-band tiers, stress-heuristic probabilities with market bands",
		tiers:       tier.Five(),
		projector:   ProjectLookup,
		probability: ProbStress,
		bucketing:   bs,
		source:      segmentSource,
		lookup:      segmentCells(),
		lookDef:     position.Outfield,
		dists:       segmentOutcomes(bs),
		tierDists:   tierOutcomes(bs),
		bands:       marketBands(),
	}
}
