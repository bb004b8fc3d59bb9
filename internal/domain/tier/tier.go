// Package tier partitions the draft-rank domain [1,100] into named bands.
package tier

import (
	"fmt"
)

// Rank domain bounds.
const (
	MinRank = 1
	MaxRank = 100
)

// Band is one contiguous, inclusive range of draft ranks.
type Band struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Min   int    `json:"min" yaml:"min"`
	Max   int    `json:"max" yaml:"max"`
}

// Contains reports whether rank falls inside the band.
func (b Band) Contains(rank int) bool {
	return rank >= b.Min && rank <= b.Max
}

// Partition is an ordered set of bands covering [MinRank, MaxRank].
type Partition struct {
	name  string
	bands []Band
}

// NewPartition builds and validates a partition. Bands must be given in
// ascending order.
func NewPartition(name string, bands ...Band) (Partition, error) {
	p := Partition{name: name, bands: append([]Band(nil), bands...)}
	if err := p.Validate(); err != nil {
		return Partition{}, err
	}
	return p, nil
}

// MustPartition is NewPartition for compiled-in tables.
func MustPartition(name string, bands ...Band) Partition {
	p, err := NewPartition(name, bands...)
	if err != nil {
		panic(err)
	}
	return p
}

// Name identifies the partition scheme, e.g. "3-band".
func (p Partition) Name() string { return p.name }

// Bands returns a copy of the bands in rank order.
func (p Partition) Bands() []Band {
	return append([]Band(nil), p.bands...)
}

// Keys returns band keys in rank order.
func (p Partition) Keys() []string {
	keys := make([]string, len(p.bands))
	for i, b := range p.bands {
		keys[i] = b.Key
	}
	return keys
}

// Of returns the band holding rank.
func (p Partition) Of(rank int) (Band, error) {
	if rank < MinRank || rank > MaxRank {
		return Band{}, fmt.Errorf("%w: %d not in [%d,%d]", ErrRankOutOfRange, rank, MinRank, MaxRank)
	}
	for _, b := range p.bands {
		if b.Contains(rank) {
			return b, nil
		}
	}
	// unreachable for a validated partition
	return Band{}, fmt.Errorf("%w: no band for rank %d in %s", ErrInvalidPartition, rank, p.name)
}

// Validate checks that bands are contiguous, non-overlapping, uniquely keyed
// and cover exactly [MinRank, MaxRank].
func (p Partition) Validate() error {
	if len(p.bands) == 0 {
		return fmt.Errorf("%w: %s has no bands", ErrInvalidPartition, p.name)
	}
	seen := make(map[string]struct{}, len(p.bands))
	next := MinRank
	for _, b := range p.bands {
		if b.Key == "" {
			return fmt.Errorf("%w: %s has a band without key", ErrInvalidPartition, p.name)
		}
		if _, dup := seen[b.Key]; dup {
			return fmt.Errorf("%w: %s repeats key %q", ErrInvalidPartition, p.name, b.Key)
		}
		seen[b.Key] = struct{}{}
		if b.Min != next {
			return fmt.Errorf("%w: %s band %q starts at %d, want %d", ErrInvalidPartition, p.name, b.Key, b.Min, next)
		}
		if b.Max < b.Min {
			return fmt.Errorf("%w: %s band %q is empty", ErrInvalidPartition, p.name, b.Key)
		}
		next = b.Max + 1
	}
	if next != MaxRank+1 {
		return fmt.Errorf("%w: %s ends at %d, want %d", ErrInvalidPartition, p.name, next-1, MaxRank)
	}
	return nil
}

// Three is the 1-20 / 21-50 / 51-100 scheme.
func Three() Partition {
	return MustPartition("3-band",
		Band{Key: "1-20", Label: "1-20", Min: 1, Max: 20},
		Band{Key: "21-50", Label: "21-50", Min: 21, Max: 50},
		Band{Key: "51-100", Label: "51-100", Min: 51, Max: 100},
	)
}

// Five is the Top 10 / 11-25 / 26-50 / 51-75 / 76-100 scheme.
func Five() Partition {
	return MustPartition("5-band",
		Band{Key: "1-10", Label: "Top 10", Min: 1, Max: 10},
		Band{Key: "11-25", Label: "11-25", Min: 11, Max: 25},
		Band{Key: "26-50", Label: "26-50", Min: 26, Max: 50},
		Band{Key: "51-75", Label: "51-75", Min: 51, Max: 75},
		Band{Key: "76-100", Label: "76-100", Min: 76, Max: 100},
	)
}
