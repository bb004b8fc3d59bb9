package outcome

import (
	"fmt"
	"math"
)

// massTolerance bounds how far a distribution's total may drift from 1.
const massTolerance = 1e-6

// Bucket is a half-open earnings range [Lower, Upper). The last bucket of a
// bucketing has Upper = +Inf.
type Bucket struct {
	Name  string
	Lower float64
	Upper float64
}

// Contains reports whether v falls inside the bucket.
func (b Bucket) Contains(v float64) bool {
	return v >= b.Lower && v < b.Upper
}

// Open reports whether the bucket has no upper bound.
func (b Bucket) Open() bool { return math.IsInf(b.Upper, 1) }

// Bucketing is a fixed ordered partition of [0, +Inf).
type Bucketing []Bucket

// Standard is the <$5M / $5-25M / $25-75M / $75-150M / >$150M bucketing.
func Standard() Bucketing {
	return Bucketing{
		{Name: "<$5M", Lower: math.Inf(-1), Upper: 5e6},
		{Name: "$5-25M", Lower: 5e6, Upper: 25e6},
		{Name: "$25-75M", Lower: 25e6, Upper: 75e6},
		{Name: "$75-150M", Lower: 75e6, Upper: 150e6},
		{Name: ">$150M", Lower: 150e6, Upper: math.Inf(1)},
	}
}

// Names lists bucket names in order.
func (bs Bucketing) Names() []string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = b.Name
	}
	return names
}

// Index returns the bucket holding v, or -1.
func (bs Bucketing) Index(v float64) int {
	for i, b := range bs {
		if b.Contains(v) {
			return i
		}
	}
	return -1
}

// Mass is the probability attached to one bucket.
type Mass struct {
	Bucket Bucket
	P      float64
}

// Distribution maps each bucket of a bucketing to its probability mass, in
// bucket order.
type Distribution []Mass

// NewDistribution pairs masses with buckets positionally and checks they sum to 1.
func NewDistribution(bs Bucketing, masses ...float64) (Distribution, error) {
	if len(masses) != len(bs) {
		return nil, fmt.Errorf("distribution has %d masses for %d buckets", len(masses), len(bs))
	}
	d := make(Distribution, len(bs))
	for i, b := range bs {
		if masses[i] < 0 {
			return nil, fmt.Errorf("negative mass %v for bucket %s", masses[i], b.Name)
		}
		d[i] = Mass{Bucket: b, P: masses[i]}
	}
	if total := d.Total(); math.Abs(total-1) > massTolerance {
		return nil, fmt.Errorf("distribution masses sum to %v, want 1", total)
	}
	return d, nil
}

// MustDistribution is NewDistribution for compiled-in tables.
func MustDistribution(bs Bucketing, masses ...float64) Distribution {
	d, err := NewDistribution(bs, masses...)
	if err != nil {
		panic(err)
	}
	return d
}

// FromSample counts each observation into its bucket and divides by n.
func FromSample(bs Bucketing, s Sample) (Distribution, error) {
	n := s.Len()
	if n == 0 {
		return nil, ErrEmptySample
	}
	counts := make([]int, len(bs))
	for _, v := range s.values {
		if i := bs.Index(v); i >= 0 {
			counts[i]++
		}
	}
	d := make(Distribution, len(bs))
	for i, b := range bs {
		d[i] = Mass{Bucket: b, P: float64(counts[i]) / float64(n)}
	}
	return d, nil
}

// Total sums the masses.
func (d Distribution) Total() float64 {
	total := 0.0
	for _, m := range d {
		total += m.P
	}
	return total
}

// Of returns the mass of the named bucket.
func (d Distribution) Of(name string) float64 {
	for _, m := range d {
		if m.Bucket.Name == name {
			return m.P
		}
	}
	return 0
}

// First is the mass of the lowest bucket.
func (d Distribution) First() float64 {
	if len(d) == 0 {
		return 0
	}
	return d[0].P
}

// AtLeast sums the masses of buckets whose lower bound is >= floor.
func (d Distribution) AtLeast(floor float64) float64 {
	total := 0.0
	for _, m := range d {
		if m.Bucket.Lower >= floor {
			total += m.P
		}
	}
	return total
}

// Survival approximates P(earnings >= threshold) from bucket masses alone.
// Buckets entirely at or above the threshold count whole; the bucket holding
// the threshold contributes linearly by how much of it lies above. The open
// top bucket counts whole once the threshold falls inside it.
func (d Distribution) Survival(threshold float64) float64 {
	total := 0.0
	for _, m := range d {
		b := m.Bucket
		switch {
		case b.Lower >= threshold:
			total += m.P
		case !b.Contains(threshold):
		case b.Open():
			total += m.P
		default:
			lower := math.Max(b.Lower, 0)
			if threshold <= lower {
				total += m.P
				continue
			}
			total += m.P * (b.Upper - threshold) / (b.Upper - lower)
		}
	}
	return math.Max(0, math.Min(1, total))
}
