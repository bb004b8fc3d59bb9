// Package offers prices equity in a prospect's future earnings at target
// multiples on invested capital.
package offers

import (
	"fmt"
	"math"

	"github.com/okian/prospect/internal/domain/model"
	"github.com/okian/prospect/pkg/money"
)

// Defaults for the offer schedule.
var (
	DefaultMOICs  = []float64{10, 8, 6, 4, 2}
	DefaultStakes = []float64{1, 5, 10}
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithMOICs sets the target MOICs, in display order.
func WithMOICs(moics ...float64) Option {
	return func(g *Generator) {
		if len(moics) > 0 {
			g.moics = append([]float64(nil), moics...)
		}
	}
}

// WithStakes sets the equity percentages each offer is scaled to.
func WithStakes(stakes ...float64) Option {
	return func(g *Generator) {
		if len(stakes) > 0 {
			g.stakes = append([]float64(nil), stakes...)
		}
	}
}

// Generator builds the offer schedule.
type Generator struct {
	moics  []float64
	stakes []float64
}

// NewGenerator validates the schedule and returns a Generator.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		moics:  append([]float64(nil), DefaultMOICs...),
		stakes: append([]float64(nil), DefaultStakes...),
	}
	for _, opt := range opts {
		opt(g)
	}
	for _, m := range g.moics {
		if !(m > 0) || math.IsInf(m, 1) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMOIC, m)
		}
	}
	for _, s := range g.stakes {
		if !(s > 0) || s > 100 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidStake, s)
		}
	}
	return g, nil
}

// MOICs returns the configured targets.
func (g *Generator) MOICs() []float64 { return append([]float64(nil), g.moics...) }

// Bounds returns the smallest and largest configured MOIC.
func (g *Generator) Bounds() (lo, hi float64) {
	lo, hi = g.moics[0], g.moics[0]
	for _, m := range g.moics[1:] {
		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
	}
	return lo, hi
}

// Offer is value1 / moic, rounded to cents.
func Offer(value1 money.Amount, moic float64) (money.Amount, error) {
	if !(moic > 0) {
		return money.Amount{}, fmt.Errorf("%w: %v", ErrInvalidMOIC, moic)
	}
	return value1.DivFloat(moic), nil
}

// BreakEven is the realized career earnings at which a 1% payout returns the
// offer: projected / moic.
func BreakEven(projected, moic float64) float64 {
	return projected / moic
}

// Generate returns one row per configured MOIC. value1 and projected come
// from the projector; prob annotates each row.
func (g *Generator) Generate(value1, projected float64, prob Probability) ([]model.OfferRow, error) {
	v1 := money.FromFloat(value1)
	rows := make([]model.OfferRow, 0, len(g.moics))
	for _, m := range g.moics {
		offer, err := Offer(v1, m)
		if err != nil {
			return nil, err
		}
		be := BreakEven(projected, m)
		p := prob.Probability(m, be)

		stakes := make([]model.StakeOffer, len(g.stakes))
		for i, pct := range g.stakes {
			amt := offer.MulFloat(pct)
			stakes[i] = model.StakeOffer{Percent: pct, Amount: amt, Display: money.Full(amt)}
		}
		rows = append(rows, model.OfferRow{
			MOIC:              m,
			Offer1Pct:         offer,
			Stakes:            stakes,
			BreakEvenEarnings: money.FromFloat(be),
			Probability:       p,
			Confidence:        model.ConfidenceOf(p),
		})
	}
	return rows, nil
}
