package model

import (
	"github.com/okian/prospect/internal/domain/position"
	"github.com/okian/prospect/pkg/money"
)

// Confidence buckets an offer's break-even probability for display.
type Confidence string

// Confidence levels.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Thresholds for ConfidenceOf.
const (
	highConfidenceAt = 0.60
	lowConfidenceAt  = 0.35
)

// ConfidenceOf labels p as high (>= 0.60), low (<= 0.35) or medium.
func ConfidenceOf(p float64) Confidence {
	switch {
	case p >= highConfidenceAt:
		return ConfidenceHigh
	case p <= lowConfidenceAt:
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}

// Tier is the rank band a valuation was computed in.
type Tier struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// BucketMass is one row of an outcome distribution.
type BucketMass struct {
	Bucket      string  `json:"bucket" yaml:"bucket"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// StakeOffer is the offer for a given equity percentage.
type StakeOffer struct {
	Percent float64      `json:"percent" yaml:"percent"`
	Amount  money.Amount `json:"amount" yaml:"amount"`
	Display string       `json:"display" yaml:"display"`
}

// OfferRow is the price of equity at one target MOIC.
type OfferRow struct {
	MOIC              float64      `json:"moic" yaml:"moic"`
	Offer1Pct         money.Amount `json:"offer_1pct" yaml:"offer_1pct"`
	Stakes            []StakeOffer `json:"stakes" yaml:"stakes"`
	BreakEvenEarnings money.Amount `json:"break_even_earnings" yaml:"break_even_earnings"`
	Probability       float64      `json:"probability" yaml:"probability"`
	Confidence        Confidence   `json:"confidence" yaml:"confidence"`
}

// ValuationResult is everything a host needs to render one calculation. It
// is built fresh per request and owned by the caller.
type ValuationResult struct {
	ID       string            `json:"id" yaml:"id"`
	Model    string            `json:"model" yaml:"model"`
	Rank     int               `json:"rank" yaml:"rank"`
	Tier     Tier              `json:"tier" yaml:"tier"`
	Position position.Position `json:"position" yaml:"position"`
	PosType  position.Type     `json:"pos_type" yaml:"pos_type"`

	ProjectedEarnings   money.Amount  `json:"projected_earnings" yaml:"projected_earnings"`
	Value1Pct           money.Amount  `json:"value_1pct" yaml:"value_1pct"`
	ConditionalEarnings *money.Amount `json:"conditional_earnings,omitempty" yaml:"conditional_earnings,omitempty"`
	MLBProbability      *float64      `json:"mlb_probability,omitempty" yaml:"mlb_probability,omitempty"`
	StarProbability     *float64      `json:"star_probability,omitempty" yaml:"star_probability,omitempty"`

	Headline        string `json:"headline" yaml:"headline"`
	EarningsDisplay string `json:"earnings_display" yaml:"earnings_display"`
	Value1Display   string `json:"value_1pct_display" yaml:"value_1pct_display"`

	Distribution []BucketMass `json:"distribution" yaml:"distribution"`
	SampleSize   int          `json:"sample_size,omitempty" yaml:"sample_size,omitempty"`
	Basis        string       `json:"basis" yaml:"basis"`

	Offers   []OfferRow `json:"offers" yaml:"offers"`
	Warnings []string   `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
