package tables

import (
	"github.com/okian/prospect/internal/domain/outcome"
	"github.com/okian/prospect/internal/domain/position"
)

const segmentSource = "precomputed segment outcomes"

func cell(value1, mlb, star float64) Cell {
	return Cell{Value1Pct: value1, MLB: mlb, Star: star}
}

// segmentCells holds expected 1% value, MLB rate and star rate per 5-band
// tier and position. Top-10 catchers have no support and fall back to OF.
func segmentCells() map[string]map[position.Position]Cell {
	return map[string]map[position.Position]Cell{
		"1-10": {
			position.ThirdBase:  cell(620000, 0.85, 0.30),
			position.Shortstop:  cell(540000, 0.84, 0.26),
			position.Outfield:   cell(430000, 0.80, 0.22),
			position.RightyP:    cell(360000, 0.72, 0.18),
			position.LeftyP:     cell(330000, 0.70, 0.16),
			position.FirstBase:  cell(300000, 0.78, 0.14),
			position.SecondBase: cell(260000, 0.76, 0.12),
		},
		"11-25": {
			position.ThirdBase:  cell(380000, 0.74, 0.18),
			position.Shortstop:  cell(330000, 0.72, 0.16),
			position.Outfield:   cell(260000, 0.68, 0.13),
			position.RightyP:    cell(220000, 0.60, 0.10),
			position.LeftyP:     cell(200000, 0.58, 0.09),
			position.FirstBase:  cell(180000, 0.65, 0.08),
			position.SecondBase: cell(150000, 0.63, 0.07),
			position.Catcher:    cell(140000, 0.55, 0.05),
		},
		"26-50": {
			position.ThirdBase:  cell(210000, 0.62, 0.10),
			position.Shortstop:  cell(185000, 0.60, 0.09),
			position.Outfield:   cell(150000, 0.56, 0.07),
			position.RightyP:    cell(125000, 0.48, 0.06),
			position.LeftyP:     cell(115000, 0.46, 0.05),
			position.FirstBase:  cell(100000, 0.52, 0.04),
			position.SecondBase: cell(90000, 0.50, 0.04),
			position.Catcher:    cell(80000, 0.44, 0.03),
		},
		"51-75": {
			position.ThirdBase:  cell(120000, 0.50, 0.06),
			position.Shortstop:  cell(105000, 0.48, 0.05),
			position.Outfield:   cell(90000, 0.45, 0.04),
			position.RightyP:    cell(75000, 0.38, 0.035),
			position.LeftyP:     cell(70000, 0.36, 0.03),
			position.FirstBase:  cell(60000, 0.42, 0.025),
			position.SecondBase: cell(55000, 0.40, 0.02),
			position.Catcher:    cell(50000, 0.34, 0.02),
		},
		"76-100": {
			position.ThirdBase:  cell(80000, 0.42, 0.04),
			position.Shortstop:  cell(70000, 0.40, 0.035),
			position.Outfield:   cell(60000, 0.37, 0.03),
			position.RightyP:    cell(50000, 0.30, 0.025),
			position.LeftyP:     cell(45000, 0.29, 0.02),
			position.FirstBase:  cell(40000, 0.34, 0.02),
			position.SecondBase: cell(36000, 0.32, 0.015),
			position.Catcher:    cell(32000, 0.27, 0.01),
		},
	}
}

// segmentOutcomes are bucket masses per 5-band tier and position type.
func segmentOutcomes(bs outcome.Bucketing) map[string]map[position.Type]outcome.Distribution {
	d := func(m ...float64) outcome.Distribution { return outcome.MustDistribution(bs, m...) }
	return map[string]map[position.Type]outcome.Distribution{
		"1-10": {
			position.Hitter:  d(0.34, 0.18, 0.20, 0.14, 0.14),
			position.Pitcher: d(0.40, 0.20, 0.18, 0.12, 0.10),
		},
		"11-25": {
			position.Hitter:      d(0.45, 0.20, 0.17, 0.10, 0.08),
			position.Pitcher:     d(0.50, 0.20, 0.16, 0.08, 0.06),
			position.CatcherType: d(0.55, 0.22, 0.14, 0.06, 0.03),
		},
		"26-50": {
			position.Hitter:      d(0.55, 0.19, 0.14, 0.07, 0.05),
			position.Pitcher:     d(0.60, 0.18, 0.12, 0.06, 0.04),
			position.CatcherType: d(0.64, 0.19, 0.11, 0.04, 0.02),
		},
		"51-75": {
			position.Hitter:      d(0.63, 0.17, 0.11, 0.05, 0.04),
			position.Pitcher:     d(0.67, 0.16, 0.10, 0.04, 0.03),
			position.CatcherType: d(0.70, 0.17, 0.09, 0.03, 0.01),
		},
		"76-100": {
			position.Hitter:      d(0.68, 0.16, 0.09, 0.04, 0.03),
			position.Pitcher:     d(0.72, 0.14, 0.08, 0.04, 0.02),
			position.CatcherType: d(0.75, 0.15, 0.07, 0.02, 0.01),
		},
	}
}

// tierOutcomes are tier-wide bucket masses used when a position type has no
// table of its own.
func tierOutcomes(bs outcome.Bucketing) map[string]outcome.Distribution {
	d := func(m ...float64) outcome.Distribution { return outcome.MustDistribution(bs, m...) }
	return map[string]outcome.Distribution{
		"1-10":   d(0.37, 0.19, 0.19, 0.13, 0.12),
		"11-25":  d(0.48, 0.20, 0.16, 0.09, 0.07),
		"26-50":  d(0.58, 0.18, 0.13, 0.07, 0.04),
		"51-75":  d(0.65, 0.17, 0.10, 0.05, 0.03),
		"76-100": d(0.70, 0.15, 0.09, 0.04, 0.02),
	}
}

// marketBands are the MOIC ranges quoted per 5-band tier.
func marketBands() map[string]MarketBand {
	return map[string]MarketBand{
		"1-10":   {MinMOIC: 2, MaxMOIC: 6},
		"11-25":  {MinMOIC: 2.5, MaxMOIC: 8},
		"26-50":  {MinMOIC: 3, MaxMOIC: 10},
		"51-75":  {MinMOIC: 4, MaxMOIC: 12},
		"76-100": {MinMOIC: 5, MaxMOIC: 15},
	}
}
