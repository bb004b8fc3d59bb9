package tables

import (
	"github.com/okian/prospect/internal/domain/outcome"
	"github.com/okian/prospect/internal/domain/position"
)

const compsSource = "2012-2013 Top-100 comps"

// comps are realized career earnings of 2012 and 2013 top-100 prospects,
// grouped by 3-band tier and position type.
func comps() map[string]map[position.Type]outcome.Sample {
	return map[string]map[position.Type]outcome.Sample{
		"1-20": {
			position.Hitter: outcome.MustSample(
				100, 71038, 716000, 848000, 1100000, 1450000, 2020000, 2460000, 8310000, 21200000,
				43800000, 69945139, 81233776, 229685613, 485310896,
			),
			position.Pitcher: outcome.MustSample(
				100, 71038, 716000, 848000, 1100000, 1450000, 1870000, 2020000, 2190000, 3380000,
				4100000, 6500000, 15600000, 28036852, 41324301, 52300000, 78899590, 103383079,
				106720097, 241005242, 327222046,
			),
			position.CatcherType: outcome.MustSample(1184325, 26385635, 29627500, 55245570),
		},
		"21-50": {
			position.Hitter: outcome.MustSample(
				100, 71038, 716000, 848000, 1100000, 1450000, 1870000, 2020000, 2040000, 2190000,
				2460000, 2640000, 3380000, 4100000, 4500000, 6500000, 8310000, 12400000, 15600000,
				21200000, 28000000, 43800000, 44800000, 91700000, 229000000, 363000000,
			),
			position.Pitcher: outcome.MustSample(
				100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
				71038, 71038, 2240000, 3080000, 4170000, 5200000, 6100000, 8900000, 11000000,
				14000000, 17000000, 20000000, 24000000, 30000000, 41000000, 52000000, 64000000,
				70000000, 80000000, 89000000, 109000000, 327000000,
			),
			position.CatcherType: outcome.MustSample(2040000, 29600000),
		},
		"51-100": {
			position.Hitter: outcome.MustSample(
				100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
				71038, 71038, 71038, 71038, 100000, 150000, 300000, 450000, 600000, 900000,
				1100000, 1400000, 1800000, 2200000, 3000000, 4000000, 5200000, 6400000, 8000000,
				9800000, 12000000, 15000000, 18000000, 22000000, 28000000, 35000000, 45000000,
				59000000, 76000000, 103000000, 241000000,
			),
			position.Pitcher: outcome.MustSample(
				100, 100, 100, 100, 100, 100, 100, 100, 100, 100,
				100, 100, 100, 100, 100, 71038, 71038, 71038, 71038, 100000,
				150000, 250000, 400000, 600000, 900000, 1200000, 1800000, 2500000, 3400000,
				4600000, 6000000, 7700000, 9800000, 12000000, 15000000, 19000000, 24000000,
				30000000, 38000000, 47000000, 58000000, 70000000, 82000000, 94000000,
				103000000, 106000000, 107000000, 241000000, 327000000, 485310896, 485310896,
			),
			position.CatcherType: outcome.MustSample(100, 100, 71038, 1100000, 4100000, 12400000, 15600000, 55245570),
		},
	}
}

// rankEV is the average career earnings of each 3-band tier.
func rankEV() map[string]float64 {
	return map[string]float64{
		"1-20":   115.1e6,
		"21-50":  48.0e6,
		"51-100": 33.9e6,
	}
}

// posEV is the average career earnings of each position.
func posEV() map[position.Position]float64 {
	return map[position.Position]float64{
		position.ThirdBase:  128.6e6,
		position.Shortstop:  86.6e6,
		position.Outfield:   56.6e6,
		position.RightyP:    45.0e6,
		position.LeftyP:     38.1e6,
		position.FirstBase:  37.2e6,
		position.SecondBase: 29.4e6,
		position.Catcher:    27.7e6,
	}
}
