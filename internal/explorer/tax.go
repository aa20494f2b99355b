package explorer

import (
	"context"

	"oxexplorer/internal/analytics"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/types"
)

// TownCharge names a town and its council tax charge.
type TownCharge struct {
	Town   string  `json:"town"`
	Charge float64 `json:"charge"`
}

// CouncilTaxDifference returns the absolute difference between two towns'
// charges for a band.
func (e *Explorer) CouncilTaxDifference(ctx context.Context, townA, townB, band string) (diff float64, err error) {
	err = e.observe("tax.diff", []any{"town_a", townA, "town_b", townB, "band", band}, func() error {
		b, err := types.ParseBand(band)
		if err != nil {
			return err
		}
		diff, err = e.engine.CouncilTaxDifference(ctx, townA, townB, b)
		return err
	})
	return analytics.RoundTo2(diff), err
}

// LowestCouncilTax returns the town charging the least for a band.
func (e *Explorer) LowestCouncilTax(ctx context.Context, band string) (res TownCharge, err error) {
	err = e.observe("tax.lowest", []any{"band", band}, func() error {
		b, err := types.ParseBand(band)
		if err != nil {
			return err
		}
		low, err := e.engine.LowestCouncilTax(ctx, b)
		if err != nil {
			return err
		}
		if !low.Found {
			return errs.NoData("council tax band %s", b)
		}
		res = TownCharge{Town: low.Label, Charge: analytics.RoundTo2(low.Value)}
		return nil
	})
	return res, err
}

// XMLAverage returns the mean charge for a band from the council tax document.
func (e *Explorer) XMLAverage(ctx context.Context, band string) (avg float64, err error) {
	err = e.observe("tax.xml_avg", []any{"band", band}, func() error {
		b, err := types.ParseBand(band)
		if err != nil {
			return err
		}
		avg, err = e.tax.AverageForBand(ctx, b)
		return err
	})
	return analytics.RoundTo2(avg), err
}

// XMLHighest returns the town charging the most for a band according to the
// council tax document.
func (e *Explorer) XMLHighest(ctx context.Context, band string) (res TownCharge, err error) {
	err = e.observe("tax.xml_highest", []any{"band", band}, func() error {
		b, err := types.ParseBand(band)
		if err != nil {
			return err
		}
		high, err := e.tax.HighestForBand(ctx, b)
		if err != nil {
			return err
		}
		res = TownCharge{Town: high.Town, Charge: analytics.RoundTo2(high.Charge)}
		return nil
	})
	return res, err
}
