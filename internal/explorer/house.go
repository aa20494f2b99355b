package explorer

import (
	"context"

	"oxexplorer/internal/analytics"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/types"
)

// WardPrice names a ward and a price.
type WardPrice struct {
	Ward  string  `json:"ward"`
	Price float64 `json:"price"`
}

// AveragePrice returns the mean house price for a ward over the given years.
func (e *Explorer) AveragePrice(ctx context.Context, ward string, years []int) (avg float64, err error) {
	err = e.observe("house.avg", []any{"ward", ward, "years", years}, func() error {
		id, err := e.resolver.Resolve(ctx, types.KindWard, ward)
		if err != nil {
			return err
		}
		avg, err = e.engine.AverageOver(ctx, id, years)
		return err
	})
	return analytics.RoundTo2(avg), err
}

// PriceChange returns the percentage change in a ward's average price from
// yearA to yearB.
func (e *Explorer) PriceChange(ctx context.Context, ward string, yearA, yearB int) (pct float64, err error) {
	err = e.observe("house.change", []any{"ward", ward, "from", yearA, "to", yearB}, func() error {
		id, err := e.resolver.Resolve(ctx, types.KindWard, ward)
		if err != nil {
			return err
		}
		pct, err = e.engine.PercentChange(ctx, id, yearA, yearB)
		return err
	})
	return analytics.RoundTo2(pct), err
}

// LowestWard returns the cheapest ward in a district for a year and quarter.
func (e *Explorer) LowestWard(ctx context.Context, district string, year int, quarter types.Quarter) (res WardPrice, err error) {
	err = e.observe("house.lowest", []any{"district", district, "year", year, "quarter", quarter}, func() error {
		id, err := e.resolver.Resolve(ctx, types.KindDistrict, district)
		if err != nil {
			return err
		}
		low, err := e.engine.LowestInDistrict(ctx, id, year, quarter)
		if err != nil {
			return err
		}
		if !low.Found {
			return errs.NoData("house prices in %s for %d %s", district, year, quarter)
		}
		res = WardPrice{Ward: low.Label, Price: analytics.RoundTo2(low.Value)}
		return nil
	})
	return res, err
}
