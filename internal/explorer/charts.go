package explorer

import (
	"context"

	"oxexplorer/internal/analytics"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/series"
	"oxexplorer/internal/types"
)

// Trends is the data behind the trend line chart.
type Trends struct {
	Since  int             `json:"since"`
	Axis   []string        `json:"axis"`
	Series []series.Series `json:"series"`
}

// Trends returns a price series per ward from since onwards, in the order the
// wards were given. Wards without observations keep an empty series.
func (e *Explorer) Trends(ctx context.Context, wards []string, since int) (res Trends, err error) {
	err = e.observe("chart.trends", []any{"wards", wards, "since", since}, func() error {
		if len(wards) == 0 {
			return errs.NoData("trend chart: no wards selected")
		}
		var ids, names []string
		seen := make(map[string]bool, len(wards))
		for _, ward := range wards {
			id, err := e.resolver.Resolve(ctx, types.KindWard, ward)
			if err != nil {
				return err
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
			names = append(names, ward)
		}

		byID, err := e.series.BuildSeries(ctx, ids, since)
		if err != nil {
			return err
		}
		axis := series.PeriodAxis(byID)
		if len(axis) == 0 {
			return errs.NoData("house prices since %d for %v", since, wards)
		}

		res = Trends{Since: since, Axis: axis, Series: make([]series.Series, len(ids))}
		for i, id := range ids {
			res.Series[i] = series.Series{Name: names[i], Data: byID[id]}
		}
		return nil
	})
	return res, err
}

// DistrictAverages returns the mean price per ward in a district from since
// onwards. With no wards given every ward of the district is used; wards
// outside the district or without prices are left out.
func (e *Explorer) DistrictAverages(ctx context.Context, district string, wards []string, since int) (bars []series.Bar, err error) {
	err = e.observe("chart.bars", []any{"district", district, "wards", wards, "since", since}, func() error {
		if _, err := e.resolver.Resolve(ctx, types.KindDistrict, district); err != nil {
			return err
		}
		inDistrict, err := e.store.WardsWithPricesSince(ctx, since, district)
		if err != nil {
			return err
		}

		selected := inDistrict
		if len(wards) > 0 {
			allowed := make(map[string]bool, len(inDistrict))
			for _, w := range inDistrict {
				allowed[w] = true
			}
			selected = selected[:0:0]
			for _, w := range wards {
				if allowed[w] {
					selected = append(selected, w)
				}
			}
		}
		if len(selected) == 0 {
			return errs.NoData("house prices in %s since %d for the selected wards", district, since)
		}

		ids, err := e.resolver.ResolveAll(ctx, types.KindWard, selected)
		if err != nil {
			return err
		}
		bars, err = e.series.AverageByEntity(ctx, ids, since)
		if err != nil {
			return err
		}
		for i := range bars {
			bars[i].Value = analytics.RoundTo2(bars[i].Value)
		}
		return nil
	})
	return bars, err
}
