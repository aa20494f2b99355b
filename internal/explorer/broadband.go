package explorer

import (
	"context"

	"oxexplorer/internal/analytics"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/types"
)

// Coverage is the broadband summary shown for an area.
type Coverage struct {
	Area                  string  `json:"area"`
	AvgDownloadSpeed      float64 `json:"avg_download_speed"`
	SuperfastAvailability float64 `json:"superfast_availability"`
	GigabitAvailability   float64 `json:"gigabit_availability"`
}

func coverageOf(bb *types.Broadband) Coverage {
	return Coverage{
		Area:                  bb.AreaName,
		AvgDownloadSpeed:      analytics.RoundTo2(bb.AvgDownloadSpeed),
		SuperfastAvailability: analytics.RoundTo2(bb.SuperfastAvailability),
		GigabitAvailability:   analytics.RoundTo2(bb.GigabitAvailability),
	}
}

// BroadbandByArea returns coverage for an area name.
func (e *Explorer) BroadbandByArea(ctx context.Context, area string) (cov Coverage, err error) {
	err = e.observe("broadband.area", []any{"area", area}, func() error {
		cov, err = e.coverage(ctx, types.KindArea, area)
		return err
	})
	return cov, err
}

// BroadbandByPostcode returns coverage for the area a postcode belongs to.
func (e *Explorer) BroadbandByPostcode(ctx context.Context, postcode string) (cov Coverage, err error) {
	err = e.observe("broadband.postcode", []any{"postcode", postcode}, func() error {
		cov, err = e.coverage(ctx, types.KindPostcode, postcode)
		return err
	})
	return cov, err
}

func (e *Explorer) coverage(ctx context.Context, kind types.Kind, name string) (Coverage, error) {
	id, err := e.resolver.Resolve(ctx, kind, name)
	if err != nil {
		return Coverage{}, err
	}
	bb, err := e.store.BroadbandByArea(ctx, id)
	if err != nil {
		return Coverage{}, err
	}
	if bb == nil {
		return Coverage{}, errs.NoData("broadband coverage for %s %s", kind, name)
	}
	return coverageOf(bb), nil
}

// LowGigabitAreas names the areas whose gigabit availability is below threshold.
func (e *Explorer) LowGigabitAreas(ctx context.Context, threshold float64) (names []string, err error) {
	err = e.observe("broadband.low_gigabit", []any{"threshold", threshold}, func() error {
		ids, err := e.engine.LowGigabitAreas(ctx, threshold)
		if err != nil {
			return err
		}
		names, err = e.store.AreaNamesByIDs(ctx, ids)
		return err
	})
	if names == nil && err == nil {
		names = []string{}
	}
	return names, err
}
