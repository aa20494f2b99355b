package explorer

import "context"

// Wards lists every ward name.
func (e *Explorer) Wards(ctx context.Context) (names []string, err error) {
	err = e.observe("list.wards", nil, func() error {
		names, err = e.store.WardNames(ctx)
		return err
	})
	return names, err
}

// Districts lists every district name.
func (e *Explorer) Districts(ctx context.Context) (names []string, err error) {
	err = e.observe("list.districts", nil, func() error {
		names, err = e.store.DistrictNames(ctx)
		return err
	})
	return names, err
}

// Areas lists every broadband area name.
func (e *Explorer) Areas(ctx context.Context) (names []string, err error) {
	err = e.observe("list.areas", nil, func() error {
		names, err = e.store.AreaNames(ctx)
		return err
	})
	return names, err
}

// Towns lists every town with council tax rows.
func (e *Explorer) Towns(ctx context.Context) (names []string, err error) {
	err = e.observe("list.towns", nil, func() error {
		names, err = e.store.TownNames(ctx)
		return err
	})
	return names, err
}

// WardsWithPrices lists wards with house price rows from since onwards,
// optionally limited to one district.
func (e *Explorer) WardsWithPrices(ctx context.Context, since int, district string) (names []string, err error) {
	err = e.observe("list.wards_with_prices", []any{"since", since, "district", district}, func() error {
		names, err = e.store.WardsWithPricesSince(ctx, since, district)
		return err
	})
	return names, err
}
