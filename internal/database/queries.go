package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"oxexplorer/internal/types"
)

// lookup describes how a dimension kind maps a display column to an identifier column.
type lookup struct {
	table      string
	idColumn   string
	nameColumn string
}

var lookups = map[types.Kind]lookup{
	types.KindWard:     {table: "District", idColumn: "ward_id", nameColumn: "ward_name"},
	types.KindDistrict: {table: "District", idColumn: "district_id", nameColumn: "district_name"},
	types.KindArea:     {table: "Area", idColumn: "area_id", nameColumn: "area_name"},
	types.KindPostcode: {table: "PostCode", idColumn: "area_id", nameColumn: "postcode"},
}

// quarterOrder sorts quarters by calendar position rather than lexically.
const quarterOrder = `CASE hp.quarter WHEN 'Mar' THEN 1 WHEN 'Jun' THEN 2 WHEN 'Sep' THEN 3 WHEN 'Dec' THEN 4 ELSE 5 END`

// wardNames collapses District to one name per ward_id so joining it never
// duplicates price rows.
const wardNames = `(SELECT ward_id, MIN(ward_name) AS ward_name FROM District GROUP BY ward_id)`

// LookupIDs returns the distinct identifiers whose display column equals name, lowest first.
func (d *Database) LookupIDs(ctx context.Context, kind types.Kind, name string) ([]string, error) {
	l, ok := lookups[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported dimension kind %q", kind)
	}
	q := fmt.Sprintf(`SELECT DISTINCT %s FROM %s WHERE %s = ? ORDER BY %s`, l.idColumn, l.table, l.nameColumn, l.idColumn)
	ids, err := d.queryStrings(ctx, q, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s %q: %w", kind, name, err)
	}
	return ids, nil
}

// WardNames lists distinct ward names.
func (d *Database) WardNames(ctx context.Context) ([]string, error) {
	names, err := d.queryStrings(ctx, `SELECT DISTINCT ward_name FROM District ORDER BY ward_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ward names: %w", err)
	}
	return names, nil
}

// DistrictNames lists distinct district names.
func (d *Database) DistrictNames(ctx context.Context) ([]string, error) {
	names, err := d.queryStrings(ctx, `SELECT DISTINCT district_name FROM District ORDER BY district_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query district names: %w", err)
	}
	return names, nil
}

// AreaNames lists broadband area names.
func (d *Database) AreaNames(ctx context.Context) ([]string, error) {
	names, err := d.queryStrings(ctx, `SELECT DISTINCT area_name FROM Area ORDER BY area_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query area names: %w", err)
	}
	return names, nil
}

// TownNames lists towns present in the CouncilTax table.
func (d *Database) TownNames(ctx context.Context) ([]string, error) {
	names, err := d.queryStrings(ctx, `SELECT DISTINCT town_name FROM CouncilTax ORDER BY town_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query town names: %w", err)
	}
	return names, nil
}

// WardsWithPricesSince lists wards that have house price rows from yearFloor
// onwards. An empty districtName means every district.
func (d *Database) WardsWithPricesSince(ctx context.Context, yearFloor int, districtName string) ([]string, error) {
	q := `
		SELECT DISTINCT d.ward_name
		FROM HousePrice hp
		JOIN District d ON hp.ward_id = d.ward_id
		WHERE hp.year >= ?`
	args := []any{yearFloor}
	if districtName != "" {
		q += ` AND d.district_name = ?`
		args = append(args, districtName)
	}
	q += ` ORDER BY d.ward_name`

	names, err := d.queryStrings(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wards with prices: %w", err)
	}
	return names, nil
}

// HousePriceFilter narrows a house price query. Zero values mean "no constraint".
type HousePriceFilter struct {
	WardIDs    []string
	DistrictID string
	Years      []int
	YearFloor  int
	Quarter    types.Quarter
}

// HousePrices returns matching price rows ordered by year, calendar quarter,
// ward name and ward id. That order is the tie-break for every scan over the result.
func (d *Database) HousePrices(ctx context.Context, f HousePriceFilter) ([]types.HousePrice, error) {
	where := []string{"hp.price IS NOT NULL"}
	var args []any

	if len(f.WardIDs) > 0 {
		where = append(where, fmt.Sprintf("hp.ward_id IN (%s)", placeholders(len(f.WardIDs))))
		args = append(args, stringArgs(f.WardIDs)...)
	}
	if f.DistrictID != "" {
		where = append(where, "hp.district_id = ?")
		args = append(args, f.DistrictID)
	}
	if len(f.Years) > 0 {
		where = append(where, fmt.Sprintf("hp.year IN (%s)", placeholders(len(f.Years))))
		for _, y := range f.Years {
			args = append(args, y)
		}
	}
	if f.YearFloor > 0 {
		where = append(where, "hp.year >= ?")
		args = append(args, f.YearFloor)
	}
	if f.Quarter != "" {
		where = append(where, "hp.quarter = ?")
		args = append(args, string(f.Quarter))
	}

	q := `
		SELECT hp.ward_id, d.ward_name, hp.district_id, hp.year, hp.quarter, hp.price
		FROM HousePrice hp
		LEFT JOIN ` + wardNames + ` d ON hp.ward_id = d.ward_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY hp.year, ` + quarterOrder + `, d.ward_name, hp.ward_id`

	var prices []types.HousePrice
	err := d.query(ctx, q, args, func(rows *sql.Rows) error {
		var (
			hp       types.HousePrice
			wardName sql.NullString
			district sql.NullString
			quarter  string
		)
		if err := rows.Scan(&hp.WardID, &wardName, &district, &hp.Year, &quarter, &hp.Price); err != nil {
			return err
		}
		hp.WardName = wardName.String
		hp.DistrictID = district.String
		hp.Quarter = types.Quarter(quarter)
		prices = append(prices, hp)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query house prices: %w", err)
	}
	return prices, nil
}

const broadbandColumns = `a.area_id, a.area_name, b.avg_download_speed, b.superfast_availability, b.gigabit_availability`

func scanBroadband(rows *sql.Rows) (types.Broadband, error) {
	var (
		bb   types.Broadband
		name sql.NullString
		avg  sql.NullFloat64
		sf   sql.NullFloat64
		gb   sql.NullFloat64
	)
	if err := rows.Scan(&bb.AreaID, &name, &avg, &sf, &gb); err != nil {
		return bb, err
	}
	bb.AreaName = name.String
	bb.AvgDownloadSpeed = avg.Float64
	bb.SuperfastAvailability = sf.Float64
	bb.GigabitAvailability = gb.Float64
	return bb, nil
}

// BroadbandByArea returns coverage for one area id, or nil if the area has no row.
func (d *Database) BroadbandByArea(ctx context.Context, areaID string) (*types.Broadband, error) {
	q := `
		SELECT ` + broadbandColumns + `
		FROM BroadBand b
		JOIN Area a ON a.area_id = b.area_id
		WHERE b.area_id = ?`

	var found *types.Broadband
	err := d.query(ctx, q, []any{areaID}, func(rows *sql.Rows) error {
		if found != nil {
			return nil
		}
		bb, err := scanBroadband(rows)
		if err != nil {
			return err
		}
		found = &bb
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query broadband: %w", err)
	}
	return found, nil
}

// BroadbandAll returns every coverage row keyed by area id only; names are
// fetched separately with AreaNamesByIDs.
func (d *Database) BroadbandAll(ctx context.Context) ([]types.Broadband, error) {
	q := `
		SELECT area_id, avg_download_speed, superfast_availability, gigabit_availability
		FROM BroadBand
		ORDER BY area_id`

	var out []types.Broadband
	err := d.query(ctx, q, nil, func(rows *sql.Rows) error {
		var (
			bb          types.Broadband
			avg, sf, gb sql.NullFloat64
		)
		if err := rows.Scan(&bb.AreaID, &avg, &sf, &gb); err != nil {
			return err
		}
		bb.AvgDownloadSpeed = avg.Float64
		bb.SuperfastAvailability = sf.Float64
		bb.GigabitAvailability = gb.Float64
		out = append(out, bb)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query broadband coverage: %w", err)
	}
	return out, nil
}

// AreaNamesByIDs resolves area ids to names, ordered by name. The IN list is
// generated from ids the caller fetched from the store, never from user input.
func (d *Database) AreaNamesByIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := fmt.Sprintf(`SELECT area_name FROM Area WHERE area_id IN (%s) ORDER BY area_name`, placeholders(len(ids)))
	names, err := d.queryStrings(ctx, q, stringArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query area names: %w", err)
	}
	return names, nil
}

// CouncilTaxCharges returns the charges recorded for a town and band.
func (d *Database) CouncilTaxCharges(ctx context.Context, town, band string) ([]types.CouncilTax, error) {
	return d.councilTax(ctx, `WHERE town_name = ? AND band = ?`, town, band)
}

// CouncilTaxByBand returns every town's charge for a band, ordered by town name.
func (d *Database) CouncilTaxByBand(ctx context.Context, band string) ([]types.CouncilTax, error) {
	return d.councilTax(ctx, `WHERE band = ?`, band)
}

func (d *Database) councilTax(ctx context.Context, where string, args ...any) ([]types.CouncilTax, error) {
	q := `SELECT town_name, band, charge FROM CouncilTax ` + where + ` AND charge IS NOT NULL ORDER BY town_name`

	var out []types.CouncilTax
	err := d.query(ctx, q, args, func(rows *sql.Rows) error {
		var ct types.CouncilTax
		if err := rows.Scan(&ct.TownName, &ct.Band, &ct.Charge); err != nil {
			return err
		}
		out = append(out, ct)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query council tax: %w", err)
	}
	return out, nil
}
