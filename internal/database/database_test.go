package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oxexplorer/internal/database"
	"oxexplorer/internal/testfixture"
	"oxexplorer/internal/types"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(database.DBConfig{
		Driver: database.DriverSQLite,
		Path:   testfixture.NewDatabase(t),
	})
	require.NoError(t, err)
	return db
}

func TestNewDatabase_MissingFile(t *testing.T) {
	_, err := database.NewDatabase(database.DBConfig{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "missing.db"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.db")
}

func TestNewDatabase_UnsupportedDriver(t *testing.T) {
	_, err := database.NewDatabase(database.DBConfig{Driver: "mysql"})
	require.Error(t, err)
}

func TestNewDatabase_OracleDoesNotDial(t *testing.T) {
	db, err := database.NewDatabase(database.DBConfig{
		Driver:   database.DriverOracle,
		Host:     "adb.example.com",
		Port:     "1522",
		Service:  "ox_high",
		Username: "reader",
		Password: "p@ss",
	})
	require.NoError(t, err)
	assert.Equal(t, database.DriverOracle, db.Driver())
}

func TestNewDatabase_PathWithURIDelimiters(t *testing.T) {
	data, err := os.ReadFile(testfixture.NewDatabase(t))
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "release#2")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "ox?v2%.db")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	db, err := database.NewDatabase(database.DBConfig{Driver: database.DriverSQLite, Path: path})
	require.NoError(t, err)

	districts, err := db.DistrictNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cherwell", "Oxford", "Vale of White Horse"}, districts)
}

func TestPing(t *testing.T) {
	db := newTestDatabase(t)
	require.NoError(t, db.Ping(context.Background()))
}

func TestListings(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	wards, err := db.WardNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Banbury Cross and Neithrop", "Barton", "Bicester East", "Deddington", "Marston", "Summertown", "Zero Ward"}, wards)

	districts, err := db.DistrictNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cherwell", "Oxford", "Vale of White Horse"}, districts)

	areas, err := db.AreaNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Abingdon Central", "Banbury Ruscote", "Carterton North"}, areas)

	towns, err := db.TownNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Banbury", "Oxford", "Witney"}, towns)
}

func TestWardsWithPricesSince(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	all, err := db.WardsWithPricesSince(ctx, 2013, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Banbury Cross and Neithrop", "Barton", "Bicester East", "Marston", "Summertown", "Zero Ward"}, all)

	cherwell, err := db.WardsWithPricesSince(ctx, 2013, "Cherwell")
	require.NoError(t, err)
	assert.Equal(t, []string{"Banbury Cross and Neithrop", "Bicester East"}, cherwell)
}

func TestLookupIDs(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	ids, err := db.LookupIDs(ctx, types.KindWard, "Summertown")
	require.NoError(t, err)
	assert.Equal(t, []string{"W01"}, ids)

	ids, err = db.LookupIDs(ctx, types.KindDistrict, "Cherwell")
	require.NoError(t, err)
	assert.Equal(t, []string{"D02"}, ids)

	ids, err = db.LookupIDs(ctx, types.KindPostcode, "OX4 1FY")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, ids)

	ids, err = db.LookupIDs(ctx, types.KindArea, "Nowhere")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestHousePrices_OrderedByYearThenCalendarQuarter(t *testing.T) {
	db := newTestDatabase(t)

	prices, err := db.HousePrices(context.Background(), database.HousePriceFilter{
		WardIDs:   []string{"W01"},
		YearFloor: 2013,
	})
	require.NoError(t, err)

	var periods []string
	for _, p := range prices {
		periods = append(periods, p.Period())
		assert.Equal(t, "Summertown", p.WardName)
	}
	assert.Equal(t, []string{"2013 Mar", "2013 Dec", "2020 Mar", "2020 Dec", "2023 Jun"}, periods)
}

func TestHousePrices_Filters(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	prices, err := db.HousePrices(ctx, database.HousePriceFilter{
		WardIDs: []string{"W01"},
		Years:   []int{2020, 2023},
	})
	require.NoError(t, err)
	assert.Len(t, prices, 3)

	prices, err = db.HousePrices(ctx, database.HousePriceFilter{
		DistrictID: "D02",
		Years:      []int{2022},
		Quarter:    types.Jun,
	})
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, "Banbury Cross and Neithrop", prices[0].WardName, "ties ordered by ward name")
	assert.Equal(t, "Bicester East", prices[1].WardName)
}

func TestBroadband(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	bb, err := db.BroadbandByArea(ctx, "B")
	require.NoError(t, err)
	require.NotNil(t, bb)
	assert.Equal(t, "Banbury Ruscote", bb.AreaName)
	assert.Equal(t, 80.1, bb.AvgDownloadSpeed)
	assert.Equal(t, 0.6, bb.GigabitAvailability)

	bb, err = db.BroadbandByArea(ctx, "Z")
	require.NoError(t, err)
	assert.Nil(t, bb)

	all, err := db.BroadbandAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestAreaNamesByIDs(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	names, err := db.AreaNamesByIDs(ctx, []string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Abingdon Central", "Carterton North"}, names)

	names, err = db.AreaNamesByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestCouncilTax(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	charges, err := db.CouncilTaxCharges(ctx, "Oxford", "B")
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, 1750.20, charges[0].Charge)

	band, err := db.CouncilTaxByBand(ctx, "B")
	require.NoError(t, err)
	require.Len(t, band, 3)
	assert.Equal(t, "Banbury", band[0].TownName)
}
