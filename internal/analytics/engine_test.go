package analytics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oxexplorer/internal/analytics"
	"oxexplorer/internal/database"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/testfixture"
	"oxexplorer/internal/types"
)

func newEngine(t *testing.T) *analytics.Engine {
	t.Helper()
	db, err := database.NewDatabase(database.DBConfig{Path: testfixture.NewDatabase(t)})
	require.NoError(t, err)
	return analytics.NewEngine(db)
}

func TestAverageOver(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	avg, err := e.AverageOver(ctx, "W01", []int{2020})
	require.NoError(t, err)
	assert.Equal(t, 400000.0, avg)

	// Mean of the three matching rows, not the mean of the yearly means.
	avg, err = e.AverageOver(ctx, "W01", []int{2020, 2023})
	require.NoError(t, err)
	assert.Equal(t, 420000.0, avg)

	_, err = e.AverageOver(ctx, "W01", []int{1999})
	assert.ErrorIs(t, err, errs.ErrNoData)

	_, err = e.AverageOver(ctx, "W12", []int{2022})
	assert.ErrorIs(t, err, errs.ErrNoData, "ward without price rows")
}

func TestPercentChange_Summertown(t *testing.T) {
	e := newEngine(t)

	pct, err := e.PercentChange(context.Background(), "W01", 2020, 2023)
	require.NoError(t, err)
	assert.Equal(t, 15.00, analytics.RoundTo2(pct))
}

func TestPercentChange_SameYearIsZero(t *testing.T) {
	e := newEngine(t)

	for _, year := range []int{2013, 2020, 2023} {
		pct, err := e.PercentChange(context.Background(), "W01", year, year)
		require.NoError(t, err)
		assert.Equal(t, 0.0, pct)
	}
}

func TestPercentChange_ZeroBase(t *testing.T) {
	e := newEngine(t)

	_, err := e.PercentChange(context.Background(), "W20", 2019, 2020)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDivisionByZero)
	assert.Contains(t, err.Error(), "W20")
}

func TestPercentChange_MissingYear(t *testing.T) {
	e := newEngine(t)

	_, err := e.PercentChange(context.Background(), "W01", 2020, 2021)
	assert.ErrorIs(t, err, errs.ErrNoData)
}

func TestLowestInDistrict(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	low, err := e.LowestInDistrict(ctx, "D02", 2022, types.Jun)
	require.NoError(t, err)
	assert.Equal(t, analytics.Extremum{ID: "W10", Label: "Banbury Cross and Neithrop", Value: 230000, Found: true}, low)

	low, err = e.LowestInDistrict(ctx, "D01", 2022, types.Sep)
	require.NoError(t, err)
	assert.Equal(t, "Marston", low.Label)

	low, err = e.LowestInDistrict(ctx, "D01", 2022, types.Dec)
	require.NoError(t, err)
	assert.Equal(t, analytics.NoExtremum, low)
}

func TestLowGigabitAreas(t *testing.T) {
	e := newEngine(t)

	ids, err := e.LowGigabitAreas(context.Background(), analytics.DefaultGigabitThreshold)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "C"}, ids)
}

func TestCouncilTaxDifference(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	diff, err := e.CouncilTaxDifference(ctx, "Witney", "Oxford", "B")
	require.NoError(t, err)
	assert.Equal(t, 150.20, analytics.RoundTo2(diff))

	diff, err = e.CouncilTaxDifference(ctx, "Oxford", "Witney", "B")
	require.NoError(t, err)
	assert.Equal(t, 150.20, analytics.RoundTo2(diff))

	_, err = e.CouncilTaxDifference(ctx, "Oxford", "Witney", "C")
	assert.ErrorIs(t, err, errs.ErrNoData)
}

func TestLowestCouncilTax(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	low, err := e.LowestCouncilTax(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, "Banbury", low.Label, "tie with Witney goes to the first town by name")
	assert.Equal(t, 1600.0, low.Value)

	low, err = e.LowestCouncilTax(ctx, "H")
	require.NoError(t, err)
	assert.False(t, low.Found)
}
