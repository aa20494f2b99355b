package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oxexplorer/internal/errs"
	"oxexplorer/internal/types"
)

func priceRecord(id, label, quarter string, price float64) types.Record {
	return types.Record{
		ID:         id,
		Label:      label,
		Dimensions: map[string]string{"quarter": quarter},
		Measures:   map[string]float64{"price": price},
	}
}

func TestAverage(t *testing.T) {
	records := []types.Record{
		priceRecord("W1", "A", "Mar", 390000),
		priceRecord("W1", "A", "Dec", 410000),
		{ID: "W1", Measures: map[string]float64{"other": 1}},
	}

	avg, ok := Average(records, "price")
	require.True(t, ok)
	assert.Equal(t, 400000.0, avg)

	_, ok = Average(nil, "price")
	assert.False(t, ok)
}

func TestAverage_OrderIndependent(t *testing.T) {
	a := []types.Record{priceRecord("W", "", "", 1), priceRecord("W", "", "", 2), priceRecord("W", "", "", 6)}
	b := []types.Record{a[2], a[0], a[1]}

	x, _ := Average(a, "price")
	y, _ := Average(b, "price")
	assert.Equal(t, x, y)
}

func TestPercentChange(t *testing.T) {
	pct, err := PercentChange(400000, 460000)
	require.NoError(t, err)
	assert.Equal(t, 15.0, RoundTo2(pct))

	pct, err = PercentChange(123.456, 123.456)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)

	_, err = PercentChange(0, 100)
	assert.ErrorIs(t, err, errs.ErrDivisionByZero)
}

func TestExtremumBy(t *testing.T) {
	records := []types.Record{
		priceRecord("W10", "Banbury Cross", "Jun", 230000),
		priceRecord("W11", "Bicester East", "Jun", 230000),
		priceRecord("W11", "Bicester East", "Sep", 200000),
		priceRecord("W03", "Marston", "Jun", 300000),
	}

	lowJun := ExtremumBy(records, Predicate{Field: "quarter", Value: "Jun"}, "price", Min)
	assert.Equal(t, Extremum{ID: "W10", Label: "Banbury Cross", Value: 230000, Found: true}, lowJun, "first row wins a tie")

	high := ExtremumBy(records, Predicate{}, "price", Max)
	assert.Equal(t, "Marston", high.Label)

	low := ExtremumBy(records, Predicate{}, "price", Min)
	assert.Equal(t, 200000.0, low.Value)
}

func TestExtremumBy_EmptyScopeReturnsSentinel(t *testing.T) {
	got := ExtremumBy(nil, Predicate{}, "price", Min)
	assert.Equal(t, NoExtremum, got)
	assert.False(t, got.Found)

	got = ExtremumBy([]types.Record{priceRecord("W1", "A", "Mar", 1)}, Predicate{Field: "quarter", Value: "Dec"}, "price", Max)
	assert.False(t, got.Found)
}

func TestExtremumBy_RealZeroIsFound(t *testing.T) {
	got := ExtremumBy([]types.Record{priceRecord("W20", "Zero Ward", "Mar", 0)}, Predicate{}, "price", Min)
	assert.True(t, got.Found)
	assert.Equal(t, 0.0, got.Value)
	assert.NotEqual(t, NoExtremum, got)
}

func TestFilterBelowAndAbove(t *testing.T) {
	records := Records([]types.Broadband{
		{AreaID: "A", GigabitAvailability: 0.3},
		{AreaID: "B", GigabitAvailability: 0.6},
		{AreaID: "C", GigabitAvailability: 0.49},
		{AreaID: "D", GigabitAvailability: 0.5},
	})

	assert.Equal(t, []string{"A", "C"}, FilterBelow(records, "gigabit_availability", 0.5))
	assert.Equal(t, []string{"B"}, FilterAbove(records, "gigabit_availability", 0.5))
	assert.Empty(t, FilterBelow(records, "gigabit_availability", 0))
	assert.NotNil(t, FilterBelow(nil, "gigabit_availability", 1))
}

func TestRoundTo2(t *testing.T) {
	assert.Equal(t, 1.24, RoundTo2(1.236))
	assert.Equal(t, -2.5, RoundTo2(-2.499))
	assert.Equal(t, 15.0, RoundTo2(14.999999))
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "min", Min.String())
	assert.Equal(t, "max", Max.String())
}
