package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"oxexplorer/internal/series"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

var trendLines = []series.Series{
	{Name: "Summertown", Data: []series.Point{{Label: "2020 Mar", Value: 390000}, {Label: "2020 Dec", Value: 410000}}},
	{Name: "Barton", Data: []series.Point{{Label: "2020 Mar", Value: 250000}, {Label: "2022 Jun", Value: 270000}}},
	{Name: "Deddington", Data: []series.Point{}},
}

var trendAxis = []string{"2020 Mar", "2020 Dec", "2022 Jun"}

func TestTrendChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, TrendChart(&buf, trendLines, trendAxis, "House Price Trends by Ward"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestTrendChart_NoPeriods(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, TrendChart(&buf, nil, nil, "empty"))
	assert.Zero(t, buf.Len())
}

func TestBarChart(t *testing.T) {
	var buf bytes.Buffer
	bars := []series.Bar{{ID: "W10", Label: "Banbury Cross and Neithrop", Value: 230000}, {ID: "W11", Label: "Bicester East", Value: 235000}}
	require.NoError(t, BarChart(&buf, bars, "Average House Prices in Cherwell Wards"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	assert.Error(t, BarChart(&bytes.Buffer{}, nil, "empty"))
}

func TestWorkbook(t *testing.T) {
	var buf bytes.Buffer
	bars := []series.Bar{{ID: "W01", Label: "Summertown", Value: 400000}}
	require.NoError(t, Workbook(&buf, trendLines, trendAxis, bars))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{trendsSheet, averagesSheet}, f.GetSheetList())

	rows, err := f.GetRows(trendsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Period", "Summertown", "Barton", "Deddington"}, rows[0])
	assert.Equal(t, []string{"2020 Mar", "390000", "250000"}, rows[1])
	assert.Equal(t, []string{"2020 Dec", "410000"}, rows[2])
	assert.Equal(t, []string{"2022 Jun", "", "270000"}, rows[3])

	avg, err := f.GetRows(averagesSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Ward", "Average price"}, {"Summertown", "400000"}}, avg)
}

func TestWorkbook_NoBarsSkipsAverages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Workbook(&buf, trendLines, trendAxis, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{trendsSheet}, f.GetSheetList())
}

func TestWorkbook_AveragesOnly(t *testing.T) {
	var buf bytes.Buffer
	bars := []series.Bar{
		{ID: "W10", Label: "Banbury Cross and Neithrop", Value: 230000},
		{ID: "W11", Label: "Bicester East", Value: 235000},
	}
	require.NoError(t, Workbook(&buf, nil, nil, bars))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{averagesSheet}, f.GetSheetList())

	rows, err := f.GetRows(averagesSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Ward", "Average price"},
		{"Banbury Cross and Neithrop", "230000"},
		{"Bicester East", "235000"},
	}, rows)
}

func TestWorkbook_Empty(t *testing.T) {
	assert.Error(t, Workbook(&bytes.Buffer{}, nil, nil, nil))
}
