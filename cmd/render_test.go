package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"oxexplorer/internal/errs"
	"oxexplorer/internal/series"
)

func init() {
	color.NoColor = true
}

func TestMoneyAndPercent(t *testing.T) {
	assert.Equal(t, "£302500.00", money(302500))
	assert.Equal(t, "£100.30", money(100.3))
	assert.Equal(t, "15.00%", percent(15))
	assert.Equal(t, "-2.50%", percent(-2.5))
}

func TestTrendRows_BlankWhereWardHasNoObservation(t *testing.T) {
	lines := []series.Series{
		{Name: "Summertown", Data: []series.Point{{Label: "2020 Mar", Value: 390000}, {Label: "2020 Dec", Value: 410000}}},
		{Name: "Marston", Data: []series.Point{{Label: "2020 Dec", Value: 300000}}},
	}
	header, rows := trendRows(lines, []string{"2020 Mar", "2020 Dec"})

	assert.Equal(t, []string{"Period", "Summertown", "Marston"}, header)
	assert.Equal(t, [][]string{
		{"2020 Mar", "£390000.00", ""},
		{"2020 Dec", "£410000.00", "£300000.00"},
	}, rows)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []string{"Ward", "Average price"}, barRows([]series.Bar{
		{ID: "W10", Label: "Banbury Cross and Neithrop", Value: 230000},
	}))
	out := buf.String()
	assert.Contains(t, out, "Average price")
	assert.Contains(t, out, "Banbury Cross and Neithrop")
	assert.Contains(t, out, "£230000.00")
}

func TestPrintWarningAndError(t *testing.T) {
	var buf bytes.Buffer
	printWarning(&buf, errs.NotFound("ward", "Nowhere"))
	printError(&buf, errors.New("database unreachable"))
	assert.Contains(t, buf.String(), "warning: ")
	assert.Contains(t, buf.String(), "Nowhere")
	assert.Contains(t, buf.String(), "error: database unreachable")
}
