package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"oxexplorer/internal/explorer"
	"oxexplorer/internal/series"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed, color.Bold)
)

func printHeading(w io.Writer, format string, args ...any) {
	headingColor.Fprintf(w, format+"\n", args...)
}

// printWarning reports a query that had no answer.
func printWarning(w io.Writer, err error) {
	warnColor.Fprintf(w, "warning: %v\n", err)
}

func printError(w io.Writer, err error) {
	errorColor.Fprintf(w, "error: %v\n", err)
}

// printField writes one aligned "label : value" line.
func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-24s: %s\n", label, value)
}

func printList(w io.Writer, names []string) {
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

func printTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}

func money(v float64) string {
	return "£" + strconv.FormatFloat(v, 'f', 2, 64)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func printCoverage(w io.Writer, cov explorer.Coverage) {
	printField(w, "Area", cov.Area)
	printField(w, "Average download speed", strconv.FormatFloat(cov.AvgDownloadSpeed, 'f', 1, 64)+" Mbit/s")
	printField(w, "Superfast availability", strconv.FormatFloat(cov.SuperfastAvailability, 'f', 1, 64)+"%")
	printField(w, "Gigabit availability", strconv.FormatFloat(cov.GigabitAvailability, 'f', 2, 64))
}

// trendRows lays the series out with one row per period and one column per ward.
// Periods a ward has no observation for are left blank.
func trendRows(lines []series.Series, axis []string) (header []string, rows [][]string) {
	header = []string{"Period"}
	values := make([]map[string]float64, len(lines))
	for i, s := range lines {
		header = append(header, s.Name)
		values[i] = make(map[string]float64, len(s.Data))
		for _, p := range s.Data {
			values[i][p.Label] = p.Value
		}
	}
	for _, period := range axis {
		row := []string{period}
		for i := range lines {
			cell := ""
			if v, ok := values[i][period]; ok {
				cell = money(v)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return header, rows
}

func barRows(bars []series.Bar) [][]string {
	rows := make([][]string, 0, len(bars))
	for _, b := range bars {
		rows = append(rows, []string{b.Label, money(b.Value)})
	}
	return rows
}
