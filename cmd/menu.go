package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"oxexplorer/internal/analytics"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/series"
)

type menuItem struct {
	label string
	run   func(ctx context.Context) error
}

func newMenuCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive dashboard over every query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMenu(cmd.Context())
		},
	}
}

func (a *app) menuItems() []menuItem {
	return []menuItem{
		{"Average house price for a ward", func(ctx context.Context) error { return a.runAverage(ctx, averageOpts{}) }},
		{"House price change between two years", func(ctx context.Context) error { return a.runChange(ctx, changeOpts{}) }},
		{"Lowest-priced ward in a district", func(ctx context.Context) error { return a.runLowestWard(ctx, lowestWardOpts{}) }},
		{"Broadband coverage by area", func(ctx context.Context) error { return a.runBroadbandArea(ctx, "") }},
		{"Broadband coverage by postcode", func(ctx context.Context) error { return a.runBroadbandPostcode(ctx, "") }},
		{"Areas with low gigabit availability", func(ctx context.Context) error {
			return a.runLowGigabit(ctx, lowGigabitOpts{threshold: analytics.DefaultGigabitThreshold})
		}},
		{"Council tax difference between two towns", func(ctx context.Context) error { return a.runTaxDiff(ctx, taxDiffOpts{}) }},
		{"Lowest council tax for a band", func(ctx context.Context) error { return a.runLowestTax(ctx, "") }},
		{"Average council tax for a band (XML)", func(ctx context.Context) error { return a.runXMLAverage(ctx, "") }},
		{"Highest council tax for a band (XML)", func(ctx context.Context) error { return a.runXMLHighest(ctx, "") }},
		{"House price trends (writes trends.png)", func(ctx context.Context) error {
			return a.runTrends(ctx, trendsOpts{since: series.DefaultYearFloor, png: "trends.png"})
		}},
		{"Average prices across a district (writes district.png)", func(ctx context.Context) error {
			return a.runBars(ctx, barsOpts{since: series.DefaultYearFloor, png: "district.png"})
		}},
	}
}

func (a *app) printMenu(items []menuItem) {
	printHeading(a.out, "\nOxfordshire Data Explorer")
	for i, item := range items {
		fmt.Fprintf(a.out, "  %2d) %s\n", i+1, item.label)
	}
	fmt.Fprint(a.out, "   q) Quit\nChoice: ")
}

// runMenu loops until the user quits or input ends. A query that cannot be
// answered is reported and the loop carries on.
func (a *app) runMenu(ctx context.Context) error {
	items := a.menuItems()
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		a.printMenu(items)
		line, err := a.stdin.ReadString('\n')
		choice := strings.TrimSpace(line)
		if err != nil && choice == "" {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return err
		}
		if strings.EqualFold(choice, "q") {
			return nil
		}

		n, convErr := strconv.Atoi(choice)
		if convErr != nil || n < 1 || n > len(items) {
			warnColor.Fprintf(a.out, "Invalid choice %q: enter 1-%d or q.\n", choice, len(items))
			continue
		}
		fmt.Fprintln(a.out)
		a.report(items[n-1].run(ctx))
	}
}

// report prints the outcome of one menu action.
func (a *app) report(err error) {
	switch {
	case err == nil:
	case isCancelled(err):
		warnColor.Fprintln(a.out, "cancelled")
	case errs.Recoverable(err):
		printWarning(a.out, err)
	default:
		printError(a.out, err)
	}
}
