package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

type averageOpts struct {
	ward  string
	years []int
}

type changeOpts struct {
	ward         string
	yearA, yearB int
}

type lowestWardOpts struct {
	district string
	year     int
	quarter  string
}

func newHouseCmd(a *app) *cobra.Command {
	house := &cobra.Command{
		Use:   "house",
		Short: "Ward house price queries",
	}

	var avg averageOpts
	avgCmd := &cobra.Command{
		Use:   "avg",
		Short: "Average house price for a ward over one or more years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runAverage(cmd.Context(), avg)
		},
	}
	avgCmd.Flags().StringVar(&avg.ward, "ward", "", "ward name")
	avgCmd.Flags().IntSliceVar(&avg.years, "years", nil, "years to average, e.g. 2020,2021")

	var chg changeOpts
	changeCmd := &cobra.Command{
		Use:   "change",
		Short: "Percentage change in a ward's average price between two years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runChange(cmd.Context(), chg)
		},
	}
	changeCmd.Flags().StringVar(&chg.ward, "ward", "", "ward name")
	changeCmd.Flags().IntVar(&chg.yearA, "from", 0, "base year")
	changeCmd.Flags().IntVar(&chg.yearB, "to", 0, "comparison year")

	var low lowestWardOpts
	lowestCmd := &cobra.Command{
		Use:   "lowest",
		Short: "Lowest-priced ward in a district for a year and quarter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLowestWard(cmd.Context(), low)
		},
	}
	lowestCmd.Flags().StringVar(&low.district, "district", "", "district name")
	lowestCmd.Flags().IntVar(&low.year, "year", 0, "year")
	lowestCmd.Flags().StringVar(&low.quarter, "quarter", "", "quarter: Mar, Jun, Sep or Dec")

	house.AddCommand(avgCmd, changeCmd, lowestCmd)
	return house
}

func (a *app) runAverage(ctx context.Context, o averageOpts) error {
	ward, err := a.choose(ctx, o.ward, "ward", "Ward", a.ex.Wards)
	if err != nil {
		return err
	}
	years, err := a.chooseYears(o.years, "years", "Years to average")
	if err != nil {
		return err
	}
	avg, err := a.ex.AveragePrice(ctx, ward, years)
	if err != nil {
		return err
	}
	printField(a.out, "Ward", ward)
	printField(a.out, "Years", fmt.Sprint(years))
	printField(a.out, "Average price", money(avg))
	return nil
}

func (a *app) runChange(ctx context.Context, o changeOpts) error {
	ward, err := a.choose(ctx, o.ward, "ward", "Ward", a.ex.Wards)
	if err != nil {
		return err
	}
	from, err := a.chooseYear(o.yearA, "from", "Base year")
	if err != nil {
		return err
	}
	to, err := a.chooseYear(o.yearB, "to", "Comparison year")
	if err != nil {
		return err
	}
	pct, err := a.ex.PriceChange(ctx, ward, from, to)
	if err != nil {
		return err
	}
	printField(a.out, "Ward", ward)
	printField(a.out, "Change "+strconv.Itoa(from)+" to "+strconv.Itoa(to), percent(pct))
	return nil
}

func (a *app) runLowestWard(ctx context.Context, o lowestWardOpts) error {
	district, err := a.choose(ctx, o.district, "district", "District", a.ex.Districts)
	if err != nil {
		return err
	}
	year, err := a.chooseYear(o.year, "year", "Year")
	if err != nil {
		return err
	}
	quarter, err := a.chooseQuarter(o.quarter)
	if err != nil {
		return err
	}
	res, err := a.ex.LowestWard(ctx, district, year, quarter)
	if err != nil {
		return err
	}
	printField(a.out, "District", district)
	printField(a.out, "Period", fmt.Sprintf("%d %s", year, quarter))
	printField(a.out, "Lowest ward", res.Ward)
	printField(a.out, "Price", money(res.Price))
	return nil
}
