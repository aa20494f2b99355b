package main

import (
	"context"

	"github.com/spf13/cobra"

	"oxexplorer/internal/analytics"
)

type lowGigabitOpts struct {
	threshold float64
}

func newBroadbandCmd(a *app) *cobra.Command {
	bb := &cobra.Command{
		Use:   "broadband",
		Short: "Broadband coverage queries",
	}

	var area string
	areaCmd := &cobra.Command{
		Use:   "area",
		Short: "Coverage for a named area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBroadbandArea(cmd.Context(), area)
		},
	}
	areaCmd.Flags().StringVar(&area, "area", "", "area name")

	var postcode string
	postcodeCmd := &cobra.Command{
		Use:   "postcode",
		Short: "Coverage for the area a postcode belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBroadbandPostcode(cmd.Context(), postcode)
		},
	}
	postcodeCmd.Flags().StringVar(&postcode, "postcode", "", "postcode, e.g. \"OX4 1FY\"")

	var low lowGigabitOpts
	lowCmd := &cobra.Command{
		Use:   "low-gigabit",
		Short: "Areas whose gigabit availability is below a threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLowGigabit(cmd.Context(), low)
		},
	}
	lowCmd.Flags().Float64Var(&low.threshold, "threshold", analytics.DefaultGigabitThreshold, "gigabit availability threshold (0-1)")

	bb.AddCommand(areaCmd, postcodeCmd, lowCmd)
	return bb
}

func (a *app) runBroadbandArea(ctx context.Context, area string) error {
	area, err := a.choose(ctx, area, "area", "Area", a.ex.Areas)
	if err != nil {
		return err
	}
	cov, err := a.ex.BroadbandByArea(ctx, area)
	if err != nil {
		return err
	}
	printCoverage(a.out, cov)
	return nil
}

func (a *app) runBroadbandPostcode(ctx context.Context, postcode string) error {
	postcode, err := a.readLine(postcode, "postcode", "Postcode")
	if err != nil {
		return err
	}
	cov, err := a.ex.BroadbandByPostcode(ctx, postcode)
	if err != nil {
		return err
	}
	printField(a.out, "Postcode", postcode)
	printCoverage(a.out, cov)
	return nil
}

func (a *app) runLowGigabit(ctx context.Context, o lowGigabitOpts) error {
	names, err := a.ex.LowGigabitAreas(ctx, o.threshold)
	if err != nil {
		return err
	}
	printHeading(a.out, "%d areas with gigabit availability below %.2f", len(names), o.threshold)
	printList(a.out, names)
	return nil
}
