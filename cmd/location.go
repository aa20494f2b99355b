package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

func newWardAtCmd(a *app) *cobra.Command {
	var lat, lon float64
	cmd := &cobra.Command{
		Use:   "ward-at",
		Short: "Find the ward containing a WGS-84 coordinate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runWardAt(cmd.Context(), lat, lon)
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func (a *app) runWardAt(ctx context.Context, lat, lon float64) error {
	loc, err := a.ex.WardAt(ctx, lat, lon)
	if err != nil {
		return err
	}
	printField(a.out, "Coordinate", strconv.FormatFloat(lat, 'f', 5, 64)+", "+strconv.FormatFloat(lon, 'f', 5, 64))
	printField(a.out, "Ward", loc.Ward)
	if loc.WardID != "" {
		printField(a.out, "Ward id", loc.WardID)
	}
	return nil
}
