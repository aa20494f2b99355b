package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"oxexplorer/internal/report"
	"oxexplorer/internal/series"
)

type trendsOpts struct {
	wards []string
	since int
	png   string
	xlsx  string
}

type barsOpts struct {
	district string
	wards    []string
	since    int
	png      string
	xlsx     string
}

func newTrendsCmd(a *app) *cobra.Command {
	var o trendsOpts
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Quarterly house price trend for one or more wards",
		Long: "trends prints a ward-by-period price table. Without --ward the wards listed in the watchlist file are used, " +
			"and on a terminal an empty watchlist opens the ward picker.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTrends(cmd.Context(), o)
		},
	}
	cmd.Flags().StringSliceVar(&o.wards, "ward", nil, "ward name (repeatable)")
	cmd.Flags().IntVar(&o.since, "since", series.DefaultYearFloor, "first year to include")
	cmd.Flags().StringVar(&o.png, "png", "", "also write a line chart to this PNG file")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "also write the table to this Excel workbook")
	return cmd
}

func newBarsCmd(a *app) *cobra.Command {
	var o barsOpts
	cmd := &cobra.Command{
		Use:   "bars",
		Short: "Average house price per ward within a district",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBars(cmd.Context(), o)
		},
	}
	cmd.Flags().StringVar(&o.district, "district", "", "district name")
	cmd.Flags().StringSliceVar(&o.wards, "ward", nil, "limit to these wards (default: every ward in the district)")
	cmd.Flags().IntVar(&o.since, "since", series.DefaultYearFloor, "first year to include")
	cmd.Flags().StringVar(&o.png, "png", "", "also write a bar chart to this PNG file")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "also write the averages to this Excel workbook")
	return cmd
}

func (a *app) trendWards(ctx context.Context, o trendsOpts) ([]string, error) {
	if len(o.wards) > 0 {
		return o.wards, nil
	}
	wards, err := loadWatchlist(a.cfg.WatchlistPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}
	if len(wards) > 0 {
		return wards, nil
	}
	return a.chooseMany(ctx, nil, "ward", "Wards to chart", func(ctx context.Context) ([]string, error) {
		return a.ex.WardsWithPrices(ctx, o.since, "")
	})
}

func (a *app) runTrends(ctx context.Context, o trendsOpts) error {
	wards, err := a.trendWards(ctx, o)
	if err != nil {
		return err
	}
	res, err := a.ex.Trends(ctx, wards, o.since)
	if err != nil {
		return err
	}

	printHeading(a.out, "House prices since %d", res.Since)
	header, rows := trendRows(res.Series, res.Axis)
	printTable(a.out, header, rows)

	if o.png != "" {
		title := fmt.Sprintf("House prices since %d", res.Since)
		if err := writeFile(o.png, func(w io.Writer) error {
			return report.TrendChart(w, res.Series, res.Axis, title)
		}); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "chart written to %s\n", o.png)
	}
	if o.xlsx != "" {
		if err := writeFile(o.xlsx, func(w io.Writer) error {
			return report.Workbook(w, res.Series, res.Axis, nil)
		}); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "workbook written to %s\n", o.xlsx)
	}
	return nil
}

func (a *app) runBars(ctx context.Context, o barsOpts) error {
	district, err := a.choose(ctx, o.district, "district", "District", a.ex.Districts)
	if err != nil {
		return err
	}
	bars, err := a.ex.DistrictAverages(ctx, district, o.wards, o.since)
	if err != nil {
		return err
	}

	printHeading(a.out, "Average house price by ward in %s since %d", district, o.since)
	printTable(a.out, []string{"Ward", "Average price"}, barRows(bars))

	if o.png != "" {
		title := fmt.Sprintf("Average house price in %s since %d", district, o.since)
		if err := writeFile(o.png, func(w io.Writer) error {
			return report.BarChart(w, bars, title)
		}); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "chart written to %s\n", o.png)
	}
	if o.xlsx != "" {
		if err := writeFile(o.xlsx, func(w io.Writer) error {
			return report.Workbook(w, nil, nil, bars)
		}); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "workbook written to %s\n", o.xlsx)
	}
	return nil
}

// writeFile creates path and hands it to write, removing the file on failure.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
