package main

import (
	"context"

	"github.com/spf13/cobra"
)

type taxDiffOpts struct {
	townA, townB string
	band         string
}

func newTaxCmd(a *app) *cobra.Command {
	tax := &cobra.Command{
		Use:   "tax",
		Short: "Council tax queries",
	}

	var diff taxDiffOpts
	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "Absolute difference between two towns' charges for a band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTaxDiff(cmd.Context(), diff)
		},
	}
	diffCmd.Flags().StringVar(&diff.townA, "town-a", "", "first town")
	diffCmd.Flags().StringVar(&diff.townB, "town-b", "", "second town")
	diffCmd.Flags().StringVar(&diff.band, "band", "", "band A-H")

	band := func(run func(context.Context, string) error, use, short string) *cobra.Command {
		var b string
		c := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return run(cmd.Context(), b)
			},
		}
		c.Flags().StringVar(&b, "band", "", "band A-H")
		return c
	}

	tax.AddCommand(
		diffCmd,
		band(a.runLowestTax, "lowest", "Town with the lowest charge for a band"),
		band(a.runXMLAverage, "xml-avg", "Average charge for a band from the XML document"),
		band(a.runXMLHighest, "xml-highest", "Town with the highest charge for a band from the XML document"),
	)
	return tax
}

func (a *app) runTaxDiff(ctx context.Context, o taxDiffOpts) error {
	townA, err := a.choose(ctx, o.townA, "town-a", "First town", a.ex.Towns)
	if err != nil {
		return err
	}
	townB, err := a.choose(ctx, o.townB, "town-b", "Second town", a.ex.Towns)
	if err != nil {
		return err
	}
	band, err := a.chooseBand(o.band)
	if err != nil {
		return err
	}
	diff, err := a.ex.CouncilTaxDifference(ctx, townA, townB, band)
	if err != nil {
		return err
	}
	printField(a.out, "Towns", townA+" / "+townB)
	printField(a.out, "Band", band)
	printField(a.out, "Difference", money(diff))
	return nil
}

func (a *app) runLowestTax(ctx context.Context, band string) error {
	band, err := a.chooseBand(band)
	if err != nil {
		return err
	}
	res, err := a.ex.LowestCouncilTax(ctx, band)
	if err != nil {
		return err
	}
	printField(a.out, "Band", band)
	printField(a.out, "Lowest town", res.Town)
	printField(a.out, "Charge", money(res.Charge))
	return nil
}

func (a *app) runXMLAverage(ctx context.Context, band string) error {
	band, err := a.chooseBand(band)
	if err != nil {
		return err
	}
	avg, err := a.ex.XMLAverage(ctx, band)
	if err != nil {
		return err
	}
	printField(a.out, "Band", band)
	printField(a.out, "Average charge", money(avg))
	return nil
}

func (a *app) runXMLHighest(ctx context.Context, band string) error {
	band, err := a.chooseBand(band)
	if err != nil {
		return err
	}
	res, err := a.ex.XMLHighest(ctx, band)
	if err != nil {
		return err
	}
	printField(a.out, "Band", band)
	if res.Town == "" {
		printField(a.out, "Highest town", "(no town charges more than £0.00)")
		return nil
	}
	printField(a.out, "Highest town", res.Town)
	printField(a.out, "Charge", money(res.Charge))
	return nil
}
