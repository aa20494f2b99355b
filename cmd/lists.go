package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newListCmd(a *app, use, short string, list func(context.Context) ([]string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := list(cmd.Context())
			if err != nil {
				return err
			}
			printList(a.out, names)
			return nil
		},
	}
}
