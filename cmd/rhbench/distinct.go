package main

import (
	"fmt"

	"github.com/scottcagno/robinhood/pkg/hashset/openaddr"
	"github.com/spf13/cobra"
)

func distinctCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "distinct [values...]",
		Short: "Print the number of distinct values given",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := openaddr.DistinctElements(args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
}
