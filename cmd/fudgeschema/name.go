package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fudge-schema/naming"
)

func newNameCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "name <raw>...",
		Short: "Print wire names under a naming convention",
		Example: `  fudgeschema name --convention camel FirstName UserId
  FirstName -> firstName
  UserId -> userId`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runName(cmd.OutOrStdout(), a.cfg.Convention, args)
		},
	}
}

func runName(w io.Writer, c naming.Convention, raw []string) error {
	for _, r := range raw {
		name, err := naming.FieldName(r, "", c)
		if err != nil {
			return fmt.Errorf("%q: %w", r, err)
		}

		fmt.Fprintf(w, "%s -> %s\n", r, name)
	}

	return nil
}
