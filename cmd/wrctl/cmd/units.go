package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apiclient "github.com/terminusgps/wialon-registration/internal/api/client"
)

func unitsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "units",
		Short: "Look up Wialon units by IMEI",
	}

	root.AddCommand(
		unitsGetCmd(),
		unitsAvailableCmd(),
		unitsInvalidateCmd(),
	)

	return root
}

func unitsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <imei>",
		Short:   "Find the unit id for an IMEI",
		Args:    cobra.ExactArgs(1),
		Example: `  wrctl units get 356938035643809`,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := newClient().GetUnit(cmd.Context(), args[0])
			if apiclient.IsNotFound(err) {
				fmt.Printf("No unit matches IMEI %s.\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(u)
			}
			fmt.Printf("%s\t%d\n", u.IMEI, u.UnitID)
			return nil
		},
	}
}

func unitsAvailableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "available <imei>",
		Short: "Check whether an IMEI can be registered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newClient().GetAvailability(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(a)
			}
			if a.Available {
				fmt.Printf("%s is available.\n", a.IMEI)
			} else {
				fmt.Printf("%s is not available.\n", a.IMEI)
			}
			return nil
		},
	}
}

func unitsInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <imei>",
		Short: "Drop the cached availability result for an IMEI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newClient().InvalidateAvailability(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Invalidated cached availability for %s.\n", args[0])
			return nil
		},
	}
}
