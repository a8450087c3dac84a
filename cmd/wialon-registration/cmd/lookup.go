package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func lookupCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "lookup <imei>",
		Short:   "Find the Wialon unit id for an IMEI",
		Args:    cobra.ExactArgs(1),
		Example: `  wialon-registration lookup 356938035643809`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			deps, err := openWialon(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer deps.close()

			id, found, err := deps.searcher.FindByIMEI(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no unit matches imei %s", args[0])
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), map[string]any{"imei": args[0], "unit_id": id})
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func availableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "available <imei>",
		Short: "Check whether exactly one Wialon unit is named after an IMEI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			deps, err := openWialon(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer deps.close()

			ok, err := deps.searcher.UnitIsAvailable(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), map[string]any{"imei": args[0], "available": ok})
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}
