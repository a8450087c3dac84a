package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func tokensCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tokens",
		Short: "Manage Wialon access tokens",
	}
	root.AddCommand(tokensListCommand(), tokensCreateCommand())
	return root
}

func tokensListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the account's access tokens",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			deps, err := openWialon(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer deps.close()

			tokens, err := deps.session.ListTokens(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), tokens)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "APP\tCREATED\tDURATION\tFLAGS")
			for i := range tokens {
				created := "-"
				if tokens[i].CreatedAt > 0 {
					created = time.Unix(tokens[i].CreatedAt, 0).UTC().Format(time.DateTime)
				}
				fmt.Fprintf(tw, "%s\t%s\t%ds\t%d\n", tokens[i].App, created, tokens[i].Duration, tokens[i].Flags)
			}
			return tw.Flush()
		},
	}
}

func tokensCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new unlimited access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			deps, err := openWialon(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer deps.close()

			tok, err := deps.session.CreateToken(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), tok)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Value)
			return nil
		},
	}
}
