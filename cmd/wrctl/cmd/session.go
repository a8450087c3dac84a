package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "session",
		Short: "Inspect or refresh the server's Wialon session",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show session status",
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := newClient().GetSession(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(s)
				}
				return printSession(os.Stdout, s)
			},
		},
		&cobra.Command{
			Use:   "refresh",
			Short: "Log the session in again",
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, err := newClient().RefreshSession(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(s)
				}
				return printSession(os.Stdout, s)
			},
		},
	)

	return root
}

func tokensCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tokens",
		Short: "Manage Wialon access tokens",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List access tokens (values redacted)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				tokens, err := newClient().ListTokens(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(tokens)
				}
				if len(tokens) == 0 {
					fmt.Println("No tokens found.")
					return nil
				}
				return printTokensTable(os.Stdout, tokens)
			},
		},
		&cobra.Command{
			Use:   "create",
			Short: "Create an unlimited access token",
			RunE: func(cmd *cobra.Command, _ []string) error {
				tok, err := newClient().CreateToken(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(tok)
				}
				fmt.Println(tok.Value)
				return nil
			},
		},
	)

	return root
}

func quotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Show the server's Wialon API call budget",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := newClient().GetQuota(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(q)
			}
			return printQuota(os.Stdout, q)
		},
	}
}
